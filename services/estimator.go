package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/deptsearch/deptsearch-api/model"
)

// Estimate is one (early-admission grade, regular-admission percentile)
// pair. Susi is lower=better around 1.0-5.0, Jeongsi is a 0-100 percentile.
type Estimate struct {
	Susi    float64
	Jeongsi float64
}

// SusiString formats the early-admission grade the way the UI shows it.
func (e Estimate) SusiString() string {
	return fmt.Sprintf("%.2f", e.Susi)
}

// JeongsiString formats the regular-admission percentile.
func (e Estimate) JeongsiString() string {
	return fmt.Sprintf("%.1f", e.Jeongsi)
}

var tierBase = map[model.Tier]Estimate{
	model.TierSKY:      {Susi: 1.2, Jeongsi: 96},
	model.TierTop15:    {Susi: 1.7, Jeongsi: 92},
	model.TierInSeoul:  {Susi: 2.2, Jeongsi: 86},
	model.TierNational: {Susi: 3.0, Jeongsi: 77},
	model.TierMetro:    {Susi: 3.3, Jeongsi: 74},
	model.TierRegional: {Susi: 4.5, Jeongsi: 60},
	model.TierEdu:      {Susi: 2.0, Jeongsi: 80},
}

var defaultBase = Estimate{Susi: 5.0, Jeongsi: 50}

// Exact regulated-profession labels pin the most competitive band.
var regulatedLabels = map[string]bool{
	"의예과":  true,
	"치의예과": true,
	"약학과":  true,
	"수의예과": true,
	"한의예과": true,
}

var popularKeywords = []string{"컴퓨터", "소프트웨어", "반도체", "인공지능", "전자", "화공"}

// Estimator produces admission-competitiveness estimates. The jitter source
// is injectable so tests and the CLI can pin deterministic output while
// production keeps real entropy.
type Estimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEstimator creates an estimator over the given source; a nil source
// falls back to a time seed.
func NewEstimator(src rand.Source) *Estimator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Estimator{rng: rand.New(src)}
}

// Base returns the deterministic part of the estimate: tier base pair,
// regulated/popular department shifts and the per-year parity offset, with
// no jitter. The ranking scorer uses this so scores are reproducible.
func (e *Estimator) Base(tier model.Tier, deptName string, year int) Estimate {
	est, ok := tierBase[tier]
	if !ok {
		est = defaultBase
	}

	if regulatedLabels[deptName] {
		est = Estimate{Susi: 1.05, Jeongsi: 98.5}
	} else if containsAny(deptName, popularKeywords...) {
		est.Susi -= 0.15
		est.Jeongsi += 1.5
	}

	if year%2 == 0 {
		est.Susi += 0.05
		est.Jeongsi -= 0.5
	} else {
		est.Susi -= 0.05
		est.Jeongsi += 0.5
	}

	return clamp(est)
}

// Estimate adds bounded jitter on top of Base. Outputs are intentionally
// not reproducible across calls; see Base for the deterministic variant.
func (e *Estimator) Estimate(tier model.Tier, deptName string, year int) Estimate {
	est := e.Base(tier, deptName, year)

	e.mu.Lock()
	r := e.rng.Float64()*0.3 - 0.15
	e.mu.Unlock()

	est.Susi += r
	est.Jeongsi += r * -3

	return clamp(est)
}

func clamp(est Estimate) Estimate {
	if est.Susi < 1.0 {
		est.Susi = 1.0
	}
	if est.Jeongsi > 100 {
		est.Jeongsi = 100
	}
	return est
}
