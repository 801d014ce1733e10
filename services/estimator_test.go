package services

import (
	"math/rand"
	"testing"

	"github.com/deptsearch/deptsearch-api/model"
)

func TestBaseIsDeterministic(t *testing.T) {
	// Two estimators with different seeds agree on Base.
	a := NewEstimator(rand.NewSource(1))
	b := NewEstimator(rand.NewSource(999))

	for i := 0; i < 5; i++ {
		got := a.Base(model.TierSKY, "컴퓨터공학부", 2025)
		want := b.Base(model.TierSKY, "컴퓨터공학부", 2025)
		if got != want {
			t.Fatalf("Base diverged: %+v vs %+v", got, want)
		}
	}
}

func TestBaseRegulatedDepartments(t *testing.T) {
	e := NewEstimator(rand.NewSource(1))

	// 2025 is odd: parity offset is -0.05 susi / +0.5 jeongsi.
	est := e.Base(model.TierRegional, "의예과", 2025)
	if est.Susi != 1.0 {
		t.Errorf("regulated susi = %v, want clamp to 1.0", est.Susi)
	}
	if est.Jeongsi != 99.0 {
		t.Errorf("regulated jeongsi = %v, want 99.0", est.Jeongsi)
	}

	// The regulated band ignores the tier entirely.
	sky := e.Base(model.TierSKY, "의예과", 2025)
	if sky != est {
		t.Errorf("regulated estimate should not depend on tier: %+v vs %+v", sky, est)
	}
}

func TestBasePopularKeywordShift(t *testing.T) {
	e := NewEstimator(rand.NewSource(1))

	plain := e.Base(model.TierInSeoul, "국어국문학과", 2025)
	popular := e.Base(model.TierInSeoul, "컴퓨터공학과", 2025)

	if popular.Susi >= plain.Susi {
		t.Errorf("popular susi %v should be lower than plain %v", popular.Susi, plain.Susi)
	}
	if popular.Jeongsi <= plain.Jeongsi {
		t.Errorf("popular jeongsi %v should be higher than plain %v", popular.Jeongsi, plain.Jeongsi)
	}
}

func TestEstimateJitterIsBounded(t *testing.T) {
	e := NewEstimator(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		base := e.Base(model.TierNational, "화학과", 2025)
		est := e.Estimate(model.TierNational, "화학과", 2025)

		if diff := est.Susi - base.Susi; diff < -0.15 || diff >= 0.15 {
			t.Fatalf("susi jitter out of range: %v", diff)
		}
		if est.Susi < 1.0 {
			t.Fatalf("susi below clamp: %v", est.Susi)
		}
		if est.Jeongsi > 100 {
			t.Fatalf("jeongsi above clamp: %v", est.Jeongsi)
		}
	}
}

func TestEstimateFixedSeedReproducible(t *testing.T) {
	a := NewEstimator(rand.NewSource(7))
	b := NewEstimator(rand.NewSource(7))

	for i := 0; i < 10; i++ {
		if a.Estimate(model.TierSKY, "전자공학과", 2025) != b.Estimate(model.TierSKY, "전자공학과", 2025) {
			t.Fatal("same seed should produce the same jitter sequence")
		}
	}
}
