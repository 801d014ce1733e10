package services

import (
	"hash/fnv"
	"strings"

	"github.com/deptsearch/deptsearch-api/model"
)

type prestigeEntry struct {
	name  string
	score float64
}

// basePrestige is the flat name→score lookup, resolved in layers: exact
// match, then substring match against the table entries in order (first
// match wins, so an abbreviated "서울대" resolves against 서울대학교 and
// not a later school that merely shares the characters), then
// heuristics, then a default of 50. The table is expected to grow; keep
// it data.
var basePrestige = []prestigeEntry{
	// Symbolic top
	{"서울대학교", 100},

	// Science & tech top
	{"카이스트", 99},
	{"포항공과대학교", 99},
	{"한국과학기술원", 99},

	// SKY
	{"연세대학교", 95},
	{"고려대학교", 95},

	{"성균관대학교", 90},
	{"서강대학교", 89},
	{"한양대학교", 89},

	{"중앙대학교", 85},
	{"경희대학교", 85},
	{"한국외국어대학교", 84},
	{"서울시립대학교", 85},
	{"이화여자대학교", 86},

	{"건국대학교", 80},
	{"동국대학교", 80},
	{"홍익대학교", 80},
	{"숙명여자대학교", 78},
	{"아주대학교", 78},
	{"인하대학교", 78},

	// National flagships
	{"부산대학교", 75},
	{"경북대학교", 75},
	{"전남대학교", 72},
	{"충남대학교", 72},

	{"국민대학교", 70},
	{"숭실대학교", 70},
	{"세종대학교", 70},
	{"단국대학교", 70},
	{"서울과학기술대학교", 72},
	{"광운대학교", 68},
	{"명지대학교", 65},
	{"상명대학교", 65},
	{"가톨릭대학교", 65}, // general score; medical weighting is separate

	// Explicit lower tiers, so name similarity to Seoul schools does not
	// inflate them.
	{"남서울대학교", 40},
	{"동서울대학교", 35},
	{"서울신학대학교", 40},
	{"강남대학교", 45},
	{"서경대학교", 55},
	{"극동대학교", 35},
	{"중부대학교", 35},
	{"동양대학교", 35},
}

var basePrestigeExact = func() map[string]float64 {
	m := make(map[string]float64, len(basePrestige))
	for _, e := range basePrestige {
		m[e.name] = e.score
	}
	return m
}()

// Universities running major teaching hospitals; medicine/nursing there
// gets an affiliation bonus.
var majorHospitals = map[string]bool{
	"서울대학교":  true,
	"연세대학교":  true,
	"가톨릭대학교": true,
	"성균관대학교": true,
	"울산대학교":  true,
	"고려대학교":  true,
}

// Traditional pharmacy strongholds.
var majorPharmacy = map[string]bool{
	"중앙대학교":   true,
	"이화여자대학교": true,
	"성균관대학교":  true,
	"서울대학교":   true,
	"숙명여자대학교": true,
	"부산대학교":   true,
}

// BasePrestigeScore resolves the institutional prestige score for a
// university name.
func BasePrestigeScore(univName string) float64 {
	if score, ok := basePrestigeExact[univName]; ok {
		return score
	}

	for _, e := range basePrestige {
		if strings.Contains(univName, e.name) || strings.Contains(e.name, univName) {
			return e.score
		}
	}

	if strings.Contains(univName, "과학기술원") {
		return 90
	}
	if strings.Contains(univName, "교대") || strings.Contains(univName, "교육대학") {
		return 75
	}

	return 50
}

// Strictly-ordered regulated-profession bonuses: professional programs
// cluster above general programs regardless of tier.
type professionBonus struct {
	keywords []string
	exclude  []string
	bonus    float64
	mode     ProfessionMode
}

var professionBonuses = []professionBonus{
	{keywords: []string{"한의"}, bonus: 36, mode: ModeTraditional},
	{keywords: []string{"수의"}, bonus: 34, mode: ModeVeterinary},
	{keywords: []string{"치의"}, bonus: 38, mode: ModeDentistry},
	{keywords: []string{"약학"}, exclude: []string{"제약"}, bonus: 32, mode: ModePharmacy},
	{keywords: []string{"간호"}, bonus: 25, mode: ModeNone},
	{keywords: []string{"의예", "의학"}, bonus: 40, mode: ModeMedicine},
}

var popularRankKeywords = []string{"컴퓨터", "소프트웨어", "인공지능", "반도체"}

// Scorer computes the deterministic composite ranking score. Scores are
// recomputed per search and never persisted.
type Scorer struct {
	estimator  *Estimator
	targetYear int
}

// NewScorer creates a scorer backed by the estimator's deterministic base.
func NewScorer(estimator *Estimator, targetYear int) *Scorer {
	return &Scorer{estimator: estimator, targetYear: targetYear}
}

// Score computes the ranking score for a (university, department, query)
// triple. Higher ranks first. The query may be empty.
func (s *Scorer) Score(u *model.University, deptName, query string) float64 {
	score := BasePrestigeScore(u.Name)

	isNursing := strings.Contains(deptName, "간호")
	isMedicine := false
	isPharmacy := false

	matched := false
	for _, pb := range professionBonuses {
		if !containsAny(deptName, pb.keywords...) {
			continue
		}
		if len(pb.exclude) > 0 && containsAny(deptName, pb.exclude...) {
			continue
		}
		score += pb.bonus
		matched = true
		isMedicine = pb.mode == ModeMedicine
		isPharmacy = pb.mode == ModePharmacy
		break
	}
	if !matched && containsAny(deptName, popularRankKeywords...) {
		score += 3
	}

	if (isMedicine || isNursing) && majorHospitals[u.Name] {
		score += 20
	}
	if isPharmacy && majorPharmacy[u.Name] {
		score += 15
	}

	if u.Location == "서울" {
		score += 5
	}

	// Admissions-difficulty proxy: reward programs empirically harder to
	// enter than their tier bucket suggests.
	if jeongsi := s.estimator.Base(u.Tier, deptName, s.targetYear).Jeongsi; jeongsi > 90 {
		score += (jeongsi - 90) * 3
	}

	// Same predicate the matcher filters on; a sibling profession that
	// slips past the filter still sinks below every real match.
	if mode := DetectProfessionMode(query); mode != ModeNone {
		if !mode.MatchesDepartment(deptName) {
			score -= 1000
		}
	}

	return score + tieBreak(u.Name, deptName)
}

// tieBreak hashes the record identity into [0, 1) so equal-score entries
// order reproducibly without relying on stable sorts.
func tieBreak(univName, deptName string) float64 {
	h := fnv.New32a()
	h.Write([]byte(univName))
	h.Write([]byte(deptName))
	return float64(h.Sum32()%1000) / 1000
}
