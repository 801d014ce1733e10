package services

import "strings"

// ProfessionMode is one of the mutually-exclusive regulated-profession
// query modes. Naive substring search conflates six distinct licensed
// programs (e.g. 의예과 vs 치의예과 vs 한의예과), so both the hard filter in
// the matcher and the penalty in the scorer share this single predicate.
type ProfessionMode string

const (
	ModeNone        ProfessionMode = ""
	ModeMedicine    ProfessionMode = "medicine"
	ModeDentistry   ProfessionMode = "dentistry"
	ModeTraditional ProfessionMode = "traditional"
	ModeVeterinary  ProfessionMode = "veterinary"
	ModePharmacy    ProfessionMode = "pharmacy"
	ModePharmaEng   ProfessionMode = "pharma_eng"
)

// DetectProfessionMode classifies a query into at most one regulated
// profession. Checks run on the whitespace-stripped query; order matters:
// 제약 before 약학, and 한의/수의/치의 before the generic medicine keywords.
func DetectProfessionMode(query string) ProfessionMode {
	q := strings.Join(strings.Fields(query), "")
	if q == "" {
		return ModeNone
	}

	switch {
	case strings.Contains(q, "제약"):
		return ModePharmaEng
	case strings.Contains(q, "한의"):
		return ModeTraditional
	case strings.Contains(q, "수의"):
		return ModeVeterinary
	case strings.Contains(q, "치의") || strings.Contains(q, "치대"):
		return ModeDentistry
	case strings.Contains(q, "약학") || strings.Contains(q, "약대"):
		return ModePharmacy
	case containsAny(q, "의대", "의예", "의학"):
		// General medicine only when none of the sibling professions
		// matched above and no nursing keyword is present.
		if strings.Contains(q, "간호") {
			return ModeNone
		}
		return ModeMedicine
	}

	return ModeNone
}

// MatchesDepartment reports whether a department name belongs to the
// profession this mode denotes. ModeNone matches everything.
func (m ProfessionMode) MatchesDepartment(deptName string) bool {
	switch m {
	case ModeNone:
		return true
	case ModeMedicine:
		return containsAny(deptName, "의예", "의학") &&
			!containsAny(deptName, "치의", "한의", "수의")
	case ModeDentistry:
		return strings.Contains(deptName, "치의")
	case ModeTraditional:
		return strings.Contains(deptName, "한의")
	case ModeVeterinary:
		return strings.Contains(deptName, "수의")
	case ModePharmacy:
		// 제약공학-adjacent names stay out even when they mention 약학.
		return strings.Contains(deptName, "약학") && !strings.Contains(deptName, "제약")
	case ModePharmaEng:
		return strings.Contains(deptName, "제약")
	}
	return true
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
