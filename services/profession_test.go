package services

import "testing"

func TestDetectProfessionMode(t *testing.T) {
	tests := []struct {
		query string
		want  ProfessionMode
	}{
		{"의대", ModeMedicine},
		{"의예과", ModeMedicine},
		{"서울대 의학과", ModeMedicine},
		{"치의예과", ModeDentistry},
		{"치대", ModeDentistry},
		{"한의대", ModeTraditional},
		{"한 의 예 과", ModeTraditional}, // whitespace-insensitive
		{"수의대", ModeVeterinary},
		{"약학과", ModePharmacy},
		{"약대", ModePharmacy},
		{"제약공학과", ModePharmaEng},
		{"제약", ModePharmaEng},
		{"간호학과", ModeNone},
		{"간호 의대", ModeNone}, // nursing keyword suppresses medicine
		{"컴퓨터공학", ModeNone},
		{"", ModeNone},
	}
	for _, tt := range tests {
		if got := DetectProfessionMode(tt.query); got != tt.want {
			t.Errorf("DetectProfessionMode(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestMatchesDepartmentExclusivity(t *testing.T) {
	departments := []string{"의예과", "치의예과", "한의예과", "수의예과", "약학과", "제약공학과"}

	// Each mode matches exactly its own department among the six.
	wantByMode := map[ProfessionMode]string{
		ModeMedicine:    "의예과",
		ModeDentistry:   "치의예과",
		ModeTraditional: "한의예과",
		ModeVeterinary:  "수의예과",
		ModePharmacy:    "약학과",
		ModePharmaEng:   "제약공학과",
	}

	for mode, want := range wantByMode {
		for _, dept := range departments {
			got := mode.MatchesDepartment(dept)
			if dept == want && !got {
				t.Errorf("mode %q should match %q", mode, dept)
			}
			if dept != want && got {
				t.Errorf("mode %q must not match %q", mode, dept)
			}
		}
	}
}

func TestMatchesDepartmentModeNone(t *testing.T) {
	if !ModeNone.MatchesDepartment("아무학과") {
		t.Error("ModeNone must match everything")
	}
}

func TestPharmacyExcludesPharmaEngineering(t *testing.T) {
	if ModePharmacy.MatchesDepartment("제약공학과") {
		t.Error("약학 query must not surface 제약공학과")
	}
	if !ModePharmaEng.MatchesDepartment("제약학과") {
		t.Error("제약 query should surface 제약학과")
	}
}
