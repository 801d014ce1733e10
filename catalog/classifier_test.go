package catalog

import (
	"testing"

	"github.com/deptsearch/deptsearch-api/model"
)

func TestClassifyFieldProfessionOverrides(t *testing.T) {
	// Department names of licensed professions must classify into their
	// own field, never the generic medical bucket, whatever the college.
	tests := []struct {
		dept string
		want string
	}{
		{"의예과", FieldMedicine},
		{"의학과", FieldMedicine},
		{"치의예과", FieldDentistry},
		{"한의예과", FieldTraditional},
		{"수의예과", FieldVeterinary},
		{"약학과", FieldPharmacy},
		{"간호학과", FieldNursing},
	}
	for _, tt := range tests {
		got := ClassifyField(tt.dept, "의과대학", model.TierSKY, "")
		if got != tt.want {
			t.Errorf("ClassifyField(%s) = %s, want %s", tt.dept, got, tt.want)
		}
	}
}

func TestClassifyFieldGenericMedicalCollege(t *testing.T) {
	// Non-profession departments in a medical college stay in the generic
	// bucket.
	if got := ClassifyField("의공학과", "의과대학", model.TierInSeoul, ""); got != FieldMedGeneric {
		t.Errorf("의공학과 in 의과대학 = %s, want %s", got, FieldMedGeneric)
	}
}

func TestClassifyFieldFineCategoryWinsOverCollege(t *testing.T) {
	got := ClassifyField("문헌정보학과", "사회과학대학", model.TierInSeoul, "인문계열 - 문헌정보학")
	if got != "인문계열 - 문헌정보학" {
		t.Errorf("fine category not used verbatim: %s", got)
	}
}

func TestClassifyFieldGenericFineCategoryStaysUncategorized(t *testing.T) {
	// A source row carrying literal "기타" is no better than a blank one;
	// the college and tier heuristics still run.
	if got := ClassifyField("선박해양공학과", "공과대학", model.TierRegional, "기타"); got != FieldEngineering {
		t.Errorf("기타 fine category skipped college keywords: %s", got)
	}
	if got := ClassifyField("초등교육과", "", model.TierEdu, "기타"); got != FieldEducation {
		t.Errorf("기타 fine category skipped Edu tier: %s", got)
	}
}

func TestClassifyFieldProfessionBeatsFineCategory(t *testing.T) {
	// The source data occasionally buckets 한의예과 under a generic medical
	// category; the profession tag still wins.
	got := ClassifyField("한의예과", "한의과대학", model.TierRegional, "의약계열 - 의료")
	if got != FieldTraditional {
		t.Errorf("한의예과 = %s, want %s", got, FieldTraditional)
	}
}

func TestClassifyFieldEduTier(t *testing.T) {
	if got := ClassifyField("초등교육과", "", model.TierEdu, ""); got != FieldEducation {
		t.Errorf("초등교육과 at Edu tier = %s, want %s", got, FieldEducation)
	}
}

func TestClassifyFieldDepartmentFallbacks(t *testing.T) {
	tests := []struct {
		dept string
		want string
	}{
		{"물리치료학과", FieldAllied},
		{"컴퓨터공학과", FieldEngineering},
		{"경영학부", FieldSocial},
		{"시각디자인학과", FieldArtsSports},
		{"자유전공학부", FieldOther},
	}
	for _, tt := range tests {
		got := ClassifyField(tt.dept, "", model.TierRegional, "")
		if got != tt.want {
			t.Errorf("ClassifyField(%s) = %s, want %s", tt.dept, got, tt.want)
		}
	}
}
