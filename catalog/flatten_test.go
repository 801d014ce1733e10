package catalog

import (
	"reflect"
	"testing"

	"github.com/deptsearch/deptsearch-api/model"
)

func sampleUniversity() *model.University {
	return &model.University{
		Name:     "가상대학교",
		Location: "서울",
		Tier:     model.TierInSeoul,
		Colleges: map[string][]string{
			"공과대학":   {"컴퓨터공학과 (4년제)", "기계공학과"},
			"인문대학":   {"국어국문학과"},
			"일반대학원":  {"협동과정"},
			"사회과학대학": {"경제학전공"},
		},
	}
}

func TestCleanDepartmentName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"컴퓨터공학과 (4년제)", "컴퓨터공학과"},
		{"간호학과(2+4년제)", "간호학과"},
		{"  기계   공학부 ", "기계 공학부"},
		{"수학과 (자연과학)", "수학과 (자연과학)"}, // only program-length suffixes go
	}
	for _, tt := range tests {
		if got := CleanDepartmentName(tt.in); got != tt.want {
			t.Errorf("CleanDepartmentName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlattenSkipsGraduateAndTracks(t *testing.T) {
	records := Flatten(sampleUniversity(), nil)

	got := make([]string, 0, len(records))
	for _, r := range records {
		got = append(got, r.DepartmentName)
	}

	// Colleges in sorted name order, departments in insertion order; the
	// graduate college and the 전공 track entry are gone, the
	// program-length suffix is stripped.
	want := []string{"컴퓨터공학과", "기계공학과", "국어국문학과"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("departments = %v, want %v", got, want)
	}

	for _, r := range records {
		if r.ID != model.RecordID("가상대학교", r.DepartmentName) {
			t.Errorf("record ID %q does not follow the composite identity", r.ID)
		}
		if len(r.AdmissionData) != 0 {
			t.Errorf("flattened record %s should carry no admission trend yet", r.DepartmentName)
		}
	}
}

func TestFlattenGraduateOnlyInstitution(t *testing.T) {
	u := &model.University{
		Name:     "한국학중앙연구원 한국학대학원",
		Colleges: map[string][]string{"대학원": {"한국학과"}},
	}
	if records := Flatten(u, nil); records != nil {
		t.Fatalf("graduate-only institution should flatten to nil, got %v", records)
	}
}

func TestFlattenCuratedPrecedence(t *testing.T) {
	u := sampleUniversity()
	curated := []model.DepartmentRecord{
		{
			ID:             "fict-cs-2025",
			UniversityName: "가상대학교",
			DepartmentName: "컴퓨터공학과",
			Field:          FieldEngineering,
			TuitionFee:     "800만원",
		},
		{
			ID:             "other-univ",
			UniversityName: "다른대학교",
			DepartmentName: "컴퓨터공학과",
		},
	}

	records := Flatten(u, curated)

	if records[0].ID != "fict-cs-2025" {
		t.Fatalf("curated record should come first, got %s", records[0].ID)
	}

	count := 0
	for _, r := range records {
		if r.DepartmentName == "컴퓨터공학과" {
			count++
		}
		if r.ID == "other-univ" {
			t.Error("curated record of another university leaked in")
		}
	}
	if count != 1 {
		t.Errorf("curated record should suppress the auto-generated duplicate, found %d", count)
	}
}
