package catalog

import (
	"strings"
	"testing"

	"github.com/deptsearch/deptsearch-api/model"
)

// datasetRow builds one 25-column source row with the fields the builder
// reads filled in.
func datasetRow(year, schoolType, univ, location, instType, courseType, catMain, catSub, dept, recruit, applicants string) string {
	row := make([]string, 25)
	row[colYear] = year
	row[colSchoolType] = schoolType
	row[colUniversity] = univ
	row[colLocation] = location
	row[colInstType] = instType
	row[colCourseType] = courseType
	row[colCategoryMain] = catMain
	row[colCategorySub] = catSub
	row[colDepartment] = dept
	row[colRecruit] = recruit
	row[colApplicants] = applicants
	return strings.Join(row, ",")
}

// dataset prepends the preamble lines the real file carries.
func dataset(rows ...string) string {
	var sb strings.Builder
	for i := 0; i < headerLines; i++ {
		sb.WriteString("preamble\n")
	}
	sb.WriteString(strings.Join(rows, "\n"))
	sb.WriteString("\n")
	return sb.String()
}

func TestBuildFiltersYearAndSchoolType(t *testing.T) {
	src := dataset(
		datasetRow("2025", "대학교", "서울대학교", "서울 관악구", "국립대법인", "대학과정", "공학계열", "전산학컴퓨터공학", "컴퓨터공학부", "70", "350"),
		datasetRow("2024", "대학교", "서울대학교", "서울 관악구", "국립대법인", "대학과정", "공학계열", "전산학컴퓨터공학", "조선해양공학과", "40", "120"),
		datasetRow("2025", "전문대학", "한국관광전문대학", "경기 이천시", "사립", "대학과정", "사회계열", "", "관광과", "30", "90"),
		datasetRow("2025", "대학교", "연세대학교", "서울 서대문구", "사립", "대학원과정", "공학계열", "", "전기전자공학과", "0", "0"),
		datasetRow("2025", "대학교", "연세대학교", "서울 서대문구", "사립", "대학과정", "공학계열", "", "소속학과없음", "0", "0"),
	)

	b := NewBuilder(BuilderConfig{TargetYear: 2025, FilterYear: true})
	cat, err := b.Build(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(cat.Universities) != 1 {
		t.Fatalf("expected only 서울대학교, got %v", cat.Order)
	}
	snu := cat.Universities["서울대학교"]
	if len(snu.Colleges["공학계열"]) != 1 || snu.Colleges["공학계열"][0] != "컴퓨터공학부" {
		t.Errorf("unexpected departments: %v", snu.Colleges)
	}
	if snu.Location != "서울" {
		t.Errorf("location not reduced to region token: %q", snu.Location)
	}
}

func TestBuildAggregatesStats(t *testing.T) {
	src := dataset(
		datasetRow("2025", "대학교", "부산대학교", "부산 금정구", "국립", "대학과정", "공학계열", "", "기계공학부", "100", "400"),
		datasetRow("2025", "대학교", "부산대학교", "부산 금정구", "국립", "대학과정", "공학계열", "", "기계공학부", "50", "100"),
	)

	b := NewBuilder(BuilderConfig{TargetYear: 2025, FilterYear: true})
	cat, err := b.Build(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	stats := cat.Universities["부산대학교"].Stats["기계공학부"]
	if stats.Recruit != 150 || stats.Applicants != 500 {
		t.Fatalf("stats not summed: %+v", stats)
	}
	if stats.Rate != 3.33 {
		t.Errorf("rate = %v, want 3.33", stats.Rate)
	}
}

func TestBuildAssignsTiers(t *testing.T) {
	src := dataset(
		datasetRow("2025", "대학교", "서울대학교", "서울 관악구", "국립대법인", "대학과정", "공학계열", "", "컴퓨터공학부", "70", "350"),
		datasetRow("2025", "대학교", "한국과학기술원", "대전 유성구", "특별법법인", "대학과정", "공학계열", "", "전산학부", "80", "500"),
		datasetRow("2025", "대학교", "성균관대학교", "서울 종로구", "사립", "대학과정", "인문계열", "", "유학동양학과", "30", "100"),
		datasetRow("2025", "교육대학", "서울교육대학교", "서울 서초구", "국립", "대학과정", "교육계열", "", "초등교육과", "300", "900"),
		datasetRow("2025", "대학교", "숭실대학교", "서울 동작구", "사립", "대학과정", "공학계열", "", "컴퓨터학부", "90", "450"),
		datasetRow("2025", "대학교", "아주대학교", "경기 수원시", "사립", "대학과정", "공학계열", "", "소프트웨어학과", "80", "400"),
		datasetRow("2025", "대학교", "충남대학교", "대전 유성구", "국립", "대학과정", "자연계열", "", "화학과", "50", "150"),
		datasetRow("2025", "대학교", "동양대학교", "경북 영주시", "사립", "대학과정", "공학계열", "", "철도기계시스템학과", "40", "60"),
	)

	b := NewBuilder(BuilderConfig{TargetYear: 2025, FilterYear: true})
	cat, err := b.Build(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := map[string]model.Tier{
		"서울대학교":   model.TierSKY,
		"한국과학기술원": model.TierSKY,
		"성균관대학교":  model.TierTop15,
		"서울교육대학교": model.TierEdu,
		"숭실대학교":   model.TierInSeoul,
		"아주대학교":   model.TierMetro,
		"충남대학교":   model.TierNational,
		"동양대학교":   model.TierRegional,
	}
	for name, tier := range want {
		u, ok := cat.Get(name)
		if !ok {
			t.Fatalf("university %s missing", name)
		}
		if u.Tier != tier {
			t.Errorf("%s tier = %v, want %v", name, u.Tier, tier)
		}
	}
}

func TestBuildEmptyDatasetFails(t *testing.T) {
	b := NewBuilder(BuilderConfig{TargetYear: 2025, FilterYear: true})
	if _, err := b.Build(strings.NewReader(dataset())); err == nil {
		t.Fatal("expected an error for a dataset with no usable rows")
	}
}

func TestParseCountStripsThousandsSeparator(t *testing.T) {
	row := make([]string, 25)
	row[colRecruit] = "1,234"
	if got := parseCount(row, colRecruit); got != 1234 {
		t.Errorf("parseCount = %d, want 1234", got)
	}

	row[colRecruit] = "-5"
	if got := parseCount(row, colRecruit); got != 0 {
		t.Errorf("negative count should parse to 0, got %d", got)
	}
}
