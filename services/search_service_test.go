package services

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/model"
)

func searchCatalog() *catalog.Catalog {
	snu := &model.University{
		Name: "서울대학교", Location: "서울", Tier: model.TierSKY,
		Colleges: map[string][]string{
			"경영대학": {"경영학과"},
			"공과대학": {"컴퓨터공학부", "기계공학부"},
			"의과대학": {"의예과"},
		},
	}
	yonsei := &model.University{
		Name: "연세대학교", Location: "서울", Tier: model.TierSKY,
		Colleges: map[string][]string{
			"공과대학": {"컴퓨터과학과"},
			"치과대학": {"치의예과"},
			"약학대학": {"약학과"},
		},
	}
	pusan := &model.University{
		Name: "부산대학교", Location: "부산", Tier: model.TierNational,
		Colleges: map[string][]string{
			"공과대학":  {"컴퓨터공학과"},
			"한의과대학": {"한의예과"},
			"수의과대학": {"수의예과"},
		},
	}
	return &catalog.Catalog{
		Universities: map[string]*model.University{
			snu.Name:    snu,
			yonsei.Name: yonsei,
			pusan.Name:  pusan,
		},
		Order:      []string{snu.Name, yonsei.Name, pusan.Name},
		TargetYear: 2025,
	}
}

func newTestSearch(cat *catalog.Catalog) *SearchService {
	scorer := NewScorer(NewEstimator(rand.NewSource(1)), cat.TargetYear)
	return NewSearchService(catalog.NewStore(cat), scorer)
}

func deptNames(records []model.DepartmentRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.DepartmentName)
	}
	return out
}

func TestSearchFullUniversityName(t *testing.T) {
	svc := newTestSearch(searchCatalog())

	for _, query := range []string{"서울대학교", "서울대"} {
		resp := svc.Search(query)
		if resp.EstimatedTotalCount != 4 {
			t.Errorf("Search(%s) count = %d, want 4: %v",
				query, resp.EstimatedTotalCount, deptNames(resp.Departments))
		}
		for _, d := range resp.Departments {
			if d.UniversityName != "서울대학교" {
				t.Errorf("Search(%s) leaked %s record %s",
					query, d.UniversityName, d.DepartmentName)
			}
		}
	}
}

func TestSearchUniversityWithDepartmentRemainder(t *testing.T) {
	svc := newTestSearch(searchCatalog())

	resp := svc.Search("서울대 컴퓨터")
	if len(resp.Departments) != 1 {
		t.Fatalf("Search(서울대 컴퓨터) = %v, want a single record", deptNames(resp.Departments))
	}
	got := resp.Departments[0]
	if got.UniversityName != "서울대학교" || got.DepartmentName != "컴퓨터공학부" {
		t.Errorf("got %s %s, want 서울대학교 컴퓨터공학부", got.UniversityName, got.DepartmentName)
	}
}

func TestSearchGlobalDepartmentScan(t *testing.T) {
	svc := newTestSearch(searchCatalog())

	resp := svc.Search("컴퓨터")
	if resp.EstimatedTotalCount != 3 {
		t.Fatalf("Search(컴퓨터) count = %d, want 3: %v",
			resp.EstimatedTotalCount, deptNames(resp.Departments))
	}
	// SKY prestige plus the popular-keyword bonus puts SNU first.
	if resp.Departments[0].UniversityName != "서울대학교" {
		t.Errorf("top result = %s, want 서울대학교", resp.Departments[0].UniversityName)
	}
}

func TestSearchFieldTagScan(t *testing.T) {
	cat := searchCatalog()
	svc := newTestSearch(cat)

	resp := svc.Search("공학")
	if len(resp.Departments) == 0 {
		t.Fatal("Search(공학) returned nothing")
	}
	for _, d := range resp.Departments {
		if d.Field != "공학" {
			t.Errorf("Search(공학) included %s tagged %s", d.DepartmentName, d.Field)
		}
	}
}

func TestSearchMedicineExcludesSiblingProfessions(t *testing.T) {
	svc := newTestSearch(searchCatalog())

	// Substring assembly pulls in 치의예과 and 한의예과; the profession
	// filter must strip both.
	resp := svc.Search("의예과")
	if len(resp.Departments) != 1 {
		t.Fatalf("Search(의예과) = %v, want only 의예과", deptNames(resp.Departments))
	}
	if got := resp.Departments[0].DepartmentName; got != "의예과" {
		t.Errorf("got %s, want 의예과", got)
	}
}

func TestSearchVeterinaryExcludesMedicine(t *testing.T) {
	svc := newTestSearch(searchCatalog())

	// "수의예과" contains "의예과", so 의예과 joins the candidate set
	// before the veterinary filter removes it.
	resp := svc.Search("수의예과")
	if len(resp.Departments) != 1 {
		t.Fatalf("Search(수의예과) = %v, want only 수의예과", deptNames(resp.Departments))
	}
	if got := resp.Departments[0].DepartmentName; got != "수의예과" {
		t.Errorf("got %s, want 수의예과", got)
	}
}

func TestSearchPharmacyQuery(t *testing.T) {
	svc := newTestSearch(searchCatalog())

	resp := svc.Search("약학과")
	if len(resp.Departments) != 1 || resp.Departments[0].DepartmentName != "약학과" {
		t.Errorf("Search(약학과) = %v, want only 약학과", deptNames(resp.Departments))
	}
}

func TestSearchEmptyQuerySuggestions(t *testing.T) {
	svc := newTestSearch(searchCatalog())

	resp := svc.Search("")
	if resp.EstimatedTotalCount != len(resp.Departments) {
		t.Errorf("suggestion count %d != reported %d",
			len(resp.Departments), resp.EstimatedTotalCount)
	}
	if len(resp.Departments) != 4 {
		t.Fatalf("suggestions = %v, want the 컴퓨터/경영 set of 4", deptNames(resp.Departments))
	}
	for _, d := range resp.Departments {
		if !containsAny(d.DepartmentName, suggestionKeywords...) {
			t.Errorf("suggestion %s matches no suggestion keyword", d.DepartmentName)
		}
	}
}

func TestSearchSingleRuneQueryReturnsNothing(t *testing.T) {
	svc := newTestSearch(searchCatalog())

	resp := svc.Search("의")
	if resp.EstimatedTotalCount != 0 || len(resp.Departments) != 0 {
		t.Errorf("Search(의) = %v, want empty", deptNames(resp.Departments))
	}
}

func TestSearchTruncatesToMaxResults(t *testing.T) {
	colleges := map[string][]string{"공과대학": {}}
	for i := 0; i < MaxResults+20; i++ {
		colleges["공과대학"] = append(colleges["공과대학"], fmt.Sprintf("컴퓨터%03d학과", i))
	}
	u := &model.University{Name: "가상대학교", Location: "서울", Tier: model.TierInSeoul, Colleges: colleges}
	cat := &catalog.Catalog{
		Universities: map[string]*model.University{u.Name: u},
		Order:        []string{u.Name},
		TargetYear:   2025,
	}
	svc := newTestSearch(cat)

	resp := svc.Search("컴퓨터")
	if len(resp.Departments) != MaxResults {
		t.Errorf("len = %d, want %d", len(resp.Departments), MaxResults)
	}
	if resp.EstimatedTotalCount != MaxResults+20 {
		t.Errorf("EstimatedTotalCount = %d, want %d", resp.EstimatedTotalCount, MaxResults+20)
	}
}

func TestSearchCuratedRecordPrecedence(t *testing.T) {
	cat := searchCatalog()
	cat.Curated = []model.DepartmentRecord{{
		ID:             "snu-cs-2025",
		UniversityName: "서울대학교",
		DepartmentName: "컴퓨터공학부",
		Location:       "서울",
		Field:          "공학",
		Description:    "실측 데이터 기반 레코드",
	}}
	svc := newTestSearch(cat)

	resp := svc.Search("서울대 컴퓨터")
	if len(resp.Departments) != 1 {
		t.Fatalf("got %v, want the single curated record", deptNames(resp.Departments))
	}
	got := resp.Departments[0]
	if got.ID != "snu-cs-2025" || got.Description != "실측 데이터 기반 레코드" {
		t.Errorf("curated record not preferred: %+v", got)
	}
}
