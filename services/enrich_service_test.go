package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/model"
)

type stubEnricher struct {
	payload *EnrichmentPayload
	err     error
	calls   int
}

func (s *stubEnricher) EnrichDepartment(ctx context.Context, univ *model.University, deptName string, stats *model.RecruitStats) (*EnrichmentPayload, error) {
	s.calls++
	return s.payload, s.err
}

func newTestEnrich(cat *catalog.Catalog, enricher Enricher) *EnrichService {
	est := NewEstimator(rand.NewSource(1))
	return NewEnrichService(catalog.NewStore(cat), est, enricher, nil, time.Second)
}

func TestGetDepartmentDetailsUnknownUniversity(t *testing.T) {
	svc := newTestEnrich(searchCatalog(), nil)

	rec := svc.GetDepartmentDetails(context.Background(), "없는대학교", "컴퓨터공학과")
	if rec.ID != "not-found" {
		t.Errorf("ID = %s, want not-found", rec.ID)
	}
	if rec.Description != "정보 없음" {
		t.Errorf("Description = %s, want 정보 없음", rec.Description)
	}
	if rec.UniversityName != "없는대학교" || rec.DepartmentName != "컴퓨터공학과" {
		t.Errorf("placeholder should echo the request: %+v", rec)
	}
}

func TestGetDepartmentDetailsLocalRecord(t *testing.T) {
	svc := newTestEnrich(searchCatalog(), nil)

	rec := svc.GetDepartmentDetails(context.Background(), "서울대학교", "컴퓨터공학부")

	if len(rec.AdmissionData) != 3 {
		t.Fatalf("trend has %d entries, want 3", len(rec.AdmissionData))
	}
	wantYears := []string{"2025학년도", "2024학년도", "2023학년도"}
	wantTags := []string{"(예상)", "(추정)", "(결과)"}
	for i, entry := range rec.AdmissionData {
		if entry.Year != wantYears[i] {
			t.Errorf("entry %d year = %s, want %s", i, entry.Year, wantYears[i])
		}
		for _, v := range []string{entry.SusiGyogwa, entry.SusiJonghap, entry.Jeongsi} {
			if !strings.HasSuffix(v, wantTags[i]) {
				t.Errorf("entry %d value %q missing tag %s", i, v, wantTags[i])
			}
		}
	}
	if rec.TuitionFee != "601만원" {
		t.Errorf("TuitionFee = %s, want the curated 서울대학교 figure", rec.TuitionFee)
	}
	if rec.Field != "공학" {
		t.Errorf("Field = %s, want 공학", rec.Field)
	}
	if !strings.Contains(rec.Description, "서울대학교") || !strings.Contains(rec.Description, "컴퓨터공학부") {
		t.Errorf("description should name the department: %s", rec.Description)
	}
}

func TestGetDepartmentDetailsMemoizes(t *testing.T) {
	stub := &stubEnricher{payload: &EnrichmentPayload{
		Summary:     "두 줄 요약입니다.",
		Description: "외부 수집 데이터 기반의 상세 설명입니다.",
	}}
	svc := newTestEnrich(searchCatalog(), stub)

	first := svc.GetDepartmentDetails(context.Background(), "서울대학교", "의예과")
	second := svc.GetDepartmentDetails(context.Background(), "서울대학교", "의예과")

	if stub.calls != 1 {
		t.Errorf("enricher called %d times, want 1", stub.calls)
	}
	if first.Description != second.Description || first.AISummary != second.AISummary {
		t.Errorf("memoized record drifted: %+v vs %+v", first, second)
	}
	if svc.MemoSize() != 1 {
		t.Errorf("MemoSize = %d, want 1", svc.MemoSize())
	}
}

func TestGetDepartmentDetailsEnricherFailure(t *testing.T) {
	stub := &stubEnricher{err: errors.New("upstream down")}
	svc := newTestEnrich(searchCatalog(), stub)

	rec := svc.GetDepartmentDetails(context.Background(), "연세대학교", "치의예과")

	if stub.calls != 1 {
		t.Fatalf("enricher called %d times, want 1", stub.calls)
	}
	if rec.Description != fallbackDescription("연세대학교", "치의예과") {
		t.Errorf("failure should keep the fallback description, got %s", rec.Description)
	}
	if len(rec.AdmissionData) != 3 {
		t.Errorf("failure should keep the local trend, got %d entries", len(rec.AdmissionData))
	}
}

func TestMergeEnrichmentNilPayload(t *testing.T) {
	base := model.DepartmentRecord{Description: "기존 설명입니다"}
	if got := MergeEnrichment(base, nil); got.Description != base.Description {
		t.Errorf("nil payload must not modify the base record")
	}
}

func TestMergeEnrichmentRejectsShortDescription(t *testing.T) {
	base := model.DepartmentRecord{Description: "충분히 긴 기본 설명입니다."}
	got := MergeEnrichment(base, &EnrichmentPayload{Description: "짧음"})
	if got.Description != base.Description {
		t.Errorf("short description replaced the fallback: %s", got.Description)
	}
}

func TestMergeEnrichmentAppliesFields(t *testing.T) {
	base := model.DepartmentRecord{
		Description: "기본 설명입니다.",
		AdmissionData: []model.AdmissionYearEntry{
			{Year: "2025학년도", SusiGyogwa: "1.20 (예상)", SusiJonghap: "1.70 (예상)", Jeongsi: "97.0% (예상)"},
			{Year: "2024학년도", SusiGyogwa: "1.25 (추정)", SusiJonghap: "1.55 (추정)", Jeongsi: "96.5% (추정)"},
			{Year: "2023학년도", SusiGyogwa: "1.30 (결과)", SusiJonghap: "1.70 (결과)", Jeongsi: "96.0% (결과)"},
		},
	}
	got := MergeEnrichment(base, &EnrichmentPayload{
		Admission:   &AdmissionPatch{SusiGyogwa: "1.11 (확정)"},
		Summary:     "핵심 요약입니다.",
		Description: "수집된 자료로 보강한 설명입니다.",
	})

	if got.Description != "수집된 자료로 보강한 설명입니다." {
		t.Errorf("Description = %s", got.Description)
	}
	if got.AISummary != "핵심 요약입니다." {
		t.Errorf("AISummary = %s", got.AISummary)
	}
	prev := got.AdmissionData[1]
	if prev.SusiGyogwa != "1.11 (확정)" {
		t.Errorf("patched field not applied: %s", prev.SusiGyogwa)
	}
	// Fields the payload omitted keep their local estimates.
	if prev.SusiJonghap != "1.55 (추정)" || prev.Jeongsi != "96.5% (추정)" {
		t.Errorf("omitted fields were nulled out: %+v", prev)
	}
	if got.AdmissionData[0] != base.AdmissionData[0] || got.AdmissionData[2] != base.AdmissionData[2] {
		t.Errorf("only the prior-year entry may change")
	}
}

func TestFallbackDescription(t *testing.T) {
	cs := fallbackDescription("서울대학교", "컴퓨터공학부")
	if !strings.Contains(cs, "소프트웨어") {
		t.Errorf("computing template not chosen: %s", cs)
	}

	generic := fallbackDescription("가상대학교", "철학과")
	if generic == "" || strings.Contains(generic, "%s") {
		t.Errorf("generic template malformed: %s", generic)
	}
	if again := fallbackDescription("가상대학교", "철학과"); again != generic {
		t.Errorf("fallback must be deterministic per department")
	}
}

func TestApproximateSpecsBands(t *testing.T) {
	tuition, employment := approximateSpecs("국립한밭대학교", model.TierNational, "공학")
	if tuition != "400~450만원 (예상)" {
		t.Errorf("national tuition band = %s", tuition)
	}
	if employment != "70~80% (예상)" {
		t.Errorf("engineering employment band = %s", employment)
	}

	if tuition, _ := approximateSpecs("서울대학교", model.TierSKY, "공학"); tuition != "601만원" {
		t.Errorf("curated figure not preferred: %s", tuition)
	}
}
