package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/utils/cache"
)

// AdmissionPatch is the prior-year trend a collaborator may return. Empty
// fields mean "not returned" and keep the local default.
type AdmissionPatch struct {
	SusiGyogwa  string `json:"susi_gyogwa"`
	SusiJonghap string `json:"susi_jonghap"`
	Jeongsi     string `json:"jeongsi"`
}

// EnrichmentPayload is the structured result of one external enrichment
// call. Any absent/malformed field is treated as not-returned.
type EnrichmentPayload struct {
	Admission   *AdmissionPatch `json:"admission_prev_year"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
}

// Enricher is the external enrichment collaborator capability. A failed or
// timed-out call returns (nil, err) and the caller keeps its defaults;
// enrichment failure never surfaces to the user.
type Enricher interface {
	EnrichDepartment(ctx context.Context, univ *model.University, deptName string, stats *model.RecruitStats) (*EnrichmentPayload, error)
}

// minDescriptionRunes is the threshold below which a collaborator
// description is considered junk and the fallback stays.
const minDescriptionRunes = 5

const enrichTTL = 24 * time.Hour

// EnrichService builds the detail view for one department: estimated
// 3-year admission trend, tuition/employment baselines and a description,
// optionally refined by the external collaborator. Results are memoized per
// (university, department) for the process lifetime; staleness is accepted.
type EnrichService struct {
	store    *catalog.Store
	est      *Estimator
	enricher Enricher          // optional
	redis    *cache.RedisCache // optional L2
	timeout  time.Duration

	mu   sync.RWMutex
	memo map[string]model.DepartmentRecord
}

// NewEnrichService creates the detail enricher. enricher and redis may be
// nil; local estimates then stand on their own.
func NewEnrichService(store *catalog.Store, est *Estimator, enricher Enricher, redis *cache.RedisCache, timeout time.Duration) *EnrichService {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &EnrichService{
		store:    store,
		est:      est,
		enricher: enricher,
		redis:    redis,
		timeout:  timeout,
		memo:     make(map[string]model.DepartmentRecord),
	}
}

// MemoSize reports the number of memoized enrichment results.
func (s *EnrichService) MemoSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memo)
}

// GetDepartmentDetails produces the enriched detail record. An unknown
// university yields an explicit placeholder record, never an error.
func (s *EnrichService) GetDepartmentDetails(ctx context.Context, universityName, departmentName string) model.DepartmentRecord {
	cat := s.store.Snapshot()

	univ, ok := cat.Get(universityName)
	if !ok {
		return notFoundRecord(universityName, departmentName)
	}

	key := model.RecordID(universityName, departmentName)
	s.mu.RLock()
	memoized, hit := s.memo[key]
	s.mu.RUnlock()
	if hit {
		return memoized
	}
	if s.redis != nil {
		var cached model.DepartmentRecord
		err := s.redis.GetJSON(ctx, enrichKey(key), &cached)
		if err == nil && cached.ID != "" {
			s.remember(key, cached)
			return cached
		}
		if err != nil && !errors.Is(err, cache.ErrNotFound) {
			// An entry that no longer decodes would shadow every rebuild.
			_ = s.redis.Delete(ctx, enrichKey(key))
		}
	}

	record := s.buildLocal(cat, univ, departmentName)

	if s.enricher != nil {
		var stats *model.RecruitStats
		if st, ok := univ.Stats[departmentName]; ok {
			stats = &st
		}

		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		payload, err := s.enricher.EnrichDepartment(callCtx, univ, departmentName, stats)
		cancel()
		if err != nil {
			// Degraded data quality, not an error: defaults stand.
			log.Printf("[enrich] %s: falling back to local estimates: %v", key, err)
		} else {
			record = MergeEnrichment(record, payload)
		}
	}

	s.remember(key, record)
	if s.redis != nil {
		if err := s.redis.SetJSON(ctx, enrichKey(key), record, enrichTTL); err != nil {
			log.Printf("[enrich] redis set failed for %s: %v", key, err)
		}
	}

	return record
}

func (s *EnrichService) remember(key string, record model.DepartmentRecord) {
	s.mu.Lock()
	s.memo[key] = record
	s.mu.Unlock()
}

func enrichKey(id string) string {
	return "enrich:" + id
}

// buildLocal assembles the all-local detail record: re-derived field,
// tuition/employment baselines, fallback description and the 3-year trend.
func (s *EnrichService) buildLocal(cat *catalog.Catalog, univ *model.University, departmentName string) model.DepartmentRecord {
	college := univ.CollegeOf(departmentName)
	var fine string
	if univ.DeptCategories != nil {
		fine = univ.DeptCategories[departmentName]
	}
	field := catalog.ClassifyField(departmentName, college, univ.Tier, fine)

	tuition, employment := approximateSpecs(univ.Name, univ.Tier, field)

	year := cat.TargetYear
	cur := s.est.Estimate(univ.Tier, departmentName, year)
	prev := s.est.Estimate(univ.Tier, departmentName, year-1)
	before := s.est.Estimate(univ.Tier, departmentName, year-2)

	trend := []model.AdmissionYearEntry{
		{
			Year:        yearLabel(year),
			SusiGyogwa:  cur.SusiString() + " (예상)",
			SusiJonghap: offsetSusi(cur, 0.5) + " (예상)",
			Jeongsi:     cur.JeongsiString() + " (예상)",
		},
		{
			Year:        yearLabel(year - 1),
			SusiGyogwa:  prev.SusiString() + " (추정)",
			SusiJonghap: offsetSusi(prev, 0.3) + " (추정)",
			Jeongsi:     prev.JeongsiString() + " (추정)",
		},
		{
			Year:        yearLabel(year - 2),
			SusiGyogwa:  before.SusiString() + " (결과)",
			SusiJonghap: offsetSusi(before, 0.4) + " (결과)",
			Jeongsi:     before.JeongsiString() + " (결과)",
		},
	}

	return model.DepartmentRecord{
		ID:                model.RecordID(univ.Name, departmentName) + "-detail",
		UniversityName:    univ.Name,
		DepartmentName:    departmentName,
		Location:          univ.Location,
		Field:             field,
		AdmissionData:     trend,
		Description:       fallbackDescription(univ.Name, departmentName),
		TuitionFee:        tuition,
		EmploymentRate:    employment,
		DepartmentRanking: "-",
	}
}

// MergeEnrichment applies a collaborator payload over a locally-built base
// record. Only fields present and valid in the patch overwrite; the merge
// never reduces the set of populated fields. A nil payload returns the base
// unchanged.
func MergeEnrichment(base model.DepartmentRecord, payload *EnrichmentPayload) model.DepartmentRecord {
	if payload == nil {
		return base
	}

	if desc := strings.TrimSpace(payload.Description); len([]rune(desc)) > minDescriptionRunes {
		base.Description = desc
	}
	if payload.Summary != "" {
		base.AISummary = payload.Summary
	}

	// The middle (prior-year) trend entry is the one the collaborator can
	// replace, field by field.
	if payload.Admission != nil && len(base.AdmissionData) >= 2 {
		entry := &base.AdmissionData[1]
		if payload.Admission.SusiGyogwa != "" {
			entry.SusiGyogwa = payload.Admission.SusiGyogwa
		}
		if payload.Admission.SusiJonghap != "" {
			entry.SusiJonghap = payload.Admission.SusiJonghap
		}
		if payload.Admission.Jeongsi != "" {
			entry.Jeongsi = payload.Admission.Jeongsi
		}
	}

	return base
}

func notFoundRecord(universityName, departmentName string) model.DepartmentRecord {
	return model.DepartmentRecord{
		ID:                "not-found",
		UniversityName:    universityName,
		DepartmentName:    departmentName,
		AdmissionData:     []model.AdmissionYearEntry{},
		Description:       "정보 없음",
		TuitionFee:        "-",
		EmploymentRate:    "-",
		DepartmentRanking: "-",
	}
}

func yearLabel(year int) string {
	return strconv.Itoa(year) + "학년도"
}

func offsetSusi(e Estimate, delta float64) string {
	return fmt.Sprintf("%.2f", e.Susi+delta)
}

// Known average tuition/employment figures for major universities.
var realSpecs = map[string]struct{ tuition, employment string }{
	"서울대학교":    {"601만원", "71.1%"},
	"연세대학교":    {"915만원", "72.5%"},
	"고려대학교":    {"827만원", "70.3%"},
	"성균관대학교":   {"838만원", "77.1%"},
	"한양대학교":    {"849만원", "73.8%"},
	"서강대학교":    {"793만원", "73.9%"},
	"건국대학교":    {"827만원", "64.8%"},
	"중앙대학교":    {"809만원", "70.1%"},
	"경희대학교":    {"795만원", "67.8%"},
	"한국외국어대학교": {"714만원", "63.2%"},
	"서울시립대학교":  {"239만원", "65.5%"},
	"이화여자대학교":  {"869만원", "65.3%"},
	"부산대학교":    {"446만원", "59.2%"},
	"경북대학교":    {"450만원", "60.4%"},
	"충남대학교":    {"437만원", "61.3%"},
	"전남대학교":    {"417만원", "58.1%"},
}

// approximateSpecs returns known figures when curated, else tier/field
// heuristic bands.
func approximateSpecs(univName string, tier model.Tier, field string) (tuition, employment string) {
	if real, ok := realSpecs[univName]; ok {
		return real.tuition, real.employment
	}

	switch {
	case tier == model.TierNational || tier == model.TierRegional || tier == model.TierEdu:
		tuition = "400~450만원 (예상)"
	case field == catalog.FieldEngineering || isMedicalField(field) || field == catalog.FieldArtsSports:
		tuition = "900~950만원 (예상)"
	case field == catalog.FieldNatural:
		tuition = "800~850만원 (예상)"
	default:
		tuition = "700~780만원 (예상)"
	}

	switch {
	case tier == model.TierSKY || tier == model.TierTop15 || isMedicalField(field) || field == catalog.FieldEngineering:
		employment = "70~80% (예상)"
	case tier == model.TierEdu:
		employment = "60~70% (임용 포함)"
	default:
		employment = "60~70% (예상)"
	}

	return tuition, employment
}

func isMedicalField(field string) bool {
	switch field {
	case catalog.FieldMedGeneric, catalog.FieldMedicine, catalog.FieldDentistry,
		catalog.FieldTraditional, catalog.FieldVeterinary, catalog.FieldPharmacy,
		catalog.FieldNursing:
		return true
	}
	return false
}

type descriptionTemplate struct {
	keywords []string
	template string // %s %s = university, department
}

var descriptionTemplates = []descriptionTemplate{
	{[]string{"의예", "의학"}, "%s %s는 생명 존중의 가치를 바탕으로 인류 건강에 기여하는 우수한 의료인을 양성합니다."},
	{[]string{"컴퓨터", "소프트웨어", "AI", "인공지능"}, "%s %s는 4차 산업혁명을 선도하는 창의적이고 혁신적인 소프트웨어 전문 인재를 배출합니다."},
	{[]string{"전자", "전기"}, "%s %s는 첨단 전자 기술을 선도하며 미래 사회를 이끌어갈 창의적인 공학 인재를 육성합니다."},
	{[]string{"경영"}, "%s %s는 글로벌 비즈니스 환경을 이끌어갈 리더십과 실무 능력을 겸비한 전문 경영인을 육성합니다."},
	{[]string{"경제"}, "%s %s는 경제 현상에 대한 통찰력과 분석력을 갖춘 글로벌 경제 전문가를 양성합니다."},
	{[]string{"국어", "국문"}, "%s %s는 우리말과 글에 대한 깊이 있는 연구를 통해 민족 문화 창달에 기여하는 인재를 기릅니다."},
	{[]string{"영어", "영문"}, "%s %s는 글로벌 시대의 필수 역량인 영어 능력과 인문학적 소양을 갖춘 국제적 인재를 교육합니다."},
	{[]string{"간호"}, "%s %s는 인간에 대한 사랑과 봉사 정신을 바탕으로 국민 건강 증진에 이바지하는 전문 간호사를 양성합니다."},
	{[]string{"교육"}, "%s %s는 올바른 교육관과 전문 지식을 갖춘 미래 사회의 참된 스승을 양성하는 요람입니다."},
	{[]string{"디자인", "미술"}, "%s %s는 독창적인 예술 감각과 실무 능력을 함양하여 문화 예술계를 이끌어갈 전문가를 양성합니다."},
}

var genericReputations = []string{
	"우수한 교육 환경",
	"체계적인 커리큘럼",
	"높은 경쟁력",
	"창의적 인재 양성",
}

// fallbackDescription is the local description used when the collaborator
// returns nothing useful. Deterministic per (university, department) so
// repeated detail calls agree.
func fallbackDescription(univName, deptName string) string {
	for _, t := range descriptionTemplates {
		if containsAny(deptName, t.keywords...) {
			return fmt.Sprintf(t.template, univName, deptName)
		}
	}

	h := fnv.New32a()
	h.Write([]byte(univName + deptName))
	reputation := genericReputations[int(h.Sum32())%len(genericReputations)]
	return fmt.Sprintf("%s %s은(는) %s을 바탕으로 해당 분야의 전문가를 양성하며, 국내에서 꾸준한 인지도를 유지하고 있습니다.", univName, deptName, reputation)
}
