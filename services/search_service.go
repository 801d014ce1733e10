package services

import (
	"sort"
	"strings"

	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/model"
)

// MaxResults caps the ranked result list; the true candidate count is
// still reported.
const MaxResults = 100

// suggestionUniversities is how many catalog universities (in dataset
// order) feed the empty-query suggestion set.
const suggestionUniversities = 10

var suggestionKeywords = []string{"컴퓨터", "경영"}

// SearchService matches free-text queries against the catalog and returns
// ranked department records.
type SearchService struct {
	store  *catalog.Store
	scorer *Scorer
}

// NewSearchService creates a search service over the catalog store.
func NewSearchService(store *catalog.Store, scorer *Scorer) *SearchService {
	return &SearchService{store: store, scorer: scorer}
}

// Search runs one search call. Candidate assembly completes fully before
// scoring; truncation happens after the full sort.
func (s *SearchService) Search(query string) *model.SearchResponse {
	cat := s.store.Snapshot()
	query = strings.TrimSpace(query)

	if query == "" {
		suggestions := s.suggestions(cat)
		return &model.SearchResponse{
			EstimatedTotalCount: len(suggestions),
			Departments:         suggestions,
		}
	}

	candidates := s.assemble(cat, query)

	if mode := DetectProfessionMode(query); mode != ModeNone {
		filtered := candidates[:0]
		for _, c := range candidates {
			if mode.MatchesDepartment(c.DepartmentName) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	s.rank(cat, query, candidates)

	total := len(candidates)
	if total > MaxResults {
		candidates = candidates[:MaxResults]
	}

	return &model.SearchResponse{
		EstimatedTotalCount: total,
		Departments:         candidates,
	}
}

// suggestions builds the curated empty-query set: a fixed keyword filter
// over the first few catalog universities.
func (s *SearchService) suggestions(cat *catalog.Catalog) []model.DepartmentRecord {
	var out []model.DepartmentRecord
	for _, u := range cat.First(suggestionUniversities) {
		for _, d := range catalog.Flatten(u, cat.Curated) {
			if containsAny(d.DepartmentName, suggestionKeywords...) {
				out = append(out, d)
			}
		}
	}
	return out
}

// assemble gathers candidates from university-name matches and the global
// department/field scan, deduplicating by record identity.
func (s *SearchService) assemble(cat *catalog.Catalog, query string) []model.DepartmentRecord {
	// Multi-token queries carry the university in the first token
	// ("서울대 컴퓨터"); the loose form handles "서울대"-style abbreviations.
	firstToken := query
	if f := strings.Fields(query); len(f) > 0 {
		firstToken = f[0]
	}
	normalized := strings.TrimSuffix(firstToken, "대")

	var results []model.DepartmentRecord
	seen := make(map[string]bool)
	matchedUniv := make(map[string]bool)

	add := func(d model.DepartmentRecord) {
		if !seen[d.ID] {
			seen[d.ID] = true
			results = append(results, d)
		}
	}

	for _, u := range cat.All() {
		if !universityMatches(u.Name, query, normalized) &&
			!universityMatches(u.Name, firstToken, normalized) {
			continue
		}
		matchedUniv[u.Name] = true

		depts := catalog.Flatten(u, cat.Curated)

		cleanQuery := cleanUniversityName(query)
		cleanUniv := cleanUniversityName(u.Name)

		if cleanQuery == cleanUniv {
			for _, d := range depts {
				add(d)
			}
			continue
		}

		// "서울대 컴퓨터" -> department remainder "컴퓨터". Longest
		// university form first so no partial suffix survives.
		remainder := query
		for _, form := range []string{u.Name, cleanUniv + "대학교", cleanUniv + "대학", cleanUniv + "대", cleanUniv} {
			remainder = strings.ReplaceAll(remainder, form, "")
		}
		remainder = strings.TrimSpace(remainder)
		if remainder != "" {
			for _, d := range depts {
				if strings.Contains(d.DepartmentName, remainder) {
					add(d)
				}
			}
		} else {
			for _, d := range depts {
				add(d)
			}
		}
	}

	// Global department/field scan over universities the name match
	// skipped; runs alongside (not instead of) university matches.
	if len([]rune(query)) >= 2 {
		for _, u := range cat.All() {
			if matchedUniv[u.Name] {
				continue
			}
			for _, d := range catalog.Flatten(u, cat.Curated) {
				if departmentMatches(d, query) {
					add(d)
				}
			}
		}
	}

	return results
}

func (s *SearchService) rank(cat *catalog.Catalog, query string, records []model.DepartmentRecord) {
	scores := make(map[string]float64, len(records))
	for _, r := range records {
		if u, ok := cat.Get(r.UniversityName); ok {
			scores[r.ID] = s.scorer.Score(u, r.DepartmentName, query)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return scores[records[i].ID] > scores[records[j].ID]
	})
}

func universityMatches(name, query, normalized string) bool {
	if strings.Contains(name, query) || strings.Contains(query, name) {
		return true
	}
	return len([]rune(normalized)) > 1 && strings.Contains(name, normalized)
}

func departmentMatches(d model.DepartmentRecord, query string) bool {
	if strings.Contains(d.DepartmentName, query) || strings.Contains(query, d.DepartmentName) {
		return true
	}
	return d.Field != "" &&
		(strings.Contains(d.Field, query) || strings.Contains(query, d.Field))
}

// cleanUniversityName strips the common institutional suffixes so
// "서울대학교", "서울대학" and "서울대" all reduce to "서울".
func cleanUniversityName(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case strings.HasSuffix(name, "대학교"):
		name = strings.TrimSuffix(name, "대학교")
	case strings.HasSuffix(name, "대학"):
		name = strings.TrimSuffix(name, "대학")
	}
	return strings.TrimSuffix(name, "대")
}
