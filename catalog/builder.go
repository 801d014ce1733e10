package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/deptsearch/deptsearch-api/model"
)

// Source dataset column positions (0-based). The file is the national
// per-school, per-department admission quota report; positions are fixed.
const (
	colYear         = 0
	colSchoolType   = 1
	colUniversity   = 4
	colLocation     = 7
	colInstType     = 9
	colCourseType   = 16
	colCategoryMain = 17
	colCategorySub  = 18
	colDepartment   = 21
	colRecruit      = 23
	colApplicants   = 24

	// minColumns is the minimum field count a row needs to be usable.
	// Recruit/applicant columns past this are optional.
	minColumns = 22

	// headerLines is the number of preamble lines before data rows.
	headerLines = 15
)

const (
	courseTypeUndergrad = "대학과정"
	noDepartment        = "소속학과없음"
	defaultCategory     = "기타"
)

// BuilderConfig controls catalog construction.
type BuilderConfig struct {
	TargetYear int
	// FilterYear drops rows whose year column does not match TargetYear.
	// The dataset mixes survey years; production always filters.
	FilterYear bool
}

// Builder turns the row-oriented source dataset into the normalized
// in-memory catalog.
type Builder struct {
	config BuilderConfig
}

// NewBuilder creates a catalog builder.
func NewBuilder(config BuilderConfig) *Builder {
	if config.TargetYear == 0 {
		config.TargetYear = 2025
	}
	return &Builder{config: config}
}

// Build reads the CSV dataset and produces the catalog. Malformed rows are
// skipped, never fatal: the source file contains heterogeneous record types.
func (b *Builder) Build(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	catalog := &Catalog{
		Universities: make(map[string]*model.University),
		TargetYear:   b.config.TargetYear,
	}

	line := 0
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Broken quoting etc. counts as a malformed row.
			skipped++
			continue
		}
		line++
		if line <= headerLines {
			continue
		}
		if !b.ingestRow(catalog, row) {
			skipped++
		}
	}

	if len(catalog.Universities) == 0 {
		return nil, fmt.Errorf("dataset produced no universities (skipped %d rows)", skipped)
	}

	for _, u := range catalog.Universities {
		assignTier(u)
	}

	log.Printf("[catalog] built %d universities for %d (skipped %d rows)",
		len(catalog.Universities), b.config.TargetYear, skipped)

	return catalog, nil
}

// ingestRow folds one source row into the catalog. Returns false when the
// row was skipped.
func (b *Builder) ingestRow(c *Catalog, row []string) bool {
	if len(row) < minColumns {
		return false
	}

	year := strings.TrimSpace(row[colYear])
	if b.config.FilterYear && year != strconv.Itoa(b.config.TargetYear) {
		return false
	}

	schoolType := strings.TrimSpace(row[colSchoolType])
	if !isDegreeGranting(schoolType) {
		return false
	}

	if strings.TrimSpace(row[colCourseType]) != courseTypeUndergrad {
		return false
	}

	deptName := strings.TrimSpace(row[colDepartment])
	if deptName == "" || deptName == noDepartment {
		return false
	}

	univName := strings.TrimSpace(row[colUniversity])
	if univName == "" {
		return false
	}

	univ, ok := c.Universities[univName]
	if !ok {
		univ = &model.University{
			Name:       univName,
			Location:   firstToken(row[colLocation]),
			Type:       strings.TrimSpace(row[colInstType]),
			SchoolType: schoolType,
			Tier:       model.TierRegional,
			EstMetric:  99,
			Colleges:   make(map[string][]string),
		}
		c.Universities[univName] = univ
		c.Order = append(c.Order, univName)
	}

	category := strings.TrimSpace(row[colCategoryMain])
	if category == "" {
		category = defaultCategory
	}

	if !contains(univ.Colleges[category], deptName) {
		univ.Colleges[category] = append(univ.Colleges[category], deptName)
	}

	if fine := fineCategory(row); fine != "" {
		if univ.DeptCategories == nil {
			univ.DeptCategories = make(map[string]string)
		}
		univ.DeptCategories[deptName] = fine
	}

	recruit := parseCount(row, colRecruit)
	applicants := parseCount(row, colApplicants)
	rate := 0.0
	if recruit > 0 {
		rate = round2(float64(applicants) / float64(recruit))
	}
	if univ.Stats == nil {
		univ.Stats = make(map[string]model.RecruitStats)
	}
	stats := univ.Stats[deptName]
	stats.Recruit += recruit
	stats.Applicants += applicants
	if stats.Recruit > 0 {
		stats.Rate = round2(float64(stats.Applicants) / float64(stats.Recruit))
	} else {
		stats.Rate = rate
	}
	univ.Stats[deptName] = stats

	return true
}

// isDegreeGranting accepts only accredited degree-granting school types:
// universities, education universities, science-and-technology institutes
// and the national arts conservatory. Vocational types are rejected.
func isDegreeGranting(schoolType string) bool {
	return strings.HasSuffix(schoolType, "대학교") ||
		strings.HasSuffix(schoolType, "교육대학") ||
		strings.Contains(schoolType, "과학기술원") ||
		strings.Contains(schoolType, "예술종합학교")
}

// fineCategory combines the two-level category columns into the stored
// fine-category string: "broad - fine", or broad alone.
func fineCategory(row []string) string {
	broad := strings.TrimSpace(row[colCategoryMain])
	var fine string
	if len(row) > colCategorySub {
		fine = strings.TrimSpace(row[colCategorySub])
	}
	switch {
	case broad != "" && fine != "":
		return broad + " - " + fine
	case broad != "":
		return broad
	default:
		return ""
	}
}

// firstToken derives the region token: "강원 강릉시" -> "강원".
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func parseCount(row []string, idx int) int {
	if len(row) <= idx {
		return 0
	}
	raw := strings.ReplaceAll(strings.TrimSpace(row[idx]), ",", "")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
