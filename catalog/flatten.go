package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/deptsearch/deptsearch-api/model"
)

const (
	graduateMarker = "대학원"
	trackMarker    = "전공"
)

// Trailing program-length parentheticals, e.g. "(4년제)", "(2+4년제)".
var programLengthSuffix = regexp.MustCompile(`\s*\([^()]*년제[^()]*\)$`)

// CleanDepartmentName collapses stray whitespace and strips cosmetic
// program-length suffixes so the cleaned name is usable as a search and
// display identity.
func CleanDepartmentName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	name = programLengthSuffix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// Flatten expands a university's college map into searchable department
// records. Curated records for the university come first and suppress
// auto-generation of the same department. Output order is deterministic
// (curated, then colleges by name, then department insertion order) but
// carries no ranking meaning; ranking is a separate stage.
func Flatten(u *model.University, curated []model.DepartmentRecord) []model.DepartmentRecord {
	// Graduate-only institutions are out of scope for undergraduate search.
	if strings.Contains(u.Name, graduateMarker) {
		return nil
	}

	var results []model.DepartmentRecord
	for _, r := range curated {
		if r.UniversityName == u.Name {
			results = append(results, r)
		}
	}

	colleges := make([]string, 0, len(u.Colleges))
	for name := range u.Colleges {
		colleges = append(colleges, name)
	}
	sort.Strings(colleges)

	for _, college := range colleges {
		if strings.Contains(college, graduateMarker) {
			continue
		}
		for _, rawDept := range u.Colleges[college] {
			if strings.Contains(rawDept, graduateMarker) || strings.Contains(rawDept, trackMarker) {
				continue
			}

			deptName := CleanDepartmentName(rawDept)
			if deptName == "" || hasDepartment(results, deptName) {
				continue
			}

			var fine string
			if u.DeptCategories != nil {
				fine = u.DeptCategories[rawDept]
			}
			field := ClassifyField(deptName, college, u.Tier, fine)

			results = append(results, model.DepartmentRecord{
				ID:                model.RecordID(u.Name, deptName),
				UniversityName:    u.Name,
				DepartmentName:    deptName,
				Location:          u.Location,
				Field:             field,
				AdmissionData:     []model.AdmissionYearEntry{},
				Description:       u.Name + " " + college + " " + deptName,
				TuitionFee:        "700~900만원 (예상)",
				EmploymentRate:    "60~70% (예상)",
				DepartmentRanking: "-",
			})
		}
	}

	return results
}

func hasDepartment(records []model.DepartmentRecord, deptName string) bool {
	for _, r := range records {
		if r.DepartmentName == deptName {
			return true
		}
	}
	return false
}
