package model

// AdmissionYearEntry is one year of the admission trend shown on the detail
// view. The three track values are formatted strings combining a numeric
// estimate with a provenance tag, e.g. "1.35 (추정)".
type AdmissionYearEntry struct {
	Year        string `json:"year"`         // "2025학년도"
	SusiGyogwa  string `json:"susi_gyogwa"`  // early admission, subject-grade track
	SusiJonghap string `json:"susi_jonghap"` // early admission, holistic track
	Jeongsi     string `json:"jeongsi"`      // regular admission percentile
}

// DepartmentRecord is the flattened, searchable unit: one department at one
// university. Records are recomputed per search from the catalog; only the
// detail enricher mutates a copy to attach the admission trend.
type DepartmentRecord struct {
	ID                string               `json:"id"` // "<university>-<department>"
	UniversityName    string               `json:"university_name"`
	DepartmentName    string               `json:"department_name"`
	Location          string               `json:"location"`
	Field             string               `json:"field"`
	AdmissionData     []AdmissionYearEntry `json:"admission_data"`
	Description       string               `json:"description"`
	TuitionFee        string               `json:"tuition_fee"`
	EmploymentRate    string               `json:"employment_rate"`
	DepartmentRanking string               `json:"department_ranking"`
	AISummary         string               `json:"ai_summary,omitempty"`
}

// RecordID builds the composite identity used for dedup and cache keys.
func RecordID(universityName, departmentName string) string {
	return universityName + "-" + departmentName
}

// SearchResponse is the payload of one search call. Results are ranked and
// truncated; EstimatedTotalCount is the true candidate count before
// truncation, so it is always >= len(Departments).
type SearchResponse struct {
	EstimatedTotalCount int                `json:"estimated_total_count"`
	Departments         []DepartmentRecord `json:"departments"`
}
