package model

// Tier is the discrete prestige bucket assigned to a university during
// catalog construction. Lower EstMetric = more prestigious within a tier.
type Tier string

const (
	TierSKY      Tier = "SKY"      // top-3 comprehensive + science institutes
	TierTop15    Tier = "Top15"    // elite private universities
	TierInSeoul  Tier = "InSeoul"  // located in Seoul
	TierMetro    Tier = "Metro"    // Gyeonggi / Incheon
	TierNational Tier = "National" // national flagship designations
	TierRegional Tier = "Regional" // default
	TierEdu      Tier = "Edu"      // teacher-training universities
)

// RecruitStats holds per-department recruitment numbers accumulated from the
// source dataset. Rate is applicants/recruit rounded to 2 decimals, 0 when
// no seats were offered.
type RecruitStats struct {
	Recruit    int     `json:"recruit"`
	Applicants int     `json:"applicants"`
	Rate       float64 `json:"rate"`
}

// University is one normalized catalog entry. Built once per catalog load
// and treated as read-only reference data afterwards.
type University struct {
	Name       string `json:"name"`
	Location   string `json:"location"` // first token of the raw address, e.g. "서울"
	Type       string `json:"type"`     // 사립, 국립, ...
	SchoolType string `json:"school_type"`
	Tier       Tier   `json:"tier"`
	EstMetric  int    `json:"est_metric"`

	// Colleges maps a college/category name to its department names.
	Colleges map[string][]string `json:"colleges"`
	// DeptCategories maps a department name to its fine category string
	// ("broad - fine" when both levels are present in the source row).
	DeptCategories map[string]string `json:"dept_categories,omitempty"`
	// Stats maps a department name to its recruitment statistics.
	Stats map[string]RecruitStats `json:"stats,omitempty"`
}

// HasDepartment reports whether the department appears in any college.
func (u *University) HasDepartment(deptName string) bool {
	for _, depts := range u.Colleges {
		for _, d := range depts {
			if d == deptName {
				return true
			}
		}
	}
	return false
}

// CollegeOf returns the college name holding the department, or "".
func (u *University) CollegeOf(deptName string) string {
	for college, depts := range u.Colleges {
		for _, d := range depts {
			if d == deptName {
				return college
			}
		}
	}
	return ""
}
