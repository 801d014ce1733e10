package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CuratedDepartment is a hand-maintained admission record for a department
// whose real published results we trust over the estimator. Curated rows
// take precedence during flattening and suppress auto-generation of the
// same department.
type CuratedDepartment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ExternalID     string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"external_id"` // e.g. "snu-cs-2025"
	UniversityName string         `gorm:"type:varchar(120);not null;index" json:"university_name"`
	DepartmentName string         `gorm:"type:varchar(120);not null" json:"department_name"`
	Location       string         `gorm:"type:varchar(40)" json:"location"`
	Field          string         `gorm:"type:varchar(40)" json:"field"`
	AdmissionData  datatypes.JSON `gorm:"type:jsonb" json:"admission_data"`
	Description    string         `gorm:"type:text" json:"description"`
	TuitionFee     string         `gorm:"type:varchar(60)" json:"tuition_fee"`
	EmploymentRate string         `gorm:"type:varchar(60)" json:"employment_rate"`
	DeptRanking    string         `gorm:"type:varchar(60)" json:"department_ranking"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CuratedDepartment) TableName() string {
	return "curated_departments"
}

// ToRecord converts the persisted row into the in-memory search record.
// A malformed admission_data column degrades to an empty trend rather than
// failing the search.
func (c *CuratedDepartment) ToRecord() DepartmentRecord {
	var admissions []AdmissionYearEntry
	if len(c.AdmissionData) > 0 {
		_ = json.Unmarshal(c.AdmissionData, &admissions)
	}

	return DepartmentRecord{
		ID:                c.ExternalID,
		UniversityName:    c.UniversityName,
		DepartmentName:    c.DepartmentName,
		Location:          c.Location,
		Field:             c.Field,
		AdmissionData:     admissions,
		Description:       c.Description,
		TuitionFee:        c.TuitionFee,
		EmploymentRate:    c.EmploymentRate,
		DepartmentRanking: c.DeptRanking,
	}
}
