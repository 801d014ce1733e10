package model

import (
	"time"

	"gorm.io/gorm"
)

// SearchLog records one search call for later aggregation. Writing a log
// row is best-effort and never fails the search itself.
type SearchLog struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RequestID      string         `gorm:"type:varchar(40);index" json:"request_id"`
	Query          string         `gorm:"type:varchar(200);index" json:"query"`
	ProfessionMode string         `gorm:"type:varchar(20)" json:"profession_mode"` // empty when none detected
	MatchCount     int            `json:"match_count"`                             // true count before truncation
	ReturnedCount  int            `json:"returned_count"`
	DurationMS     int64          `json:"duration_ms"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SearchLog) TableName() string {
	return "search_logs"
}
