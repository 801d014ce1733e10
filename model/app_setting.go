package model

import (
	"time"

	"gorm.io/gorm"
)

// Setting keys used by the service.
const (
	SettingAdminKeyHash  = "admin_key_hash" // bcrypt hash of the admin API key
	SettingDatasetSource = "dataset_source" // last dataset location loaded
	SettingCatalogLoaded = "catalog_loaded" // timestamp of last successful catalog build
)

// AppSetting is a simple key/value row for operational state.
type AppSetting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Key       string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Value     string         `gorm:"type:text" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}
