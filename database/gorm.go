package database

import (
	"fmt"
	"log"
	"time"

	"github.com/deptsearch/deptsearch-api/config"
	"github.com/deptsearch/deptsearch-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage is the persistence surface the rest of the app depends on.
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GORM DB access
	GetDB() interface{} // Returns *gorm.DB

	// Curated department records
	ListCuratedDepartments(activeOnly bool) ([]model.CuratedDepartment, error)
	GetCuratedDepartment(id uint) (*model.CuratedDepartment, error)
	CreateCuratedDepartment(rec *model.CuratedDepartment) error
	UpdateCuratedDepartment(rec *model.CuratedDepartment) error
	DeleteCuratedDepartment(id uint) error

	// Search logging
	AddSearchLog(entry model.SearchLog) error

	// Application settings
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.CuratedDepartment{},
		&model.SearchLog{},
		&model.CronJobLog{},
		&model.AppSetting{},
	)
	if err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in repositories/handlers
func (s *GORMStore) GetDB() interface{} {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// ListCuratedDepartments retrieves curated records, optionally only active ones.
func (s *GORMStore) ListCuratedDepartments(activeOnly bool) ([]model.CuratedDepartment, error) {
	var records []model.CuratedDepartment
	query := s.db.Order("university_name, department_name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	result := query.Find(&records)
	return records, result.Error
}

func (s *GORMStore) GetCuratedDepartment(id uint) (*model.CuratedDepartment, error) {
	var record model.CuratedDepartment
	if err := s.db.First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *GORMStore) CreateCuratedDepartment(rec *model.CuratedDepartment) error {
	return s.db.Create(rec).Error
}

func (s *GORMStore) UpdateCuratedDepartment(rec *model.CuratedDepartment) error {
	return s.db.Save(rec).Error
}

func (s *GORMStore) DeleteCuratedDepartment(id uint) error {
	return s.db.Delete(&model.CuratedDepartment{}, id).Error
}

// AddSearchLog records a completed search for later aggregation.
func (s *GORMStore) AddSearchLog(entry model.SearchLog) error {
	return s.db.Create(&entry).Error
}

// GetSetting returns the value of an application setting.
func (s *GORMStore) GetSetting(key string) (string, error) {
	var setting model.AppSetting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return "", err
	}
	return setting.Value, nil
}

// SetSetting upserts an application setting.
func (s *GORMStore) SetSetting(key, value string) error {
	var setting model.AppSetting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return s.db.Create(&model.AppSetting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return s.db.Save(&setting).Error
}
