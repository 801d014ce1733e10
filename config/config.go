package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadENV loads environment variables from .env when GO_ENV is not set to a
// deployed environment.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV       string
	PORT         int
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// Redis (optional; enrichment memo works without it)
	REDIS_URL string
	// Dataset
	DATASET_PATH       string
	DATASET_SPACES_KEY string
	TARGET_YEAR        int
	// Enrichment
	INFERENCE_API_KEY      string
	INFERENCE_MODEL        string
	ENRICH_TIMEOUT_SECONDS int
	// DigitalOcean Spaces
	DO_SPACES_ACCESS_KEY string
	DO_SPACES_SECRET_KEY string
	DO_SPACES_BUCKET     string
	DO_SPACES_REGION     string
	DO_SPACES_ENDPOINT   string
	// Admin
	ADMIN_API_KEY   string
	ALLOWED_ORIGINS string
	// Cron
	CRON_ENABLED bool
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	targetYear, err := strconv.Atoi(os.Getenv("TARGET_YEAR"))
	if err != nil {
		targetYear = 2025
	}

	enrichTimeout, err := strconv.Atoi(os.Getenv("ENRICH_TIMEOUT_SECONDS"))
	if err != nil || enrichTimeout <= 0 {
		enrichTimeout = 8
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	datasetPath := os.Getenv("DATASET_PATH")
	if datasetPath == "" {
		datasetPath = "data/admissions.csv"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		PORT:         port,
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Dataset
		DATASET_PATH:       datasetPath,
		DATASET_SPACES_KEY: os.Getenv("DATASET_SPACES_KEY"),
		TARGET_YEAR:        targetYear,
		// Enrichment
		INFERENCE_API_KEY:      os.Getenv("INFERENCE_API_KEY"),
		INFERENCE_MODEL:        os.Getenv("INFERENCE_MODEL"),
		ENRICH_TIMEOUT_SECONDS: enrichTimeout,
		// Spaces
		DO_SPACES_ACCESS_KEY: os.Getenv("DO_SPACES_ACCESS_KEY"),
		DO_SPACES_SECRET_KEY: os.Getenv("DO_SPACES_SECRET_KEY"),
		DO_SPACES_BUCKET:     os.Getenv("DO_SPACES_BUCKET"),
		DO_SPACES_REGION:     os.Getenv("DO_SPACES_REGION"),
		DO_SPACES_ENDPOINT:   os.Getenv("DO_SPACES_ENDPOINT"),
		// Admin
		ADMIN_API_KEY:   os.Getenv("ADMIN_API_KEY"),
		ALLOWED_ORIGINS: os.Getenv("ALLOWED_ORIGINS"),

		CRON_ENABLED: os.Getenv("CRON_ENABLED") != "false", // default enabled
	}

	return envVariables, nil
}
