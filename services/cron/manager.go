package cron

import (
	"log"
	"time"

	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/services"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron   *cron.Cron
	db     *gorm.DB
	loader *services.DatasetLoader
	enrich *services.EnrichService
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, loader *services.DatasetLoader, enrich *services.EnrichService) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:   c,
		db:     db,
		loader: loader,
		enrich: enrich,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Daily at 3 AM: rebuild the catalog from the dataset
	_, err := m.cron.AddFunc("0 0 3 * * *", func() {
		m.logJobStart("reload_catalog")
		m.ReloadCatalog()
	})
	if err != nil {
		return err
	}

	// 2. Every hour: aggregate search statistics
	_, err = m.cron.AddFunc("0 0 * * * *", func() {
		m.logJobStart("aggregate_search_stats")
		m.AggregateSearchStatistics()
	})
	if err != nil {
		return err
	}

	// 3. Daily at 4 AM: cleanup old logs
	_, err = m.cron.AddFunc("0 0 4 * * *", func() {
		m.logJobStart("cleanup_old_logs")
		m.CleanupOldLogs()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
		Metadata:  []byte("{}"),
	}
	m.db.Create(&cronLog)
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "completed",
			"completed_at": time.Now(),
			"message":      message,
		})
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "failed",
			"completed_at": time.Now(),
			"error_msg":    err.Error(),
		})
}
