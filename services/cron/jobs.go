package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deptsearch/deptsearch-api/model"
)

// searchLogRetention is how long raw search logs are kept before cleanup.
const searchLogRetention = 30 * 24 * time.Hour

// ReloadCatalog rebuilds the catalog snapshot from the dataset. Runs daily
// so curated record edits and dataset snapshots land without a restart.
func (m *CronManager) ReloadCatalog() {
	jobName := "reload_catalog"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := m.loader.Reload(ctx); err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, "catalog snapshot rebuilt")
}

// AggregateSearchStatistics summarizes the last hour of search logs into
// the cron log's metadata column.
func (m *CronManager) AggregateSearchStatistics() {
	jobName := "aggregate_search_stats"
	since := time.Now().Add(-time.Hour)

	var total int64
	if err := m.db.Model(&model.SearchLog{}).
		Where("created_at >= ?", since).
		Count(&total).Error; err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to count search logs: %w", err))
		return
	}

	type modeCount struct {
		ProfessionMode string
		Count          int64
	}
	var modes []modeCount
	if err := m.db.Model(&model.SearchLog{}).
		Select("profession_mode, count(*) as count").
		Where("created_at >= ? AND profession_mode <> ''", since).
		Group("profession_mode").
		Find(&modes).Error; err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to aggregate profession modes: %w", err))
		return
	}

	byMode := make(map[string]int64, len(modes))
	for _, mc := range modes {
		byMode[mc.ProfessionMode] = mc.Count
	}

	summary := map[string]interface{}{
		"searches_last_hour": total,
		"by_profession_mode": byMode,
		"enrich_memo_size":   m.enrich.MemoSize(),
	}
	metadata, _ := json.Marshal(summary)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Update("metadata", metadata)

	m.logJobComplete(jobName, fmt.Sprintf("aggregated %d searches", total))
}

// CleanupOldLogs deletes search logs and cron logs past the retention window.
func (m *CronManager) CleanupOldLogs() {
	jobName := "cleanup_old_logs"
	cutoff := time.Now().Add(-searchLogRetention)

	searchResult := m.db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&model.SearchLog{})
	if searchResult.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete old search logs: %w", searchResult.Error))
		return
	}

	cronResult := m.db.Unscoped().
		Where("created_at < ? AND job_name <> ?", cutoff, jobName).
		Delete(&model.CronJobLog{})
	if cronResult.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete old cron logs: %w", cronResult.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("deleted %d search logs, %d cron logs",
		searchResult.RowsAffected, cronResult.RowsAffected))
}
