package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/database"
	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/services/digitalocean"
)

// DatasetLoader builds catalog snapshots from the admission CSV. The CSV is
// fetched from Spaces when a key is configured, with the local file as
// fallback, then curated records from the database are attached.
type DatasetLoader struct {
	store      *catalog.Store
	db         database.Storage
	spaces     *digitalocean.SpacesClient // optional
	spacesKey  string
	localPath  string
	targetYear int
}

// DatasetLoaderConfig wires the loader's sources.
type DatasetLoaderConfig struct {
	Store      *catalog.Store
	DB         database.Storage
	Spaces     *digitalocean.SpacesClient
	SpacesKey  string
	LocalPath  string
	TargetYear int
}

// NewDatasetLoader creates the loader. Spaces may be nil; the local path is
// then the only source.
func NewDatasetLoader(cfg DatasetLoaderConfig) *DatasetLoader {
	return &DatasetLoader{
		store:      cfg.Store,
		db:         cfg.DB,
		spaces:     cfg.Spaces,
		spacesKey:  cfg.SpacesKey,
		localPath:  cfg.LocalPath,
		targetYear: cfg.TargetYear,
	}
}

// Reload rebuilds the catalog from the dataset and swaps it into the store.
// In-flight searches keep their old snapshot until the swap completes.
func (l *DatasetLoader) Reload(ctx context.Context) error {
	raw, source, err := l.fetchDataset(ctx)
	if err != nil {
		return err
	}

	builder := catalog.NewBuilder(catalog.BuilderConfig{
		TargetYear: l.targetYear,
		FilterYear: true,
	})
	cat, err := builder.Build(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("catalog build failed: %w", err)
	}

	cat.Curated = l.loadCurated()

	l.store.Swap(cat)
	log.Printf("[dataset] catalog reloaded from %s: %d universities, %d curated records",
		source, len(cat.Order), len(cat.Curated))

	if l.db != nil {
		if err := l.db.SetSetting(model.SettingDatasetSource, source); err != nil {
			log.Printf("[dataset] failed to record dataset source: %v", err)
		}
		if err := l.db.SetSetting(model.SettingCatalogLoaded, time.Now().UTC().Format(time.RFC3339)); err != nil {
			log.Printf("[dataset] failed to record catalog load time: %v", err)
		}
	}

	return nil
}

// fetchDataset prefers the Spaces snapshot and falls back to the local file.
func (l *DatasetLoader) fetchDataset(ctx context.Context) (data []byte, source string, err error) {
	if l.spaces != nil && l.spacesKey != "" {
		if ok, _ := l.spaces.FileExists(ctx, l.spacesKey); !ok {
			log.Printf("[dataset] no snapshot at %s, falling back to local file", l.spaces.GetFileURL(l.spacesKey))
		} else {
			data, err = l.spaces.DownloadFile(ctx, l.spacesKey)
			if err == nil {
				return data, "spaces:" + l.spacesKey, nil
			}
			log.Printf("[dataset] spaces download failed, falling back to local file: %v", err)
		}
	}

	data, err = os.ReadFile(l.localPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read dataset %s: %w", l.localPath, err)
	}
	return data, "file:" + l.localPath, nil
}

// loadCurated pulls active curated records from the database. A database
// error degrades to no curated records rather than failing the reload.
func (l *DatasetLoader) loadCurated() []model.DepartmentRecord {
	if l.db == nil {
		return nil
	}

	rows, err := l.db.ListCuratedDepartments(true)
	if err != nil {
		log.Printf("[dataset] loading curated records failed: %v", err)
		return nil
	}

	records := make([]model.DepartmentRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToRecord())
	}
	return records
}
