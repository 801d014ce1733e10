package admin

import (
	"time"

	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/database"
	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/services"
	"github.com/deptsearch/deptsearch-api/utils/cache"
	"github.com/deptsearch/deptsearch-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler exposes admin operations on the catalog snapshot
type CatalogHandler struct {
	loader *services.DatasetLoader
	enrich *services.EnrichService
	store  *catalog.Store
	db     database.Storage
	redis  *cache.RedisCache // optional
}

// NewCatalogHandler creates a new admin catalog handler
func NewCatalogHandler(loader *services.DatasetLoader, enrich *services.EnrichService, store *catalog.Store, db database.Storage, redis *cache.RedisCache) *CatalogHandler {
	return &CatalogHandler{
		loader: loader,
		enrich: enrich,
		store:  store,
		db:     db,
		redis:  redis,
	}
}

// HandleReload handles POST /api/v1/admin/catalog/reload. The rebuild is
// synchronous so the admin sees build errors in the response.
func (h *CatalogHandler) HandleReload(c *fiber.Ctx) error {
	if err := h.loader.Reload(c.Context()); err != nil {
		return response.InternalServerError(c, "Catalog reload failed: "+err.Error())
	}

	snapshot := h.store.Snapshot()
	return response.SuccessWithMessage(c, "Catalog reloaded", fiber.Map{
		"universities":    len(snapshot.Order),
		"curated_records": len(snapshot.Curated),
		"target_year":     snapshot.TargetYear,
	})
}

// HandleCacheStats handles GET /api/v1/admin/cache/stats
func (h *CatalogHandler) HandleCacheStats(c *fiber.Ctx) error {
	stats := fiber.Map{
		"enrich_memo_size": h.enrich.MemoSize(),
		"redis_connected":  false,
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Context()); err == nil {
			stats["redis_connected"] = true
			if keys, err := h.redis.Keys(c.Context(), "enrich:*"); err == nil {
				stats["redis_enrich_keys"] = len(keys)
			}
			key := "search:count:" + time.Now().UTC().Format("2006-01-02")
			if count, err := h.redis.Get(c.Context(), key); err == nil {
				stats["searches_today"] = count
			}
		}
	}

	if loaded, err := h.db.GetSetting(model.SettingCatalogLoaded); err == nil {
		stats["catalog_loaded_at"] = loaded
	}
	if source, err := h.db.GetSetting(model.SettingDatasetSource); err == nil {
		stats["dataset_source"] = source
	}

	return response.Success(c, stats)
}
