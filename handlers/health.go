package handlers

import (
	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/database"
	"github.com/deptsearch/deptsearch-api/utils/cache"
	"github.com/deptsearch/deptsearch-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports process, database, cache and catalog readiness.
// A dead database turns the whole check into a 503 so load balancers stop
// routing here; a missing Redis only degrades the enrichment cache and is
// reported but not fatal.
func HandleCheckHealth(c *fiber.Ctx, store database.Storage, catalogStore *catalog.Store, redis *cache.RedisCache) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "database unreachable")
	}

	redisStatus := "disabled"
	if redis != nil {
		redisStatus = "ok"
		if err := redis.Ping(c.Context()); err != nil {
			redisStatus = "unreachable"
		}
	}

	snapshot := catalogStore.Snapshot()
	return c.JSON(fiber.Map{
		"status":       "ok",
		"database":     "ok",
		"redis":        redisStatus,
		"universities": len(snapshot.Order),
	})
}
