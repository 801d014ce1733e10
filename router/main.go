package router

import (
	"time"

	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/database"
	"github.com/deptsearch/deptsearch-api/handlers"
	admin_handlers "github.com/deptsearch/deptsearch-api/handlers/admin"
	department_handlers "github.com/deptsearch/deptsearch-api/handlers/department"
	search_handlers "github.com/deptsearch/deptsearch-api/handlers/search"
	"github.com/deptsearch/deptsearch-api/services"
	"github.com/deptsearch/deptsearch-api/utils/cache"
	"github.com/deptsearch/deptsearch-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
)

// Dependencies carries the already-wired services the routes need. The
// catalog pipeline is shared with the cron manager, so it is built once in
// app setup and handed in here.
type Dependencies struct {
	Store          database.Storage
	CatalogStore   *catalog.Store
	Search         *services.SearchService
	Enrich         *services.EnrichService
	Loader         *services.DatasetLoader
	Redis          *cache.RedisCache // optional
	AllowedOrigins string
}

// SetupRoutes registers middleware and all API routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	allowedOrigins := deps.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:5173"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Initialize handlers
	searchHandler := search_handlers.NewSearchHandler(deps.Search, deps.Store, deps.Redis)
	departmentHandler := department_handlers.NewDepartmentHandler(deps.Enrich)
	catalogHandler := admin_handlers.NewCatalogHandler(deps.Loader, deps.Enrich, deps.CatalogStore, deps.Store, deps.Redis)
	curatedHandler := admin_handlers.NewCuratedHandler(deps.Store)

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, deps.Store, deps.CatalogStore, deps.Redis)
	})

	// API v1 group
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, deps.Store, deps.CatalogStore, deps.Redis)
	})

	// Search routes (public)
	api.Get("/search", searchHandler.HandleSearch)

	// Department detail routes (public)
	departments := api.Group("/departments")
	departments.Get("/detail", departmentHandler.HandleDetail)

	// Admin routes (admin key required)
	adminGroup := api.Group("/admin", middleware.RequireAdminKey(deps.Store))
	adminGroup.Post("/catalog/reload", catalogHandler.HandleReload)
	adminGroup.Get("/cache/stats", catalogHandler.HandleCacheStats)

	curated := adminGroup.Group("/curated")
	curated.Get("/", curatedHandler.HandleList)
	curated.Get("/:id", curatedHandler.HandleGet)
	curated.Post("/", curatedHandler.HandleCreate)
	curated.Put("/:id", curatedHandler.HandleUpdate)
	curated.Delete("/:id", curatedHandler.HandleDelete)
}
