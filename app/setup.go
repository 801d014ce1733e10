package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/deptsearch/deptsearch-api/api"
	"github.com/deptsearch/deptsearch-api/catalog"
	"github.com/deptsearch/deptsearch-api/config"
	"github.com/deptsearch/deptsearch-api/database"
	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/router"
	"github.com/deptsearch/deptsearch-api/services"
	crawler_service "github.com/deptsearch/deptsearch-api/services/crawler"
	cron_service "github.com/deptsearch/deptsearch-api/services/cron"
	"github.com/deptsearch/deptsearch-api/services/digitalocean"
	"github.com/deptsearch/deptsearch-api/utils/cache"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get GORM DB instance")
	}

	if err := database.NewSeeder(db).SeedAll(); err != nil {
		log.Printf("Warning: seeding failed: %v", err)
	}

	// Redis is optional; enrichment falls back to the in-process memo.
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Enrichment L2 cache disabled.", err)
			redisCache = nil
		}
	}

	// Spaces is optional; the local dataset file is always a valid source.
	var spacesClient *digitalocean.SpacesClient
	if getEnv.DO_SPACES_ACCESS_KEY != "" && getEnv.DO_SPACES_SECRET_KEY != "" {
		spacesClient, err = digitalocean.NewSpacesClient(digitalocean.SpacesConfig{
			AccessKey: getEnv.DO_SPACES_ACCESS_KEY,
			SecretKey: getEnv.DO_SPACES_SECRET_KEY,
			Bucket:    getEnv.DO_SPACES_BUCKET,
			Region:    getEnv.DO_SPACES_REGION,
			Endpoint:  getEnv.DO_SPACES_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: Failed to create Spaces client: %v. Using local dataset only.", err)
			spacesClient = nil
		}
	}

	// Build the catalog pipeline and load the first snapshot.
	catalogStore := catalog.NewStore(&catalog.Catalog{
		Universities: make(map[string]*model.University),
		TargetYear:   getEnv.TARGET_YEAR,
	})

	loader := services.NewDatasetLoader(services.DatasetLoaderConfig{
		Store:      catalogStore,
		DB:         store,
		Spaces:     spacesClient,
		SpacesKey:  getEnv.DATASET_SPACES_KEY,
		LocalPath:  getEnv.DATASET_PATH,
		TargetYear: getEnv.TARGET_YEAR,
	})

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 5*time.Minute)
	err = loader.Reload(loadCtx)
	cancelLoad()
	if err != nil {
		print("Failed to build the catalog from the admission dataset\n")
		return err
	}

	// Search and enrichment services
	estimator := services.NewEstimator(nil)
	scorer := services.NewScorer(estimator, getEnv.TARGET_YEAR)
	searchService := services.NewSearchService(catalogStore, scorer)

	var enricher services.Enricher
	if getEnv.INFERENCE_API_KEY != "" {
		inference := digitalocean.NewInferenceClient(digitalocean.InferenceConfig{
			APIKey: getEnv.INFERENCE_API_KEY,
			Model:  getEnv.INFERENCE_MODEL,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 15*time.Second)
		if err := inference.HealthCheck(pingCtx); err != nil {
			log.Printf("Warning: inference API unreachable, enrichment will degrade to local estimates: %v", err)
		}
		cancelPing()

		pages := crawler_service.NewPageCrawler(0)
		enricher = services.NewAIEnricher(inference, pages)
	} else {
		log.Println("INFERENCE_API_KEY not set; department details use local estimates only")
	}

	enrichService := services.NewEnrichService(
		catalogStore,
		estimator,
		enricher,
		redisCache,
		time.Duration(getEnv.ENRICH_TIMEOUT_SECONDS)*time.Second,
	)

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron_service.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron_service.NewCronManager(db, loader, enrichService)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, router.Dependencies{
		Store:          store,
		CatalogStore:   catalogStore,
		Search:         searchService,
		Enrich:         enrichService,
		Loader:         loader,
		Redis:          redisCache,
		AllowedOrigins: getEnv.ALLOWED_ORIGINS,
	})

	// Get the PORT & Start the Server
	return server.Run()
}
