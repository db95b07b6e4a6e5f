package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/aps-academy/admin-service/internal/auth"
	"github.com/aps-academy/admin-service/internal/cache"
	"github.com/aps-academy/admin-service/internal/config"
	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/handlers"
	"github.com/aps-academy/admin-service/internal/metrics"
	"github.com/aps-academy/admin-service/internal/places"
	"github.com/aps-academy/admin-service/internal/repositories/postgres"
	"github.com/aps-academy/admin-service/internal/scheduler"
	"github.com/aps-academy/admin-service/internal/services"
	"github.com/aps-academy/admin-service/internal/storage"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
	"github.com/aps-academy/admin-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})).With("service", cfg.ServiceName)
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, caching disabled", "error", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	publisher, err := events.NewPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.Events.KafkaBrokers,
		TopicPrefix:  cfg.Events.TopicPrefix,
	}, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}

	var objectStorage storage.Storage
	if cfg.Storage.Enabled() {
		gcs, err := storage.NewGCSStorage(context.Background(), cfg.Storage.BucketName, cfg.Storage.KeyfileBase64, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		objectStorage = gcs
	} else {
		logger.Warn("GCS credentials not configured, file uploads disabled")
	}

	m := metrics.NewDefault()

	// Initialize services
	serviceManager := services.NewServiceManager(services.Dependencies{
		DB:        db,
		Repo:      repoManager.GetRepository(),
		Logger:    slogLogger,
		Validator: validator.New(),
		Tokens:    auth.NewTokenIssuer(cfg.JWT.Secret, cfg.ServiceName, cfg.JWT.ExpiresIn),
		Cache:     cache.NewCacheManager(redisClient),
		Publisher: publisher,
		Storage:   objectStorage,
		Places: places.NewClient(places.Config{
			APIKey:  cfg.Places.APIKey,
			PlaceID: cfg.Places.PlaceID,
			BaseURL: cfg.Places.BaseURL,
			Timeout: cfg.Places.Timeout,
		}),
		Metrics: m,
		Reviews: services.ReviewSyncOptions{
			RetryCount: cfg.ReviewSync.RetryCount,
			RetryDelay: cfg.ReviewSync.RetryDelay,
			CacheTTL:   cfg.ReviewSync.CacheTTL,
		},
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Schedule the daily review refresh
	var cron *scheduler.Scheduler
	if cfg.ReviewSync.Enabled {
		cron, err = scheduler.New(cfg.ReviewSync.Timezone, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		err = cron.AddJob("review-sync", cfg.ReviewSync.Schedule, func(ctx context.Context) error {
			_, err := serviceManager.Testimonial().SyncReviews(ctx)
			return err
		})
		if err != nil {
			log.Fatalf("Failed to schedule review sync: %v", err)
		}
		cron.Start()
		logger.Info("Review sync scheduled", "schedule", cfg.ReviewSync.Schedule, "timezone", cfg.ReviewSync.Timezone)
	}

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger, cfg.CORS.AllowedOrigins, m)
	handlers.NewHandlerManager(serviceManager, cfg, logger, m).SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if cron != nil {
		if err := cron.Stop(ctx); err != nil {
			logger.Error("Scheduler did not stop cleanly", "error", err)
		}
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	// Closes the database and Redis connections
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to close repositories", "error", err)
	}

	logger.Info("Server exited")
}
