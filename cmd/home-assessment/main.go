package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/ecoscope/home-assessment/internal/api/http"
	"github.com/ecoscope/home-assessment/internal/assessment"
	"github.com/ecoscope/home-assessment/internal/assessment/providers"
	"github.com/ecoscope/home-assessment/internal/cache"
	"github.com/ecoscope/home-assessment/internal/config"
	"github.com/ecoscope/home-assessment/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Cache backend: in-memory by default, Redis when configured.
	var store cache.Store
	switch cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to connect to redis at %s: %v", cfg.RedisAddr, err)
		}
		store = cache.NewRedisStore(client)
	default:
		store = cache.NewMemoryStore()
	}
	ttlCache := cache.New(store, cfg.CacheTTL)

	// Geocoding chain: OpenCage first, Google as fallback when configured.
	var geoProviders []assessment.GeocodeProvider
	if cfg.OpenCageAPIKey != "" {
		geoProviders = append(geoProviders, providers.NewOpenCageProvider(httpClient, cfg.OpenCageAPIKey))
	}
	if cfg.GoogleGeocodingAPIKey != "" {
		geoProviders = append(geoProviders, providers.NewGoogleGeocodeProvider(cfg.GoogleGeocodingAPIKey))
	}
	if len(geoProviders) == 0 {
		log.Println("WARN: no geocoding provider configured; assessments will degrade to unresolved")
	}

	archive := providers.NewOpenMeteoArchiveProvider(httpClient)

	// Core service orchestrating geocoding, fetchers, and estimators.
	service := assessment.NewService(assessment.ServiceConfig{
		Geocoder:       assessment.NewGeocoder(geoProviders...),
		History:        archive,
		Recent:         archive,
		PV:             providers.NewPVWattsProvider(httpClient, cfg.NRELAPIKey),
		Cache:          ttlCache,
		CoordPrecision: cfg.CacheCoordPrecision,
		Defaults:       cfg.Defaults,
	})

	// Scheduler that keeps configured locations warm in the cache.
	sched := scheduler.New(cfg.WarmLocations, cfg.WarmInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "home-assessment",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "home-assessment",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
