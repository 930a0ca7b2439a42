package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"

	"mindline/internal/ai"
	"mindline/internal/alert"
	"mindline/internal/catalog"
	"mindline/internal/config"
	"mindline/internal/db"
	"mindline/internal/jobs"
	"mindline/internal/metrics"
	"mindline/internal/risk"
	"mindline/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := slog.Default()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.IsDev() {
		if err := database.SeedDevData(ctx); err != nil {
			log.Printf("Warning: failed to seed dev data: %v", err)
		}
	}

	// Metrics collector and recorder
	metrics.Init(database)

	// Pattern set: embedded defaults unless overridden
	patterns, err := config.LoadPatterns(cfg.PatternsFile)
	if err != nil {
		log.Fatalf("Failed to load pattern set: %v", err)
	}
	log.Printf("Pattern set loaded (version %d)", patterns.Version)

	// Catalog cache: redis when configured, passthrough otherwise
	var cache catalog.Cache
	if cfg.RedisURL != "" {
		cache = redis.New(redis.Config{URL: cfg.RedisURL})
		log.Println("Catalog cache enabled (redis)")
	} else {
		log.Println("Catalog cache disabled (REDIS_URL not set)")
	}
	cat := catalog.New(database, cache, cfg.CacheTTL, logger)

	// Contextual analyzer - optional; the engine degrades without it
	var assessor risk.Assessor
	var probeEndpoint string
	if cfg.IsContextualEnabled() {
		client, err := ai.NewClient(ctx, cfg)
		if err != nil {
			log.Printf("Warning: contextual analyzer disabled: %v", err)
		} else {
			assessor = client
			probeEndpoint = client.Endpoint()
			log.Printf("Contextual analyzer enabled (provider: %s)", cfg.AIProvider)
		}
	} else {
		log.Println("Contextual analyzer disabled (AI_PROVIDER / AI_API_KEY not set)")
	}

	engine := risk.NewEngine(cat, assessor, patterns, cfg.AppointmentURL, logger)
	alerts := alert.NewService(cfg, database)

	// Background provider probe
	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	if probeEndpoint != "" {
		prober := jobs.NewProber(probeEndpoint, cfg.ProbeInterval)
		go prober.Start(jobCtx)
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(database, engine, cat, alerts, logger)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancelJobs()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
