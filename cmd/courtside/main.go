package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtsight/courtside/internal/api/rest"
	"github.com/courtsight/courtside/internal/api/websocket"
	"github.com/courtsight/courtside/internal/cache"
	"github.com/courtsight/courtside/internal/config"
	"github.com/courtsight/courtside/internal/export"
	"github.com/courtsight/courtside/internal/importer"
	"github.com/courtsight/courtside/internal/ingest/bdl"
	"github.com/courtsight/courtside/internal/ingest/ref"
	"github.com/courtsight/courtside/internal/publisher"
	"github.com/courtsight/courtside/internal/scheduler"
	"github.com/courtsight/courtside/internal/service"
	"github.com/courtsight/courtside/internal/store"
)

const (
	appName    = "courtside"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s starting ===", appName, appVersion)

	cfg := config.Load()

	// Database with retry. Postgres may still be coming up when we are
	// started from compose.
	var db *store.Database
	var err error
	for i := 0; i < 30; i++ {
		db, err = store.NewDatabase(cfg.DatabaseDSN)
		if err == nil {
			break
		}
		log.Printf("Waiting for database... (%d/30): %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	// Redis cache with retry.
	var redisCache *cache.RedisCache
	for i := 0; i < 30; i++ {
		redisCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err == nil {
			break
		}
		log.Printf("Waiting for Redis... (%d/30): %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()
	log.Println("Connected to Redis cache")

	pub, err := publisher.NewRedisPublisher(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}
	defer pub.Close()

	ingester := bdl.NewIngester(db, cfg.BDLBaseURL, cfg.BDLAPIKey)
	enricher := ref.NewEnricher(db, cfg.StandingsURL)

	importSvc := importer.NewService(ingester, enricher, redisCache, pub, nil)
	importSvc.Start()

	exporter, err := export.NewExporter(cfg.ExportDir)
	if err != nil {
		log.Fatalf("Failed to create exporter: %v", err)
	}

	statsService := service.NewStatsService(db, redisCache)

	sched := scheduler.NewOrchestrator(statsService, importSvc, pub, &scheduler.Config{
		RefreshHour:   cfg.NightlyRefreshHour,
		CurrentSeason: cfg.CurrentSeason,
		Enabled:       cfg.EnableNightlyRefresh,
		MaxRetries:    3,
		RetryDelay:    5 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sched.Start(ctx)

	restServer := rest.NewServer(cfg.RESTPort, db, redisCache, importSvc, exporter, cfg.CurrentSeason)
	go func() {
		log.Printf("REST API server starting on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server stopped: %v", err)
		}
	}()

	wsServer := websocket.NewServer(redisCache)
	go func() {
		log.Printf("WebSocket server starting on port %s", cfg.WSPort)
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Printf("WebSocket server stopped: %v", err)
		}
	}()

	log.Println("All services running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := importSvc.Shutdown(shutdownCtx); err != nil {
		log.Printf("Import service shutdown error: %v", err)
	}
	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
