package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/festival-trip-planner/internal/config"
	"github.com/festival-trip-planner/internal/pkg/logger"
	"github.com/festival-trip-planner/internal/repository/cache"
	"github.com/festival-trip-planner/internal/repository/postgres"
	"github.com/festival-trip-planner/internal/usecase"
	"github.com/festival-trip-planner/internal/worker"
	"github.com/festival-trip-planner/internal/worker/export"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Itinerary Export Worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories and use cases
	poiRepo := postgres.NewPOIRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := cache.NewStreamRepository(redisClient)

	exportUC := usecase.NewExportUseCase(
		planRepo,
		poiRepo,
		cacheRepo,
		usecase.NewTimeEstimator(),
		cfg.Cache.ExportTTL,
		log,
	)

	// 6. Initialize the export worker
	exportWorker := export.NewItineraryExportWorker(
		streamRepo,
		exportUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(exportWorker)

	// 7. Start and wait for shutdown signal
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker stopped successfully")
}
