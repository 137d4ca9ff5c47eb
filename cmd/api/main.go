package main

// @title Festival Trip Planner API
// @version 1.0.0
// @description Trip-corridor itinerary planner for Ecuadorian cultural festivals. Resolves origin and destination, traces a driving corridor of configurable width, selects festivals that fall inside it and inside the travel window, and builds a time-budgeted multi-day itinerary.
// @description
// @description Capabilities:
// @description - Route generation with corridor buffering and ranked POI selection
// @description - Per-day stop placement with nearest-neighbor sequencing
// @description - Arrival and dwell estimation per pacing mode (relaxed, normal, intense)
// @description - Single-slot plan persistence with itinerary export events

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/festival-trip-planner/docs"
	"github.com/festival-trip-planner/internal/config"
	httpDelivery "github.com/festival-trip-planner/internal/delivery/http"
	"github.com/festival-trip-planner/internal/delivery/http/handler"
	"github.com/festival-trip-planner/internal/infrastructure/ors"
	"github.com/festival-trip-planner/internal/pkg/logger"
	"github.com/festival-trip-planner/internal/repository/cache"
	"github.com/festival-trip-planner/internal/repository/postgres"
	"github.com/festival-trip-planner/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Festival Trip Planner")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and the ORS provider
	poiRepo := postgres.NewPOIRepository(db)
	planRepo := postgres.NewPlanRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := cache.NewStreamRepository(redisClient)
	orsClient := ors.NewClient(&cfg.ORS, log)

	log.Info("Repositories initialized")

	// 7. Initialize planner components and use cases
	resolver := usecase.NewGeoResolver(orsClient, cacheRepo, log, cfg.Cache.GeocodeCacheTTL)
	corridorBuilder := usecase.NewCorridorBuilder(log)
	selector := usecase.NewPOISelector(log)
	scheduler := usecase.NewDayScheduler(
		usecase.NewSequenceOptimizer(),
		usecase.NewTimeEstimator(),
		log,
	)

	plannerUC := usecase.NewPlannerUseCase(
		resolver,
		orsClient,
		corridorBuilder,
		selector,
		scheduler,
		poiRepo,
		planRepo,
		streamRepo,
		cacheRepo,
		cfg.Cache.RouteCacheTTL,
		cfg.Planner.DefaultRadiusKm,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers and server
	planHandler := handler.NewPlanHandler(plannerUC, log)
	poiHandler := handler.NewPOIHandler(plannerUC, log)

	server := httpDelivery.NewServer(cfg, log, planHandler, poiHandler)

	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
