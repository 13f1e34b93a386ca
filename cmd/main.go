package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"microquest/dispenser/internal/config"
	"microquest/dispenser/internal/handler"
	"microquest/dispenser/internal/model"
	"microquest/dispenser/internal/repository"
	"microquest/dispenser/internal/service"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Load the challenge catalog
	var challenges []model.Challenge
	switch cfg.Catalog.Backend {
	case "postgres":
		db, err := config.NewPostgresDB(cfg.Database.Postgres)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		if cfg.Database.Postgres.AutoMigrate {
			if err := model.AutoMigrate(db); err != nil {
				logger.Fatal("failed to auto-migrate", zap.Error(err))
			}
			logger.Info("database migration completed")
		}
		challengeRepo := repository.NewPGChallengeRepository(db)
		challenges, err = service.LoadCatalog(ctx, challengeRepo, cfg.Catalog.Challenges)
		if err != nil {
			logger.Fatal("failed to load catalog from postgres", zap.Error(err))
		}
		logger.Info("catalog loaded from postgres", zap.Int("challenges", len(challenges)))
	case "config":
		challenges = service.ChallengesFromConfig(cfg.Catalog.Challenges)
		if len(challenges) == 0 {
			logger.Fatal("no challenges configured", zap.Error(service.ErrEmptyCatalog))
		}
		logger.Info("catalog loaded from config", zap.Int("challenges", len(challenges)))
	default:
		logger.Fatal("unknown catalog backend", zap.String("backend", cfg.Catalog.Backend))
	}
	pool := service.NewChallengePool(challenges)

	// 4. Initialize state store (Redis, BoltDB, or in-memory)
	var stateStore repository.StateStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		stateStore = repository.NewRedisStateStore(redisClient)
		logger.Info("using Redis state store")
	case "bolt":
		boltStore, err := repository.NewBoltStateStore(cfg.State.BoltPath)
		if err != nil {
			logger.Fatal("failed to open bolt state store", zap.Error(err))
		}
		defer boltStore.Close()
		stateStore = boltStore
		logger.Info("using BoltDB state store", zap.String("path", cfg.State.BoltPath))
	case "memory":
		stateStore = repository.NewMemoryStateStore()
		logger.Info("using in-memory state store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 5. Initialize repositories and services
	hourRepo := repository.NewKVHourStateRepository(stateStore)
	dispenserService := service.NewDispenserService(
		pool, hourRepo, service.SystemClock,
		cfg.Dispenser.HourlyQuota, cfg.Dispenser.Cooldown,
		logger,
	)

	// 6. Schedule the recurring reminder
	notifier := service.NewLogNotifier(logger)
	if err := notifier.ScheduleRepeating(ctx, cfg.Dispenser.ReminderTitle, cfg.Dispenser.ReminderBody, cfg.Dispenser.ReminderInterval); err != nil {
		logger.Warn("reminder scheduling failed", zap.Error(err))
	}

	// 7. Drive cooldown and rollover once per second
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dispenserService.Tick(ctx)
			}
		}
	}()

	// 8. Setup router
	dispenserHandler := handler.NewDispenserHandler(dispenserService)
	router := handler.SetupRouter(cfg, logger, dispenserHandler)

	// 9. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 10. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
