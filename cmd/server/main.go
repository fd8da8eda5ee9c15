package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/dormhub/dormledger/internal/adapter/http"
	"github.com/dormhub/dormledger/internal/adapter/http/handler"
	"github.com/dormhub/dormledger/internal/adapter/http/middleware"
	postgresRepo "github.com/dormhub/dormledger/internal/adapter/repository/postgres"
	redisRepo "github.com/dormhub/dormledger/internal/adapter/repository/redis"
	"github.com/dormhub/dormledger/internal/infrastructure/config"
	"github.com/dormhub/dormledger/internal/infrastructure/logger"
	"github.com/dormhub/dormledger/internal/infrastructure/metrics"
	"github.com/dormhub/dormledger/internal/infrastructure/postgres"
	"github.com/dormhub/dormledger/internal/infrastructure/redis"
	"github.com/dormhub/dormledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	semesterRepo := postgresRepo.NewSemesterRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	rosterRepo := postgresRepo.NewRosterRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	settingsRepo := postgresRepo.NewSettingsRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Use cases
	entryUC := usecase.NewEntryUseCase(txManager, entryRepo, auditRepo, idGen).
		WithRetrier(retrier).
		WithMetrics(m)
	balanceUC := usecase.NewBalanceUseCase(entryRepo)
	clearanceUC := usecase.NewClearanceUseCase(balanceUC, rosterRepo, settingsRepo, semesterRepo)
	carryForwardUC := usecase.NewCarryForwardUseCase(semesterRepo, entryRepo, expenseRepo)
	batchUC := usecase.NewBatchUseCase(entryRepo, rosterRepo, auditRepo, idGen, log).WithMetrics(m)
	importUC := usecase.NewImportUseCase(entryRepo, expenseRepo, semesterRepo, auditRepo, idGen, log).WithMetrics(m)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, auditRepo, idGen, log).WithMetrics(m)

	// Rate limiting with periodic cleanup
	rateLimiter := middleware.NewRateLimiter(100, 200, m)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:     handler.NewEntryHandler(entryUC),
		BalanceHandler:   handler.NewBalanceHandler(balanceUC),
		ClearanceHandler: handler.NewClearanceHandler(clearanceUC),
		SnapshotHandler:  handler.NewSnapshotHandler(carryForwardUC),
		BatchHandler:     handler.NewBatchHandler(batchUC),
		ImportHandler:    handler.NewImportHandler(importUC, cfg.ImportMaxRows),
		ExpenseHandler:   handler.NewExpenseHandler(expenseUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Logger:           log,
		Metrics:          m,
		RateLimiter:      rateLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
