package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/lenderly/loanledger/internal/adapter/http"
	"github.com/lenderly/loanledger/internal/adapter/http/handler"
	"github.com/lenderly/loanledger/internal/adapter/http/middleware"
	postgresRepo "github.com/lenderly/loanledger/internal/adapter/repository/postgres"
	redisRepo "github.com/lenderly/loanledger/internal/adapter/repository/redis"
	"github.com/lenderly/loanledger/internal/infrastructure/config"
	"github.com/lenderly/loanledger/internal/infrastructure/logger"
	"github.com/lenderly/loanledger/internal/infrastructure/metrics"
	"github.com/lenderly/loanledger/internal/infrastructure/postgres"
	"github.com/lenderly/loanledger/internal/infrastructure/redis"
	"github.com/lenderly/loanledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewLoanAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	monthlyRepo := postgresRepo.NewMonthlyBalanceRepository(pool)
	depositRepo := postgresRepo.NewYieldDepositRepository(pool)
	payoutRepo := postgresRepo.NewYieldPayoutRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	cache := redisRepo.NewCache(redisClient)
	replayLock := redisRepo.NewReplayLock(redisClient, cfg.ReplayLockTTL)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, txnRepo, auditRepo, idGen)
	replayUC := usecase.NewReplayUseCase(txManager, accountRepo, txnRepo, monthlyRepo, replayLock, cache, idGen, appLogger)
	analyticsUC := usecase.NewAnalyticsUseCase(accountRepo, monthlyRepo, cache)
	depositUC := usecase.NewDepositUseCase(txManager, accountRepo, txnRepo, depositRepo, payoutRepo, auditRepo, idGen)
	withdrawalUC := usecase.NewWithdrawalUseCase(txManager, accountRepo, txnRepo, depositRepo, auditRepo, idGen)
	payoutUC := usecase.NewPayoutUseCase(txManager, depositRepo, payoutRepo, idGen, appLogger)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, txnRepo)

	// Track pool utilization for the /metrics endpoint
	m := metrics.New()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			m.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}()

	rateLimiter := middleware.NewRateLimiter(float64(cfg.HTTPRateLimit), cfg.HTTPRateLimit*2)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.Sweep(time.Hour)
		}
	}()

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	ledgerHandler := handler.NewLedgerHandler(replayUC, analyticsUC, reconciliationUC)
	depositHandler := handler.NewDepositHandler(depositUC)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalUC)
	batchHandler := handler.NewBatchHandler(payoutUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:    accountHandler,
		LedgerHandler:     ledgerHandler,
		DepositHandler:    depositHandler,
		WithdrawalHandler: withdrawalHandler,
		BatchHandler:      batchHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		RateLimiter:       rateLimiter,
		Logger:            appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
