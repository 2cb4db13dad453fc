package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	postgresRepo "github.com/lenderly/loanledger/internal/adapter/repository/postgres"
	"github.com/lenderly/loanledger/internal/infrastructure/config"
	"github.com/lenderly/loanledger/internal/infrastructure/logger"
	"github.com/lenderly/loanledger/internal/infrastructure/metrics"
	"github.com/lenderly/loanledger/internal/infrastructure/postgres"
	"github.com/lenderly/loanledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewLoanAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	depositRepo := postgresRepo.NewYieldDepositRepository(pool)
	payoutRepo := postgresRepo.NewYieldPayoutRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	payoutUC := usecase.NewPayoutUseCase(txManager, depositRepo, payoutRepo, idGen, appLogger)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, txnRepo)

	m := metrics.New()

	c := cron.New()

	if _, err := c.AddFunc(cfg.DailyPayoutSchedule, func() {
		runBatch(m, "daily", payoutUC.RunDailyBatch)
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.DailyPayoutSchedule).Msg("invalid daily payout schedule")
	}

	if _, err := c.AddFunc(cfg.AnnualPayoutSchedule, func() {
		runBatch(m, "annual", payoutUC.RunAnnualBatch)
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.AnnualPayoutSchedule).Msg("invalid annual payout schedule")
	}

	if _, err := c.AddFunc(cfg.ReconciliationSchedule, func() {
		runReconciliation(m, reconciliationUC)
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ReconciliationSchedule).Msg("invalid reconciliation schedule")
	}

	c.Start()
	log.Info().
		Str("daily", cfg.DailyPayoutSchedule).
		Str("annual", cfg.AnnualPayoutSchedule).
		Str("reconciliation", cfg.ReconciliationSchedule).
		Msg("scheduler started")

	// Expose metrics for scraping
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.SchedulerMetricsPort),
		Handler: promhttp.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("metrics server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down scheduler...")

	stopCtx := c.Stop()
	<-stopCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)

	log.Info().Msg("scheduler stopped")
}

func runBatch(m *metrics.Metrics, kind string, run func(context.Context, time.Time) (*usecase.BatchReport, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	start := time.Now()
	report, err := run(ctx, time.Now().UTC())
	m.BatchRunDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("payout batch failed")
		return
	}

	m.PayoutBatchRuns.WithLabelValues(kind).Inc()
	m.PayoutsApplied.WithLabelValues(kind).Add(float64(len(report.Applied)))
	m.PayoutsSkipped.WithLabelValues(kind).Add(float64(report.AlreadyProcessed))
	m.PayoutFailures.WithLabelValues(kind).Add(float64(len(report.Failures)))
	amount, _ := report.TotalAmount.Round(2).Float64()
	m.PayoutAmount.WithLabelValues(kind).Add(amount)

	log.Info().
		Str("kind", kind).
		Time("date", report.Date).
		Int("applied", len(report.Applied)).
		Int("already_processed", report.AlreadyProcessed).
		Int("failures", len(report.Failures)).
		Str("total_amount", report.TotalAmount.StringFixed(2)).
		Msg("payout batch completed")
}

func runReconciliation(m *metrics.Metrics, uc *usecase.ReconciliationUseCase) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	report, err := uc.GenerateReconciliationReport(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconciliation sweep failed")
		return
	}

	m.ReconciliationRuns.Inc()
	m.ReconciliationDiscrepancies.Set(float64(len(report.Discrepancies)))

	event := log.Info()
	if len(report.Discrepancies) > 0 {
		event = log.Warn()
	}
	event.
		Int("total_accounts", report.TotalAccounts).
		Int("reconciled", report.ReconciledAccounts).
		Int("discrepancies", len(report.Discrepancies)).
		Msg("reconciliation sweep completed")

	for _, d := range report.Discrepancies {
		log.Warn().
			Str("account_id", d.AccountID).
			Str("recorded", d.RecordedBalance.StringFixed(2)).
			Str("calculated", d.CalculatedBalance.StringFixed(2)).
			Str("difference", d.Difference.StringFixed(2)).
			Msg("balance discrepancy detected")
	}
}
