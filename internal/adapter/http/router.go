package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lenderly/loanledger/internal/adapter/http/handler"
	"github.com/lenderly/loanledger/internal/adapter/http/middleware"
	"github.com/lenderly/loanledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler    *handler.AccountHandler
	LedgerHandler     *handler.LedgerHandler
	DepositHandler    *handler.DepositHandler
	WithdrawalHandler *handler.WithdrawalHandler
	BatchHandler      *handler.BatchHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	RateLimiter       *middleware.RateLimiter
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts and their ledger views
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/transactions", cfg.AccountHandler.ListTransactions)
			r.Post("/{id}/transactions", cfg.AccountHandler.RecordTransaction)
			r.Post("/{id}/replay", cfg.LedgerHandler.Replay)
			r.Get("/{id}/analytics", cfg.LedgerHandler.Analytics)
			r.Get("/{id}/reconciliation", cfg.LedgerHandler.Reconcile)
		})

		r.Get("/users/{userID}/account", cfg.AccountHandler.GetByUser)

		// Yield deposits
		r.Route("/deposits", func(r chi.Router) {
			r.Post("/", cfg.DepositHandler.Create)
			r.Get("/", cfg.DepositHandler.List)
			r.Get("/{id}", cfg.DepositHandler.Get)
			r.Put("/{id}", cfg.DepositHandler.Update)
			r.Delete("/{id}", cfg.DepositHandler.Delete)
			r.Get("/{id}/payouts", cfg.DepositHandler.ListPayouts)
		})

		// Withdrawals
		r.Post("/withdrawals", cfg.WithdrawalHandler.Create)

		// Payout batches
		r.Route("/payouts", func(r chi.Router) {
			r.Post("/daily/run", cfg.BatchHandler.RunDaily)
			r.Post("/annual/run", cfg.BatchHandler.RunAnnual)
			r.Get("/status", cfg.BatchHandler.Status)
		})

		// Reconciliation sweep
		r.Get("/reconciliation", cfg.LedgerHandler.ReconciliationReport)
	})

	return r
}
