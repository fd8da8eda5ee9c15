package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dormhub/dormledger/internal/adapter/http/handler"
	"github.com/dormhub/dormledger/internal/adapter/http/middleware"
	"github.com/dormhub/dormledger/internal/infrastructure/metrics"
	"github.com/dormhub/dormledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler     *handler.EntryHandler
	BalanceHandler   *handler.BalanceHandler
	ClearanceHandler *handler.ClearanceHandler
	SnapshotHandler  *handler.SnapshotHandler
	BatchHandler     *handler.BatchHandler
	ImportHandler    *handler.ImportHandler
	ExpenseHandler   *handler.ExpenseHandler
	HealthHandler    *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Mutating routes need an actor for audit attribution; reads pass
		// through without one.
		r.Use(middleware.Actor(false))

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Ledger entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Record)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Post("/{id}/void", cfg.EntryHandler.Void)
		})

		// Dorm-scoped views and operations
		r.Route("/dorms/{dormID}", func(r chi.Router) {
			r.Get("/balances", cfg.BalanceHandler.Get)
			r.Get("/clearance", cfg.ClearanceHandler.List)
			r.Get("/snapshots", cfg.SnapshotHandler.List)
			r.Post("/contribution-batches", cfg.BatchHandler.Create)
			r.Post("/imports", cfg.ImportHandler.Run)
		})

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Record)
			r.Get("/", cfg.ExpenseHandler.List)
			r.Post("/{id}/approve", cfg.ExpenseHandler.Approve)
			r.Post("/{id}/reject", cfg.ExpenseHandler.Reject)
		})
	})

	return r
}
