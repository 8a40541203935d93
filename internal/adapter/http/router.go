package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/extracto/internal/adapter/http/handler"
	"github.com/iho/extracto/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	StatementHandler *handler.StatementHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	// ReloadLimiter throttles statement reloads per client. Optional.
	ReloadLimiter *middleware.RateLimiter
	// Gatherer backs /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/statement", func(r chi.Router) {
			r.Get("/", cfg.StatementHandler.Get)

			r.Group(func(r chi.Router) {
				if cfg.ReloadLimiter != nil {
					r.Use(cfg.ReloadLimiter.Limit)
				}
				r.Post("/reload", cfg.StatementHandler.Reload)
			})
		})

		r.Get("/transactions", cfg.LedgerHandler.Transactions)
		r.Get("/summary", cfg.LedgerHandler.Summary)
	})

	return r
}
