package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/extracto/internal/adapter/http"
	"github.com/iho/extracto/internal/adapter/http/handler"
	"github.com/iho/extracto/internal/adapter/http/middleware"
	"github.com/iho/extracto/internal/adapter/repository/memory"
	redisRepo "github.com/iho/extracto/internal/adapter/repository/redis"
	"github.com/iho/extracto/internal/adapter/source/csvfile"
	"github.com/iho/extracto/internal/infrastructure/config"
	"github.com/iho/extracto/internal/infrastructure/idgen"
	"github.com/iho/extracto/internal/infrastructure/logger"
	"github.com/iho/extracto/internal/infrastructure/metrics"
	"github.com/iho/extracto/internal/infrastructure/redis"
	"github.com/iho/extracto/internal/infrastructure/watcher"
	"github.com/iho/extracto/internal/usecase"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterMaxIdle         = time.Hour
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

type app struct {
	router      http.Handler
	statements  *usecase.StatementUseCase
	limiter     *middleware.RateLimiter
	redisClient *goredis.Client
}

func (a *app) Close() {
	if a.redisClient != nil {
		a.redisClient.Close()
	}
}

// newApp wires the statement pipeline and the HTTP router.
func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*app, error) {
	m := metrics.NewWithRegisterer(reg)

	parser, err := csvfile.NewParser(csvfile.Options{
		SkipRows:       cfg.StatementSkipRows,
		Encodings:      cfg.StatementEncodings,
		OpeningBalance: cfg.OpeningBalance,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("configure parser: %w", err)
	}

	a := &app{}

	// Connect to Redis
	var cache usecase.LedgerCache
	if cfg.CacheEnabled() {
		a.redisClient, err = redis.NewClient(ctx, cfg.RedisURL, redis.NewRetrier(log))
		if err != nil {
			return nil, err
		}
		cache = redisRepo.NewLedgerCache(a.redisClient)
		log.Info().Msg("connected to redis")
	}

	store := memory.NewStatementStore()
	a.statements = usecase.NewStatementUseCase(
		csvfile.NewFileSource(cfg.StatementPath),
		parser,
		store,
		cache,
		idgen.NewULIDGenerator(),
		m,
		log,
	).WithCacheTTL(cfg.CacheTTL)

	a.limiter = middleware.NewRateLimiter(cfg.ReloadRateLimit, cfg.ReloadBurst).WithHitCounter(m.RateLimitHits)

	// Initialize handlers
	a.router = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		StatementHandler: handler.NewStatementHandler(a.statements),
		LedgerHandler:    handler.NewLedgerHandler(a.statements),
		HealthHandler:    handler.NewHealthHandler(store, a.redisClient),
		ReloadLimiter:    a.limiter,
		Gatherer:         gatherer,
		Logger:           log,
	})

	return a, nil
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	a, err := newApp(ctx, cfg, log, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		return err
	}
	defer a.Close()

	// A bad file is not fatal: /ready reports it and a reload can fix it.
	if _, err := a.statements.Load(ctx); err != nil {
		log.Error().Err(err).Str("path", cfg.StatementPath).Msg("initial statement load failed")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := a.limiter.CleanupLimiters(limiterMaxIdle); n > 0 {
					log.Debug().Int("removed", n).Msg("idle reload limiters removed")
				}
			}
		}
	})

	if cfg.StatementWatchInterval > 0 {
		w := watcher.New(watcher.Config{
			Path:     cfg.StatementPath,
			Loader:   a.statements,
			Logger:   log,
			Interval: cfg.StatementWatchInterval,
		})
		g.Go(func() error {
			if err := w.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}
