package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/iho/extracto/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Statement
	StatementPath      string          `env:"STATEMENT_PATH"      envDefault:"statement.csv"`
	StatementSkipRows  int             `env:"STATEMENT_SKIP_ROWS" envDefault:"12"`
	StatementEncodings []string        `env:"STATEMENT_ENCODINGS" envDefault:"utf-8-sig,latin1,cp1252" envSeparator:","`
	OpeningBalance     decimal.Decimal `env:"OPENING_BALANCE"     envDefault:"0"`

	// Reload the statement when the file changes; 0 disables the watcher
	StatementWatchInterval time.Duration `env:"STATEMENT_WATCH_INTERVAL" envDefault:"0s"`

	// Redis (optional - leave empty to disable the ledger cache)
	RedisURL string        `env:"REDIS_URL" envDefault:""`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Reload rate limiting, per client IP
	ReloadRateLimit float64 `env:"RELOAD_RATE_LIMIT" envDefault:"1"`
	ReloadBurst     int     `env:"RELOAD_BURST"      envDefault:"3"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from a .env file in the working directory, if
// present, and environment variables.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom loads the given env files, skipping missing ones, then parses
// the environment. Variables already set are not overridden by the files.
func LoadFrom(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(decimal.Decimal{}): func(v string) (interface{}, error) {
				return domain.ParseOpeningBalance(v)
			},
		},
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	if err := domain.ValidateSkipRows(c.StatementSkipRows); err != nil {
		return fmt.Errorf("STATEMENT_SKIP_ROWS: %w", err)
	}
	if c.StatementWatchInterval < 0 {
		return fmt.Errorf("STATEMENT_WATCH_INTERVAL must not be negative, got %s", c.StatementWatchInterval)
	}
	if c.ReloadRateLimit <= 0 {
		return fmt.Errorf("RELOAD_RATE_LIMIT must be positive, got %v", c.ReloadRateLimit)
	}
	if c.ReloadBurst < 1 {
		return fmt.Errorf("RELOAD_BURST must be at least 1, got %d", c.ReloadBurst)
	}
	return nil
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
