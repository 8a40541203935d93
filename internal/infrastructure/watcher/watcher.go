// Package watcher reloads the statement when its file changes on disk.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/extracto/internal/domain"
)

// Loader loads the current statement.
type Loader interface {
	Load(ctx context.Context) (*domain.Statement, error)
}

// Config for Watcher.
type Config struct {
	Path     string
	Loader   Loader
	Logger   zerolog.Logger
	Interval time.Duration // Polling interval
}

// Watcher polls a statement file and reloads it after it changes.
type Watcher struct {
	path     string
	loader   Loader
	logger   zerolog.Logger
	interval time.Duration

	modTime time.Time
	size    int64
}

// New creates a new Watcher.
func New(cfg Config) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}

	return &Watcher{
		path:     cfg.Path,
		loader:   cfg.Loader,
		logger:   cfg.Logger,
		interval: cfg.Interval,
	}
}

// Start polls until ctx is cancelled. The file as it is when Start is
// called counts as already loaded.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info().
		Str("path", w.path).
		Dur("interval", w.interval).
		Msg("statement watcher started")

	w.changed()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("statement watcher shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll reloads the statement if the file changed since the last poll.
// It reports whether a reload was attempted.
func (w *Watcher) poll(ctx context.Context) bool {
	if !w.changed() {
		return false
	}

	w.logger.Info().Str("path", w.path).Msg("statement file changed, reloading")

	if _, err := w.loader.Load(ctx); err != nil {
		// The previous statement stays current.
		w.logger.Error().Err(err).Str("path", w.path).Msg("statement reload failed")
	}
	return true
}

// changed stats the file and records its modification time and size.
func (w *Watcher) changed() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Warn().Err(err).Str("path", w.path).Msg("stat statement file")
		}
		return false
	}

	if info.ModTime().Equal(w.modTime) && info.Size() == w.size {
		return false
	}

	w.modTime = info.ModTime()
	w.size = info.Size()
	return true
}
