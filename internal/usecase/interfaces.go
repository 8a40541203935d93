package usecase

import (
	"context"
	"time"

	"github.com/iho/extracto/internal/domain"
)

// StatementSource provides the raw bytes of a statement export.
type StatementSource interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// StatementParser turns raw bytes into a statement with its ledger.
type StatementParser interface {
	Parse(ctx context.Context, data []byte) (*domain.Statement, error)
	// Fingerprint identifies the parse options, so cached results from
	// different options are not mixed up.
	Fingerprint() string
}

// StatementStore holds the statement currently being served.
type StatementStore interface {
	Save(ctx context.Context, stmt *domain.Statement) error
	Current(ctx context.Context) (*domain.Statement, error)
}

// LedgerCache stores parsed statements keyed by content hash.
// Get returns domain.ErrCacheMiss when the key is absent.
type LedgerCache interface {
	Get(ctx context.Context, key string) (*domain.Statement, error)
	Set(ctx context.Context, key string, stmt *domain.Statement, ttl time.Duration) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
