package usecase

import "time"

const (
	// DefaultLoadTimeout bounds reading and parsing one statement.
	DefaultLoadTimeout = 30 * time.Second

	// DefaultCacheTTL is how long parsed statements stay cached
	DefaultCacheTTL = 24 * time.Hour

	// cacheKeyPrefix namespaces ledger cache keys
	cacheKeyPrefix = "statement:"
)
