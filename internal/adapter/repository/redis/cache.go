package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/extracto/internal/domain"
)

// LedgerCache implements usecase.LedgerCache using Redis.
type LedgerCache struct {
	client *redis.Client
	prefix string
}

// NewLedgerCache creates a new LedgerCache.
func NewLedgerCache(client *redis.Client) *LedgerCache {
	return &LedgerCache{
		client: client,
		prefix: "extracto:",
	}
}

// Get retrieves a parsed statement by key.
func (c *LedgerCache) Get(ctx context.Context, key string) (*domain.Statement, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var stmt domain.Statement
	if err := json.Unmarshal(data, &stmt); err != nil {
		return nil, fmt.Errorf("decode cached statement: %w", err)
	}

	return &stmt, nil
}

// Set stores a parsed statement with TTL.
func (c *LedgerCache) Set(ctx context.Context, key string, stmt *domain.Statement, ttl time.Duration) error {
	data, err := json.Marshal(stmt)
	if err != nil {
		return fmt.Errorf("encode statement: %w", err)
	}

	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}
