package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to the ledger cache. When retrier is not nil the
// initial ping is retried with backoff.
func NewClient(ctx context.Context, redisURL string, retrier *Retrier) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ping := func() error {
		return client.Ping(ctx).Err()
	}

	if retrier != nil {
		err = retrier.Retry(ctx, ping)
	} else {
		err = ping()
	}
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
