package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestCache returns a cache backed by an in-process Redis that is torn
// down with the test. Retries are off so a stopped server fails fast.
func newTestCache(t *testing.T) (*LedgerCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr:        mr.Addr(),
		MaxRetries:  -1,
		DialTimeout: time.Second,
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewLedgerCache(client), mr
}
