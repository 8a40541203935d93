package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// clientLimiter is one client's token bucket and when it was last used.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	rate    rate.Limit
	burst   int
	hits    *prometheus.CounterVec
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing r requests per second per
// client with bursts of up to b.
func NewRateLimiter(r float64, b int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(r),
		burst:   b,
		now:     time.Now,
	}
}

// WithHitCounter counts rejected requests by path in hits.
func (rl *RateLimiter) WithHitCounter(hits *prometheus.CounterVec) *RateLimiter {
	rl.hits = hits
	return rl
}

// allow takes a token from the client's bucket, creating it on first use.
func (rl *RateLimiter) allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, ok := rl.clients[client]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[client] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// Limit is a middleware that enforces the limit per client IP.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			if rl.hits != nil {
				rl.hits.WithLabelValues(normalizePath(r.URL.Path)).Inc()
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP keys the limiter on the remote host. Proxy headers are left
// to chi's RealIP middleware, which runs first and rewrites RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// CleanupLimiters forgets clients idle for longer than maxIdle and returns
// how many were removed. Call it periodically.
func (rl *RateLimiter) CleanupLimiters(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-maxIdle)
	removed := 0
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
