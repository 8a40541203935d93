package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRateLimiter_Limit(t *testing.T) {
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_rate_limit_hits_total"}, []string{"path"})
	rl := NewRateLimiter(1, 2).WithHitCounter(hits)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/statement/reload", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected burst of 2 then 429, got %v", codes)
	}

	if got := testutil.ToFloat64(hits.WithLabelValues("/api/v1/statement/reload")); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %v", got)
	}

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/api/v1/statement/reload", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected other client to pass, got %d", rec.Code)
	}
}

func TestRateLimiter_IgnoresForwardedHeaders(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/statement/reload", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected rotating headers to share one bucket, got %v", codes)
	}
	if rl.Len() != 1 {
		t.Fatalf("expected one tracked client, got %d", rl.Len())
	}
}

func TestRateLimiter_CleanupLimiters(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	now = now.Add(30 * time.Minute)
	rl.allow("b")

	if rl.Len() != 2 {
		t.Fatalf("expected 2 limiters, got %d", rl.Len())
	}

	now = now.Add(45 * time.Minute)
	if removed := rl.CleanupLimiters(time.Hour); removed != 1 {
		t.Fatalf("expected 1 idle limiter removed, got %d", removed)
	}
	if rl.Len() != 1 {
		t.Fatalf("expected recent client to stay, got %d", rl.Len())
	}

	now = now.Add(time.Hour)
	rl.CleanupLimiters(time.Hour)
	if rl.Len() != 0 {
		t.Fatalf("expected limiters to be cleared, got %d", rl.Len())
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	if !rl.allow("a") {
		t.Fatal("expected first request to pass")
	}
	if rl.allow("a") {
		t.Fatal("expected second request to be limited")
	}

	now = now.Add(time.Second)
	if !rl.allow("a") {
		t.Fatal("expected bucket to refill after one second")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded header ignored", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:80", "10.0.0.1"},
		{"real ip header ignored", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.1:80", "10.0.0.1"},
		{"remote addr", nil, "192.0.2.1:4000", "192.0.2.1"},
		{"remote without port", nil, "pipe", "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := clientIP(req); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
