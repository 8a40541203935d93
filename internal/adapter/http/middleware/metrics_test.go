package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{
			name:       "collapses unknown path",
			method:     http.MethodGet,
			path:       "/api/v1/statements/2026-01",
			statusCode: http.StatusTeapot,
		},
		{
			name:       "keeps known path as-is",
			method:     http.MethodPost,
			path:       "/health",
			statusCode: http.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpRequestsTotal.Reset()
			httpRequestDuration.Reset()
			httpRequestsInFlight.Set(0)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(tc.statusCode)
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			Metrics(next).ServeHTTP(rr, req)

			if !handlerCalled {
				t.Fatalf("next handler was not invoked")
			}

			if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			normalized := normalizePath(tc.path)
			counter := httpRequestsTotal.WithLabelValues(tc.method, normalized, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "known path",
			input:    "/api/v1/transactions",
			expected: "/api/v1/transactions",
		},
		{
			name:     "trailing slash",
			input:    "/api/v1/summary/",
			expected: "/api/v1/summary",
		},
		{
			name:     "reload path",
			input:    "/api/v1/statement/reload",
			expected: "/api/v1/statement/reload",
		},
		{
			name:     "unknown path",
			input:    "/wp-admin/setup.php",
			expected: "/unmatched",
		},
		{
			name:     "root",
			input:    "/",
			expected: "/unmatched",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
