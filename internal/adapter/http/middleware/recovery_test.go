package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil ledger")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "nil ledger") {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
}
