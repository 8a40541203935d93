package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatementReadiness reports whether a statement is being served.
type StatementReadiness interface {
	Loaded() bool
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	statements  StatementReadiness
	redisClient *redis.Client
}

// NewHealthHandler creates a new HealthHandler. redisClient may be nil
// when the ledger cache is disabled.
func NewHealthHandler(statements StatementReadiness, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		statements:  statements,
		redisClient: redisClient,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.statements == nil || !h.statements.Loaded() {
		writeError(w, http.StatusServiceUnavailable, "statement not loaded", "")
		return
	}

	status := map[string]string{
		"status":    "ready",
		"statement": "ok",
		"redis":     "disabled",
	}

	// Check Redis
	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unhealthy", err.Error())
			return
		}
		status["redis"] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
