package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/extracto/internal/adapter/http/dto"
	"github.com/iho/extracto/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrStatementNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptySource):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrQueryTooLong):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidOpeningBalance):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownEncoding):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
