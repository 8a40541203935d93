package handler

import (
	"context"
	"net/http"

	"github.com/iho/extracto/internal/adapter/http/dto"
	"github.com/iho/extracto/internal/domain"
)

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	Load(ctx context.Context) (*domain.Statement, error)
	Current(ctx context.Context) (*domain.Statement, error)
}

// StatementHandler serves the loaded statement and reloads it.
type StatementHandler struct {
	statementUC StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC}
}

// Get returns metadata, load report and final balance of the current statement.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	stmt, err := h.statementUC.Current(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(stmt))
}

// Reload reads the statement file again. The previous statement keeps
// being served if the new one is rejected.
func (h *StatementHandler) Reload(w http.ResponseWriter, r *http.Request) {
	stmt, err := h.statementUC.Load(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reload statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(stmt))
}
