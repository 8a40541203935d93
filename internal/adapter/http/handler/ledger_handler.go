package handler

import (
	"context"
	"net/http"

	"github.com/iho/extracto/internal/adapter/http/dto"
	"github.com/iho/extracto/internal/domain"
	"github.com/iho/extracto/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Search(ctx context.Context, input usecase.SearchInput) (*usecase.SearchResult, error)
	Summary(ctx context.Context, query string) (domain.Summary, error)
}

// LedgerHandler handles queries over the current ledger.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Transactions lists matching transactions, newest first.
func (h *LedgerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	req := dto.SearchRequestFromQuery(r.URL.Query())

	result, err := h.ledgerUC.Search(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to search transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsFromUseCase(result))
}

// Summary returns income, expense and net for the transactions matching q.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	summary, err := h.ledgerUC.Summary(r.Context(), query)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(query, summary))
}
