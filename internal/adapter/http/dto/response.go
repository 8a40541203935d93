package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/extracto/internal/domain"
	"github.com/iho/extracto/internal/usecase"
)

// TransactionResponse represents a ledger row in API responses.
type TransactionResponse struct {
	Date           string          `json:"date"`
	Kind           string          `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	SignedAmount   decimal.Decimal `json:"signed_amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
	Category       string          `json:"category"`
	Payee          string          `json:"payee"`
	Memo           string          `json:"memo"`
	Line           int             `json:"line,omitempty"`
}

// TransactionFromDomain converts a domain transaction to response.
func TransactionFromDomain(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Date:           t.Date.Format(time.DateOnly),
		Kind:           t.Kind.String(),
		Amount:         t.Amount,
		SignedAmount:   t.SignedAmount,
		RunningBalance: t.RunningBalance,
		Category:       t.Category,
		Payee:          t.Payee,
		Memo:           t.Memo,
		Line:           t.Line,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// RowIssueResponse describes a dropped or coerced row.
type RowIssueResponse struct {
	Line   int    `json:"line"`
	Stage  string `json:"stage"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// LoadReportResponse tells how many rows survived the load.
type LoadReportResponse struct {
	TotalRows      int                `json:"total_rows"`
	Kept           int                `json:"kept"`
	Dropped        int                `json:"dropped"`
	CoercedAmounts int                `json:"coerced_amounts"`
	Samples        []RowIssueResponse `json:"samples"`
}

// LoadReportFromDomain converts a domain load report to response.
func LoadReportFromDomain(r domain.LoadReport) LoadReportResponse {
	samples := make([]RowIssueResponse, len(r.Samples))
	for i, s := range r.Samples {
		samples[i] = RowIssueResponse{
			Line:   s.Line,
			Stage:  string(s.Stage),
			Value:  s.Value,
			Reason: s.Reason,
		}
	}

	return LoadReportResponse{
		TotalRows:      r.TotalRows,
		Kept:           r.Kept,
		Dropped:        r.Dropped,
		CoercedAmounts: r.CoercedAmounts,
		Samples:        samples,
	}
}

// StatementResponse represents the loaded statement in API responses.
type StatementResponse struct {
	ID               string             `json:"id"`
	Source           string             `json:"source"`
	Checksum         string             `json:"checksum"`
	Encoding         string             `json:"encoding"`
	Delimiter        string             `json:"delimiter"`
	LoadedAt         time.Time          `json:"loaded_at"`
	OpeningBalance   decimal.Decimal    `json:"opening_balance"`
	FinalBalance     decimal.Decimal    `json:"final_balance"`
	TransactionCount int                `json:"transaction_count"`
	Report           LoadReportResponse `json:"report"`
}

// StatementFromDomain converts a domain statement to response.
func StatementFromDomain(s *domain.Statement) *StatementResponse {
	resp := &StatementResponse{
		ID:           s.ID,
		Source:       s.Source,
		Checksum:     s.Checksum,
		Encoding:     s.Encoding,
		Delimiter:    s.Delimiter,
		LoadedAt:     s.LoadedAt,
		FinalBalance: s.FinalBalance(),
		Report:       LoadReportFromDomain(s.Report),
	}
	if s.Ledger != nil {
		resp.OpeningBalance = s.Ledger.OpeningBalance()
		resp.TransactionCount = s.Ledger.Len()
	}
	return resp
}

// SummaryResponse mirrors the dashboard metric cards.
type SummaryResponse struct {
	Query        string          `json:"query,omitempty"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Unclassified decimal.Decimal `json:"unclassified"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
}

// SummaryFromDomain converts a domain summary to response.
func SummaryFromDomain(query string, s domain.Summary) SummaryResponse {
	return SummaryResponse{
		Query:        query,
		Income:       s.Income,
		Expense:      s.Expense,
		Unclassified: s.Unclassified,
		Net:          s.Net,
		Count:        s.Count,
	}
}

// ListTransactionsResponse represents a page of search results.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Summary      SummaryResponse       `json:"summary"`
	FinalBalance decimal.Decimal       `json:"final_balance"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ListTransactionsFromUseCase converts a search result to response.
func ListTransactionsFromUseCase(r *usecase.SearchResult) ListTransactionsResponse {
	return ListTransactionsResponse{
		Transactions: TransactionsFromDomain(r.Transactions),
		Summary:      SummaryFromDomain(r.Query, r.Summary),
		FinalBalance: r.FinalBalance,
		Total:        r.Total,
		Limit:        r.Limit,
		Offset:       r.Offset,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
