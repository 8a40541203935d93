package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssueStage names the parse step that rejected or coerced a value.
type IssueStage string

const (
	StageDate   IssueStage = "date"
	StageAmount IssueStage = "amount"
)

// MaxIssueSamples bounds the number of offending rows kept in a report.
const MaxIssueSamples = 5

// RowIssue describes one row that was dropped or coerced.
type RowIssue struct {
	Line   int        `json:"line"`
	Stage  IssueStage `json:"stage"`
	Value  string     `json:"value"`
	Reason string     `json:"reason"`
}

// LoadReport summarizes what happened to the input rows.
type LoadReport struct {
	TotalRows      int        `json:"total_rows"`
	Kept           int        `json:"kept"`
	Dropped        int        `json:"dropped"`
	CoercedAmounts int        `json:"coerced_amounts"`
	Samples        []RowIssue `json:"samples,omitempty"`
}

// AddIssue counts an issue and keeps it as a sample while there is room.
func (r *LoadReport) AddIssue(issue RowIssue) {
	switch issue.Stage {
	case StageDate:
		r.Dropped++
	case StageAmount:
		r.CoercedAmounts++
	}
	if len(r.Samples) < MaxIssueSamples {
		r.Samples = append(r.Samples, issue)
	}
}

// Statement is one loaded statement file and its ledger.
type Statement struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Checksum  string     `json:"checksum"`
	Encoding  string     `json:"encoding"`
	Delimiter string     `json:"delimiter"`
	LoadedAt  time.Time  `json:"loaded_at"`
	Ledger    *Ledger    `json:"ledger"`
	Report    LoadReport `json:"report"`
}

// FinalBalance returns the running balance after the last transaction.
func (s *Statement) FinalBalance() decimal.Decimal {
	if s.Ledger == nil {
		return decimal.Zero
	}
	return s.Ledger.FinalBalance()
}
