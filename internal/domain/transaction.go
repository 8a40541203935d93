package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Unclassified is the placeholder for any missing categorical field.
const Unclassified = "unclassified"

// Kind classifies a transaction as money in, money out, or neither.
type Kind int

const (
	KindUnclassified Kind = iota
	KindIncome
	KindExpense
)

var kindLabels = map[string]Kind{
	"ingreso": KindIncome,
	"income":  KindIncome,
	"credito": KindIncome,
	"abono":   KindIncome,
	"egreso":  KindExpense,
	"expense": KindExpense,
	"gasto":   KindExpense,
	"debito":  KindExpense,
	"cargo":   KindExpense,
}

// ParseKind maps a free-text label to a Kind. Matching ignores case,
// surrounding whitespace and accents.
func ParseKind(label string) Kind {
	if k, ok := kindLabels[FoldLabel(label)]; ok {
		return k
	}
	return KindUnclassified
}

func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	default:
		return Unclassified
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// Sign applies the kind's sign to a non-negative amount. Only income is
// positive.
func (k Kind) Sign(amount decimal.Decimal) decimal.Decimal {
	if k == KindIncome {
		return amount
	}
	return amount.Neg()
}

// Transaction is one normalized statement line.
type Transaction struct {
	Date           time.Time       `json:"date"`
	Kind           Kind            `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Category       string          `json:"category"`
	Payee          string          `json:"payee"`
	Memo           string          `json:"memo"`
	SignedAmount   decimal.Decimal `json:"signed_amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
	Line           int             `json:"line,omitempty"`
}

// Matches reports whether query is a case-insensitive substring of the
// category, payee or memo. An empty query matches everything.
func (t *Transaction) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Category), q) ||
		strings.Contains(strings.ToLower(t.Payee), q) ||
		strings.Contains(strings.ToLower(t.Memo), q)
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s", t.Date.Format(time.DateOnly), t.Kind, t.SignedAmount.StringFixed(2), t.Payee)
}
