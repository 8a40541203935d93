package domain

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// Canonical column names of a statement export after FoldLabel.
const (
	ColumnDate     = "fecha"
	ColumnAmount   = "monto"
	ColumnKind     = "tipo"
	ColumnCategory = "categoria"
	ColumnPayee    = "beneficiario"
	ColumnMemo     = "detalle"
)

// RawRecord is one input row keyed by column label.
type RawRecord map[string]string

// Ledger is an ordered, read-only sequence of transactions with running
// balances. The zero value is an empty ledger with a zero opening balance.
type Ledger struct {
	opening      decimal.Decimal
	transactions []Transaction
}

// BuildLedger orders transactions by date (stable, so same-day rows keep
// input order), derives signed amounts and running balances seeded by
// opening, and returns the resulting ledger. The input slice is not
// modified.
func BuildLedger(opening decimal.Decimal, txs []Transaction) *Ledger {
	ordered := make([]Transaction, len(txs))
	copy(ordered, txs)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	balance := opening
	for i := range ordered {
		ordered[i].Amount = ordered[i].Amount.Abs()
		ordered[i].SignedAmount = ordered[i].Kind.Sign(ordered[i].Amount)
		balance = balance.Add(ordered[i].SignedAmount)
		ordered[i].RunningBalance = balance
	}

	return &Ledger{opening: opening, transactions: ordered}
}

// OpeningBalance returns the seed of the running balance.
func (l *Ledger) OpeningBalance() decimal.Decimal {
	return l.opening
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Transactions returns a copy of the transactions in date order.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Filter returns the transactions matching query as a view. Running
// balances are those of the full ledger.
func (l *Ledger) Filter(query string) *Ledger {
	view := &Ledger{opening: l.opening, transactions: make([]Transaction, 0, len(l.transactions))}
	for i := range l.transactions {
		if l.transactions[i].Matches(query) {
			view.transactions = append(view.transactions, l.transactions[i])
		}
	}
	return view
}

// TotalsByKind sums amounts per kind.
func (l *Ledger) TotalsByKind() map[Kind]decimal.Decimal {
	totals := map[Kind]decimal.Decimal{
		KindIncome:       decimal.Zero,
		KindExpense:      decimal.Zero,
		KindUnclassified: decimal.Zero,
	}
	for _, t := range l.transactions {
		totals[t.Kind] = totals[t.Kind].Add(t.Amount)
	}
	return totals
}

// Summary is the income/expense overview of a ledger or a filtered view.
type Summary struct {
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Unclassified decimal.Decimal `json:"unclassified"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
}

// Summary returns income and expense totals and their difference.
// Unclassified amounts are reported but not part of Net.
func (l *Ledger) Summary() Summary {
	totals := l.TotalsByKind()
	return Summary{
		Income:       totals[KindIncome],
		Expense:      totals[KindExpense],
		Unclassified: totals[KindUnclassified],
		Net:          totals[KindIncome].Sub(totals[KindExpense]),
		Count:        len(l.transactions),
	}
}

// FinalBalance returns the last running balance, or the opening balance
// of an empty ledger.
func (l *Ledger) FinalBalance() decimal.Decimal {
	if len(l.transactions) == 0 {
		return l.opening
	}
	return l.transactions[len(l.transactions)-1].RunningBalance
}

// Newest returns a page of transactions, most recent first. A negative
// offset counts as zero.
func (l *Ledger) Newest(limit, offset int) []Transaction {
	if offset < 0 {
		offset = 0
	}
	n := len(l.transactions)
	if offset >= n || limit <= 0 {
		return []Transaction{}
	}
	end := offset + limit
	if end > n {
		end = n
	}

	page := make([]Transaction, 0, end-offset)
	for i := n - 1 - offset; i >= n-end; i-- {
		page = append(page, l.transactions[i])
	}
	return page
}

// Records renders the ledger back to rows with canonical column names.
func (l *Ledger) Records() []RawRecord {
	rows := make([]RawRecord, len(l.transactions))
	for i, t := range l.transactions {
		rows[i] = RawRecord{
			ColumnDate:     t.Date.Format("2006-01-02"),
			ColumnAmount:   t.Amount.String(),
			ColumnKind:     t.Kind.String(),
			ColumnCategory: t.Category,
			ColumnPayee:    t.Payee,
			ColumnMemo:     t.Memo,
		}
	}
	return rows
}

type ledgerJSON struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Transactions   []Transaction   `json:"transactions"`
}

// MarshalJSON implements json.Marshaler.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(ledgerJSON{OpeningBalance: l.opening, Transactions: l.transactions})
}

// UnmarshalJSON rebuilds the ledger, recomputing derived fields.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw ledgerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = *BuildLedger(raw.OpeningBalance, raw.Transactions)
	return nil
}
