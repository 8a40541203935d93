// Package normalizer turns raw statement rows into a typed ledger.
package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/extracto/internal/domain"
)

// Options configures a normalization run.
type Options struct {
	// OpeningBalance seeds the running balance. Defaults to zero.
	OpeningBalance decimal.Decimal
	// FirstLine is the source line number of rows[0], used in issue
	// samples. Zero means 1.
	FirstLine int
	// Lines optionally gives the source line of each row and takes
	// precedence over FirstLine.
	Lines []int
}

func (o Options) lineOf(i int) int {
	if i < len(o.Lines) {
		return o.Lines[i]
	}
	if o.FirstLine <= 0 {
		return 1 + i
	}
	return o.FirstLine + i
}

// Result is a normalized ledger together with what was dropped or
// coerced on the way.
type Result struct {
	Ledger *domain.Ledger
	Report domain.LoadReport
}

// Normalize cleans rows into a ledger ordered by date.
//
// Rows without a parsable date are dropped. Unparsable amounts become
// zero. Blank categorical fields become domain.Unclassified. The only
// error is a *domain.FormatError, returned when no row survives.
func Normalize(rows []domain.RawRecord, opts Options) (*Result, error) {
	if len(rows) == 0 {
		return nil, domain.NewFormatError("no data rows")
	}

	report := domain.LoadReport{TotalRows: len(rows)}
	txs := make([]domain.Transaction, 0, len(rows))
	sawDateColumn := false

	for i, raw := range rows {
		line := opts.lineOf(i)
		rec := FoldRecord(raw)

		rawDate, hasDate := rec[domain.ColumnDate]
		sawDateColumn = sawDateColumn || hasDate

		date, ok := ParseDate(rawDate)
		if !ok {
			reason := "unparsable date"
			if strings.TrimSpace(rawDate) == "" {
				reason = "missing date"
			}
			report.AddIssue(domain.RowIssue{Line: line, Stage: domain.StageDate, Value: rawDate, Reason: reason})
			continue
		}

		amount, ok := ParseAmount(rec[domain.ColumnAmount])
		if !ok {
			report.AddIssue(domain.RowIssue{
				Line:   line,
				Stage:  domain.StageAmount,
				Value:  rec[domain.ColumnAmount],
				Reason: "unparsable amount, using 0",
			})
		}

		txs = append(txs, domain.Transaction{
			Date:     date,
			Kind:     domain.ParseKind(rec[domain.ColumnKind]),
			Amount:   amount,
			Category: categorical(rec[domain.ColumnCategory]),
			Payee:    categorical(rec[domain.ColumnPayee]),
			Memo:     categorical(rec[domain.ColumnMemo]),
			Line:     line,
		})
	}

	report.Kept = len(txs)
	if len(txs) == 0 {
		if !sawDateColumn {
			return nil, domain.NewFormatError("missing %q column", domain.ColumnDate)
		}
		return nil, domain.NewFormatError("none of %d rows has a usable date", len(rows))
	}

	return &Result{
		Ledger: domain.BuildLedger(opts.OpeningBalance, txs),
		Report: report,
	}, nil
}

// FoldRecord re-keys a row by folded column label. When two labels fold
// to the same name a non-blank value is preferred.
func FoldRecord(raw domain.RawRecord) domain.RawRecord {
	rec := make(domain.RawRecord, len(raw))
	for label, value := range raw {
		key := domain.FoldLabel(label)
		if key == "" {
			continue
		}
		if existing, ok := rec[key]; ok && strings.TrimSpace(existing) != "" {
			continue
		}
		rec[key] = value
	}
	return rec
}

// categorical trims, defaults blanks to the sentinel and lower-cases.
func categorical(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.Unclassified
	}
	return strings.ToLower(value)
}
