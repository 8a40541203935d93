package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/iho/extracto/internal/adapter/http/dto"
	"github.com/iho/extracto/internal/domain"
)

const memoWidth = 32

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
)

// statementOutput is the JSON shape of the normalize command.
type statementOutput struct {
	Statement    *dto.StatementResponse    `json:"statement"`
	Transactions []dto.TransactionResponse `json:"transactions"`
}

// csvHeader lists the canonical columns followed by the derived ones.
var csvHeader = []string{
	domain.ColumnDate,
	domain.ColumnKind,
	domain.ColumnAmount,
	domain.ColumnCategory,
	domain.ColumnPayee,
	domain.ColumnMemo,
	"signed_amount",
	"running_balance",
}

// amount columns are right aligned
var numericColumns = map[int]bool{2: true, 3: true}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(w io.Writer, txs []domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range txs {
		record := []string{
			t.Date.Format(time.DateOnly),
			t.Kind.String(),
			t.Amount.StringFixed(2),
			t.Category,
			t.Payee,
			t.Memo,
			t.SignedAmount.StringFixed(2),
			t.RunningBalance.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func printTransactions(w io.Writer, txs []domain.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DATE", "KIND", "AMOUNT", "BALANCE", "CATEGORY", "PAYEE", "MEMO").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numericColumns[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})

	for _, tx := range txs {
		t.Row(
			tx.Date.Format(time.DateOnly),
			tx.Kind.String(),
			tx.SignedAmount.StringFixed(2),
			tx.RunningBalance.StringFixed(2),
			tx.Category,
			tx.Payee,
			truncate(tx.Memo, memoWidth),
		)
	}

	fmt.Fprintln(w, t.Render())
}

func printSummary(w io.Writer, s domain.Summary, finalBalance decimal.Decimal) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Transactions:"), fmt.Sprint(s.Count))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Income:      "), incomeStyle.Render(s.Income.StringFixed(2)))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Expense:     "), expenseStyle.Render(s.Expense.StringFixed(2)))
	if !s.Unclassified.IsZero() {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Unclassified:"), s.Unclassified.StringFixed(2))
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Net:         "), s.Net.StringFixed(2))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Balance:     "), finalBalance.StringFixed(2))
}

func printReport(w io.Writer, r domain.LoadReport) {
	fmt.Fprintf(w, "%d rows read, %d kept, %d dropped, %d amounts coerced\n",
		r.TotalRows, r.Kept, r.Dropped, r.CoercedAmounts)
	for _, issue := range r.Samples {
		fmt.Fprintf(w, "  line %d (%s): %s %q\n", issue.Line, issue.Stage, issue.Reason, issue.Value)
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
