package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/extracto/internal/adapter/http/dto"
)

const statementCSV = "Banco Ejemplo\n" +
	"Cuenta: 0001\n" +
	"Fecha;Tipo;Monto;Categoría;Beneficiario;Detalle\n" +
	"02/01/2026;Ingreso;1.000,00;Salario;Empresa;Enero\n" +
	"03/01/2026;Egreso;250,50;Mercado;Tienda;Comida de la semana con un detalle largo\n" +
	"sin fecha;Egreso;1,00;Mercado;Tienda;Roto\n"

func writeStatement(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(path, []byte(statementCSV), 0o600); err != nil {
		t.Fatalf("write statement: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}

	if got := truncate("categoría", 2); got != "ca" {
		t.Fatalf("expected ca, got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]string{"hello": "world"}); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}

	if !strings.Contains(buf.String(), "\"hello\": \"world\"") {
		t.Fatalf("expected indented JSON, got %q", buf.String())
	}
}

func TestNormalizeTable(t *testing.T) {
	out, err := execute(t, "normalize", writeStatement(t), "--skip-rows", "2", "--opening-balance", "100")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	for _, want := range []string{"2026-01-02", "1100.00", "849.50", "-250.50", "comida de la semana con un de...", "3 rows read, 2 kept, 1 dropped"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestNormalizeCSV(t *testing.T) {
	out, err := execute(t, "normalize", writeStatement(t), "--skip-rows", "2", "--format", "csv")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Fatalf("unexpected header %v", records[0])
	}

	last := records[2]
	if last[0] != "2026-01-03" || last[1] != "expense" || last[2] != "250.50" || last[7] != "749.50" {
		t.Fatalf("unexpected row %v", last)
	}
}

func TestNormalizeJSON(t *testing.T) {
	out, err := execute(t, "normalize", writeStatement(t), "--skip-rows", "2", "-f", "json")
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	var got statementOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if got.Statement.TransactionCount != 2 {
		t.Fatalf("expected 2 transactions, got %d", got.Statement.TransactionCount)
	}
	if got.Statement.Report.Dropped != 1 {
		t.Fatalf("expected 1 dropped row, got %d", got.Statement.Report.Dropped)
	}
	if got.Statement.Delimiter != ";" {
		t.Fatalf("expected ; delimiter, got %q", got.Statement.Delimiter)
	}
	if !got.Statement.FinalBalance.Equal(decimal.RequireFromString("749.5")) {
		t.Fatalf("expected final balance 749.5, got %s", got.Statement.FinalBalance)
	}
	if got.Transactions[0].Category != "salario" {
		t.Fatalf("expected lower-cased category, got %q", got.Transactions[0].Category)
	}
}

func TestNormalizeErrors(t *testing.T) {
	path := writeStatement(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"normalize", path, "--skip-rows", "2", "--format", "xml"}},
		{"missing file", []string{"normalize", filepath.Join(t.TempDir(), "missing.csv")}},
		{"wrong preamble", []string{"normalize", path, "--skip-rows", "0"}},
		{"bad opening balance", []string{"normalize", path, "--opening-balance", "abc"}},
		{"unknown encoding", []string{"normalize", path, "--encodings", "ebcdic"}},
		{"missing argument", []string{"normalize"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSummary(t *testing.T) {
	out, err := execute(t, "summary", writeStatement(t), "--skip-rows", "2", "--query", "MERCADO")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	for _, want := range []string{"250.50", "-250.50"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "1000.00") {
		t.Fatalf("expected income to be filtered out, got:\n%s", out)
	}
}

func TestSearch(t *testing.T) {
	out, err := execute(t, "search", writeStatement(t), "empresa", "--skip-rows", "2")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if !strings.Contains(out, "1 of 1 matching transactions") {
		t.Fatalf("expected one match, got:\n%s", out)
	}

	out, err = execute(t, "search", writeStatement(t), "nada", "--skip-rows", "2")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, "No transactions.") {
		t.Fatalf("expected empty result, got:\n%s", out)
	}
}

func TestStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/statement" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.StatementResponse{
			ID:               "01HZX",
			Source:           "statement.csv",
			Encoding:         "utf-8-sig",
			Delimiter:        ";",
			LoadedAt:         time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
			OpeningBalance:   decimal.NewFromInt(100),
			FinalBalance:     decimal.RequireFromString("849.5"),
			TransactionCount: 2,
			Report:           dto.LoadReportResponse{TotalRows: 3, Kept: 2, Dropped: 1},
		})
	}))
	defer server.Close()

	out, err := execute(t, "status", "--url", server.URL+"/")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	for _, want := range []string{"01HZX", "statement.csv", "849.50", "3 rows read, 2 kept, 1 dropped"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestStatusNotLoaded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "statement not loaded"})
	}))
	defer server.Close()

	_, err := execute(t, "status", "--url", server.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "statement not loaded") {
		t.Fatalf("unexpected error: %v", err)
	}
}
