package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iho/extracto/internal/domain"
)

var delimiterCandidates = []rune{',', ';', '\t', '|'}

const sniffSampleLines = 20

// table is a decoded CSV body: its header, rows and the source line of
// each row.
type table struct {
	header    []string
	rows      [][]string
	lines     []int
	delimiter rune
}

// readTable skips skipRows physical lines, detects the delimiter and
// parses the rest as CSV with a header row.
func readTable(text string, skipRows int) (*table, error) {
	body, err := skipLines(text, skipRows)
	if err != nil {
		return nil, err
	}

	delimiter := sniffDelimiter(body)

	r := csv.NewReader(strings.NewReader(body))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no header row after preamble")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &table{header: header, delimiter: delimiter}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blankRecord(record) {
			continue
		}

		line, _ := r.FieldPos(0)
		t.rows = append(t.rows, record)
		t.lines = append(t.lines, skipRows+line)
	}

	return t, nil
}

// records maps rows to header labels. Blank and "Unnamed" headers are
// spreadsheet padding and are discarded.
func (t *table) records() []domain.RawRecord {
	out := make([]domain.RawRecord, len(t.rows))
	for i, row := range t.rows {
		rec := make(domain.RawRecord, len(t.header))
		for j, label := range t.header {
			if isPaddingColumn(label) {
				continue
			}
			if j < len(row) {
				rec[label] = row[j]
			} else {
				rec[label] = ""
			}
		}
		out[i] = rec
	}
	return out
}

// columns returns the folded header labels that carry data.
func (t *table) columns() map[string]bool {
	cols := make(map[string]bool, len(t.header))
	for _, label := range t.header {
		if !isPaddingColumn(label) {
			cols[domain.FoldLabel(label)] = true
		}
	}
	return cols
}

func isPaddingColumn(label string) bool {
	label = strings.TrimSpace(label)
	return label == "" || strings.HasPrefix(label, "Unnamed")
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func skipLines(text string, n int) (string, error) {
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			return "", fmt.Errorf("file has fewer than %d preamble lines", n)
		}
		text = text[idx+1:]
	}
	return text, nil
}

// sniffDelimiter picks the candidate that splits the first lines into
// the most rows sharing the header's field count. Ties go to the wider
// header, then to candidate order.
func sniffDelimiter(body string) rune {
	sample := sampleLines(body, sniffSampleLines)

	best, bestScore, bestWidth := delimiterCandidates[0], -1, 0
	for _, c := range delimiterCandidates {
		score, width := scoreDelimiter(sample, c)
		if width < 2 {
			continue
		}
		if score > bestScore || (score == bestScore && width > bestWidth) {
			best, bestScore, bestWidth = c, score, width
		}
	}

	return best
}

func scoreDelimiter(sample string, delimiter rune) (score, width int) {
	r := csv.NewReader(strings.NewReader(sample))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return 0, 0
	}

	width = len(records[0])
	for _, rec := range records[1:] {
		if len(rec) == width {
			score++
		}
	}

	return score, width
}

func sampleLines(body string, n int) string {
	lines := strings.SplitN(body, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
