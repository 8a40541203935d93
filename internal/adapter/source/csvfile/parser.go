// Package csvfile reads bank statement CSV exports of unknown encoding
// and delimiter.
package csvfile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/extracto/internal/domain"
	"github.com/iho/extracto/internal/normalizer"
)

// Options configures how a statement file is read.
type Options struct {
	SkipRows       int
	Encodings      []string
	OpeningBalance decimal.Decimal
}

// Parser implements usecase.StatementParser for delimited text exports.
type Parser struct {
	opts      Options
	encodings []Encoding
	logger    zerolog.Logger
}

// NewParser creates a Parser, resolving encoding names up front.
func NewParser(opts Options, logger zerolog.Logger) (*Parser, error) {
	if err := domain.ValidateSkipRows(opts.SkipRows); err != nil {
		return nil, err
	}

	encs, err := LookupEncodings(opts.Encodings)
	if err != nil {
		return nil, err
	}

	return &Parser{opts: opts, encodings: encs, logger: logger}, nil
}

// Fingerprint identifies the options that influence the parsed result.
func (p *Parser) Fingerprint() string {
	names := make([]string, len(p.encodings))
	for i, e := range p.encodings {
		names[i] = e.Name
	}
	return fmt.Sprintf("skip=%d;enc=%s;open=%s", p.opts.SkipRows, strings.Join(names, ","), p.opts.OpeningBalance.String())
}

// Parse tries each encoding in order and returns the first that yields a
// table with the required columns and at least one usable row. The
// returned statement has its ledger, report, encoding and delimiter set.
func (p *Parser) Parse(ctx context.Context, data []byte) (*domain.Statement, error) {
	if len(data) == 0 {
		return nil, domain.NewEmptySourceError()
	}

	fe := &domain.FormatError{Reason: "no encoding produced a usable table"}
	for _, enc := range p.encodings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stmt, err := p.parseWith(enc, data)
		if err == nil {
			p.logger.Debug().
				Str("encoding", enc.Name).
				Str("delimiter", stmt.Delimiter).
				Int("rows", stmt.Report.TotalRows).
				Msg("statement decoded")
			return stmt, nil
		}

		p.logger.Debug().Err(err).Str("encoding", enc.Name).Msg("encoding rejected")
		fe.Attempts = append(fe.Attempts, domain.FormatAttempt{Encoding: enc.Name, Err: err})
	}

	return nil, fe
}

func (p *Parser) parseWith(enc Encoding, data []byte) (*domain.Statement, error) {
	text, err := enc.Decode(data)
	if err != nil {
		return nil, err
	}

	t, err := readTable(string(text), p.opts.SkipRows)
	if err != nil {
		return nil, err
	}

	cols := t.columns()
	for _, required := range []string{domain.ColumnDate, domain.ColumnAmount} {
		if !cols[required] {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	res, err := normalizer.Normalize(t.records(), normalizer.Options{
		OpeningBalance: p.opts.OpeningBalance,
		Lines:          t.lines,
	})
	if err != nil {
		var inner *domain.FormatError
		if errors.As(err, &inner) {
			return nil, errors.New(inner.Reason)
		}
		return nil, err
	}

	return &domain.Statement{
		Encoding:  enc.Name,
		Delimiter: string(t.delimiter),
		Ledger:    res.Ledger,
		Report:    res.Report,
	}, nil
}
