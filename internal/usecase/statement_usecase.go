package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/extracto/internal/domain"
	"github.com/iho/extracto/internal/infrastructure/metrics"
)

// StatementUseCase loads a statement and answers queries over its ledger.
type StatementUseCase struct {
	source   StatementSource
	parser   StatementParser
	store    StatementStore
	cache    LedgerCache
	idGen    IDGenerator
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	cacheTTL time.Duration
}

// NewStatementUseCase creates a new StatementUseCase. cache and metrics
// may be nil.
func NewStatementUseCase(
	source StatementSource,
	parser StatementParser,
	store StatementStore,
	cache LedgerCache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *StatementUseCase {
	return &StatementUseCase{
		source:   source,
		parser:   parser,
		store:    store,
		cache:    cache,
		idGen:    idGen,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: DefaultCacheTTL,
	}
}

// WithCacheTTL overrides how long parsed statements stay cached.
func (uc *StatementUseCase) WithCacheTTL(ttl time.Duration) *StatementUseCase {
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
	return uc
}

// Load reads the source, parses it (or takes it from the cache when the
// same bytes were parsed with the same options before) and makes it the
// current statement.
func (uc *StatementUseCase) Load(ctx context.Context) (*domain.Statement, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, DefaultLoadTimeout)
	defer cancel()

	data, err := uc.source.Read(ctx)
	if err != nil {
		uc.recordError(err)
		return nil, fmt.Errorf("read %s: %w", uc.source.Name(), err)
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])
	key := cacheKey(checksum, uc.parser.Fingerprint())

	origin := "cache"
	stmt := uc.fromCache(ctx, key)
	if stmt == nil {
		origin = "parsed"
		stmt, err = uc.parser.Parse(ctx, data)
		if err != nil {
			uc.recordError(err)
			uc.logger.Warn().Err(err).Str("source", uc.source.Name()).Msg("statement rejected")
			return nil, err
		}
		stmt.Source = uc.source.Name()
		stmt.Checksum = checksum
		uc.toCache(ctx, key, stmt)
	}

	stmt.ID = uc.idGen.Generate()
	stmt.Source = uc.source.Name()
	stmt.Checksum = checksum
	stmt.LoadedAt = time.Now().UTC()

	if err := uc.store.Save(ctx, stmt); err != nil {
		uc.recordError(err)
		return nil, fmt.Errorf("save statement: %w", err)
	}

	uc.recordLoad(stmt, origin, time.Since(start))

	uc.logger.Info().
		Str("id", stmt.ID).
		Str("source", stmt.Source).
		Str("origin", origin).
		Str("encoding", stmt.Encoding).
		Int("total_rows", stmt.Report.TotalRows).
		Int("kept", stmt.Report.Kept).
		Int("dropped", stmt.Report.Dropped).
		Int("coerced_amounts", stmt.Report.CoercedAmounts).
		Str("final_balance", stmt.FinalBalance().String()).
		Msg("statement loaded")

	for _, issue := range stmt.Report.Samples {
		uc.logger.Debug().
			Int("line", issue.Line).
			Str("stage", string(issue.Stage)).
			Str("value", issue.Value).
			Msg(issue.Reason)
	}

	return stmt, nil
}

// Current returns the statement being served.
func (uc *StatementUseCase) Current(ctx context.Context) (*domain.Statement, error) {
	return uc.store.Current(ctx)
}

// SearchInput represents input for searching the ledger.
type SearchInput struct {
	Query  string
	Limit  int
	Offset int
}

// SearchResult is one page of matching transactions, newest first, with
// the summary of every match.
type SearchResult struct {
	Query        string
	Transactions []domain.Transaction
	Summary      domain.Summary
	FinalBalance decimal.Decimal
	Total        int
	Limit        int
	Offset       int
}

// Search filters the current ledger by a case-insensitive substring of
// category, payee or memo.
func (uc *StatementUseCase) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	query, err := domain.ValidateQuery(input.Query)
	if err != nil {
		return nil, err
	}

	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	stmt, err := uc.store.Current(ctx)
	if err != nil {
		return nil, err
	}

	view := stmt.Ledger.Filter(query)

	return &SearchResult{
		Query:        query,
		Transactions: view.Newest(limit, offset),
		Summary:      view.Summary(),
		FinalBalance: view.FinalBalance(),
		Total:        view.Len(),
		Limit:        limit,
		Offset:       offset,
	}, nil
}

// Summary returns the income and expense totals of the transactions
// matching query. An empty query summarizes the whole ledger.
func (uc *StatementUseCase) Summary(ctx context.Context, query string) (domain.Summary, error) {
	query, err := domain.ValidateQuery(query)
	if err != nil {
		return domain.Summary{}, err
	}

	stmt, err := uc.store.Current(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	return stmt.Ledger.Filter(query).Summary(), nil
}

func (uc *StatementUseCase) fromCache(ctx context.Context, key string) *domain.Statement {
	if uc.cache == nil {
		return nil
	}

	stmt, err := uc.cache.Get(ctx, key)
	switch {
	case err == nil && stmt != nil && stmt.Ledger != nil:
		uc.countCache("get", "hit")
		return stmt
	case err == nil || errors.Is(err, domain.ErrCacheMiss):
		uc.countCache("get", "miss")
	default:
		uc.countCache("get", "error")
		uc.logger.Warn().Err(err).Msg("ledger cache lookup failed")
	}

	return nil
}

func (uc *StatementUseCase) toCache(ctx context.Context, key string, stmt *domain.Statement) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Set(ctx, key, stmt, uc.cacheTTL); err != nil {
		uc.countCache("set", "error")
		uc.logger.Warn().Err(err).Msg("ledger cache write failed")
		return
	}
	uc.countCache("set", "ok")
}

func (uc *StatementUseCase) countCache(operation, result string) {
	if uc.metrics != nil {
		uc.metrics.CacheOperations.WithLabelValues(operation, result).Inc()
	}
}

func (uc *StatementUseCase) recordLoad(stmt *domain.Statement, origin string, elapsed time.Duration) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.StatementsLoaded.WithLabelValues(origin).Inc()
	uc.metrics.LoadDuration.Observe(elapsed.Seconds())
	uc.metrics.EncodingSelected.WithLabelValues(stmt.Encoding).Inc()
	uc.metrics.RowsProcessed.WithLabelValues("kept").Add(float64(stmt.Report.Kept))
	uc.metrics.RowsProcessed.WithLabelValues("dropped").Add(float64(stmt.Report.Dropped))
	uc.metrics.RowsProcessed.WithLabelValues("coerced").Add(float64(stmt.Report.CoercedAmounts))
	uc.metrics.LedgerTransactions.Set(float64(stmt.Ledger.Len()))
	uc.metrics.LedgerBalance.Set(stmt.FinalBalance().InexactFloat64())
}

func (uc *StatementUseCase) recordError(err error) {
	if uc.metrics != nil {
		uc.metrics.LoadErrors.WithLabelValues(errorReason(err)).Inc()
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptySource):
		return "empty"
	case errors.Is(err, domain.ErrFormat):
		return "format"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "io"
	}
}

func cacheKey(checksum, fingerprint string) string {
	sum := sha256.Sum256([]byte(fingerprint))
	return cacheKeyPrefix + checksum + ":" + hex.EncodeToString(sum[:8])
}
