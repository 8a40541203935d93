package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxQueryLength    = 200
	MaxOpeningBalance = "1000000000000" // 1 trillion
	MaxPageSize       = 1000
	DefaultPageSize   = 50
	DefaultSkipRows   = 12
	MaxSkipRows       = 1000
)

// ValidateQuery trims a search query and checks its length.
func ValidateQuery(query string) (string, error) {
	query = strings.TrimSpace(query)

	if len(query) > MaxQueryLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrQueryTooLong, MaxQueryLength)
	}

	return query, nil
}

// ParseOpeningBalance parses a signed decimal opening balance. An empty
// string means zero.
func ParseOpeningBalance(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	balance, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidOpeningBalance, s)
	}

	limit := decimal.RequireFromString(MaxOpeningBalance)
	if balance.Abs().GreaterThan(limit) {
		return decimal.Zero, fmt.Errorf("%w: magnitude exceeds %s", ErrInvalidOpeningBalance, MaxOpeningBalance)
	}

	return balance, nil
}

// ValidateSkipRows checks the preamble length.
func ValidateSkipRows(n int) error {
	if n < 0 || n > MaxSkipRows {
		return fmt.Errorf("%w: skip rows must be between 0 and %d", ErrFormat, MaxSkipRows)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
