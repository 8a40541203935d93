package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Load errors
	ErrFormat             = errors.New("statement format not recognized")
	ErrStatementNotLoaded = errors.New("no statement loaded")
	ErrEmptySource        = errors.New("statement source is empty")
	ErrUnknownEncoding    = errors.New("unknown text encoding")

	// Cache errors
	ErrCacheMiss = errors.New("ledger not cached")

	// Input errors
	ErrInvalidOpeningBalance = errors.New("invalid opening balance")
	ErrQueryTooLong          = errors.New("search query too long")
)

// FormatAttempt records why one decoding candidate was rejected.
type FormatAttempt struct {
	Encoding string
	Err      error
}

// FormatError is returned when no encoding and column mapping yields a
// single usable row.
type FormatError struct {
	Reason   string
	Attempts []FormatAttempt
	// Cause optionally narrows the failure, e.g. ErrEmptySource.
	Cause error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString(ErrFormat.Error())
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.Encoding, a.Err)
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrFormat and the cause, if any.
func (e *FormatError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrFormat, e.Cause}
	}
	return []error{ErrFormat}
}

// NewEmptySourceError reports a statement with no bytes at all.
func NewEmptySourceError() *FormatError {
	return &FormatError{Reason: "empty file", Cause: ErrEmptySource}
}

// NewFormatError creates a FormatError with a reason and no attempts.
func NewFormatError(format string, args ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}
