// Package memory keeps the statement being served in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/iho/extracto/internal/domain"
)

// StatementStore implements usecase.StatementStore. A Save replaces the
// previous statement; readers holding the old one keep a consistent view
// since ledgers are never mutated.
type StatementStore struct {
	mu      sync.RWMutex
	current *domain.Statement
}

// NewStatementStore creates an empty StatementStore.
func NewStatementStore() *StatementStore {
	return &StatementStore{}
}

// Save makes stmt the current statement.
func (s *StatementStore) Save(ctx context.Context, stmt *domain.Statement) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = stmt
	return nil
}

// Current returns the current statement or domain.ErrStatementNotLoaded.
func (s *StatementStore) Current(ctx context.Context) (*domain.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, domain.ErrStatementNotLoaded
	}
	return s.current, nil
}

// Loaded reports whether a statement has been saved.
func (s *StatementStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}
