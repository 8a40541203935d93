// Package idgen generates statement load IDs.
package idgen

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs. IDs sort by load time.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
