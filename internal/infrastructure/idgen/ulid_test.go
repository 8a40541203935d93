package idgen

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGenerator(t *testing.T) {
	g := NewULIDGenerator()

	first := g.Generate()
	second := g.Generate()

	if _, err := ulid.ParseStrict(first); err != nil {
		t.Fatalf("expected valid ULID, got %q: %v", first, err)
	}
	if first == second {
		t.Fatalf("expected unique IDs, got %q twice", first)
	}
	if second <= first {
		t.Fatalf("expected monotonically increasing IDs, got %q then %q", first, second)
	}
}
