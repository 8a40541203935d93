package normalizer

import (
	"strings"
	"time"

	"github.com/iho/extracto/internal/domain"
)

// Day-first layouts, longest year first so that "05/01/26" does not
// swallow a four-digit year. Year-first ISO dates are unambiguous and
// accepted as well.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2 Jan 2006",
	"2-Jan-2006",
	"2 January 2006",
}

// ParseDate parses a statement date day-first and drops any time of day.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := parseLayouts(s); ok {
		return t, true
	}

	// "05/01/2026 14:30" or "2026-01-05T14:30:00"
	if i := strings.IndexAny(s, " T"); i > 0 {
		return parseLayouts(s[:i])
	}

	return time.Time{}, false
}

func parseLayouts(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOnly(t), true
		}
	}
	return time.Time{}, false
}
