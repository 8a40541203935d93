package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount repairs a currency string and returns its magnitude.
//
// Everything but digits, '.', ',' and a leading '-' is discarded. When
// both separators appear, the one that comes last is the decimal point
// and the other groups thousands, so "1.234,56" and "1,234.56" both give
// 1234.56. A lone ',' is a decimal point; a repeated one (or a repeated
// '.') groups thousands. ok is false when nothing parsable remains, in
// which case the amount is zero.
//
// Reading "1.234.567" and "1,234,567" as 1234567 is deliberate. Leaving
// a repeated separator in place would make the value unparsable and
// coerce it to zero, losing a real amount.
func ParseAmount(raw string) (amount decimal.Decimal, ok bool) {
	cleaned := repairSeparators(cleanAmount(raw))
	if cleaned == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}

	return d.Abs(), true
}

func cleanAmount(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func repairSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}
