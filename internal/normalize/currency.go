// Package normalize repairs locale-specific value formats from marketplace
// exports before the data is allowed through a schema contract. Failures are
// resolved to missing, never raised: nullability is enforced later, by the
// contract, and only there.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// The exports mix at least four numeral conventions. Shape is decided by
// regular expression, tried in a fixed priority order. The order matters:
// "6,000" must read as six thousand, not as six with a decimal comma.
var (
	reCommaThousands = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
	reDecimalComma   = regexp.MustCompile(`^-?\d+,\d+$`)
	reDotThousands   = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})+(?:,\d+)?$`)
	rePlain          = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
)

// ParseCurrency reads a monetary value in any of the supported conventions:
// ASCII thousands-comma ("6,000", "3,000.50"), decimal-comma ("9856,5"),
// European thousands-dot ("12.345,67") or plain ("5000", "1234.56").
// Values that match no shape are missing.
func ParseCurrency(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.TrimPrefix(s, "rp")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	switch {
	case reCommaThousands.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case reDecimalComma.MatchString(s):
		s = strings.ReplaceAll(s, ",", ".")
	case reDotThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case rePlain.MatchString(s):
		// already canonical
	default:
		return 0, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// RepairTruncated corrects a known truncation bug in one export format that
// drops the thousands of rupiah amounts: any strictly positive value below
// the threshold is multiplied by 1000. The rule is declared per column by the
// source layout and must never be applied globally.
func RepairTruncated(v, threshold float64) float64 {
	if v > 0 && v < threshold {
		return v * 1000
	}
	return v
}
