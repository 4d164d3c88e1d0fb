package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a textual amount. Both dot (12.34) and comma (12,34)
// decimal separators are accepted. A comma is never a thousands separator,
// so "1,234" reads as 0. Malformed input coerces to 0 rather than failing,
// so aggregations over imported rows stay total.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		_, frac, _ := strings.Cut(s, ",")
		if len(frac) == 3 && isDigits(frac) {
			return 0
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return SafeAmount(f)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// SafeAmount coerces NaN and infinities to 0.
func SafeAmount(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(f float64) string {
	return decimal.NewFromFloat(SafeAmount(f)).StringFixed(2)
}

// AmountString renders the shortest decimal text that parses back to f.
func AmountString(f float64) string {
	return decimal.NewFromFloat(SafeAmount(f)).String()
}
