package ledger

import (
	"math"
	"strconv"
	"strings"
)

// FormatPrice renders a price the way the shop's reports always have:
// shortest round-trip digits with a mandatory fractional part ("14.0"),
// switching to exponent form for very large or very small magnitudes.
func FormatPrice(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
