// Package format renders numbers the way the dashboard page displays them.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Number renders v in its shortest decimal form: 22 → "22", 310.5 → "310.5".
// Negative zero renders as "0".
func Number(v float64) string {
	if v == 0 && math.Signbit(v) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fixed renders v with the given number of decimals. Exact halves round
// away from zero (1.25 → "1.3"), unlike strconv which rounds them to even.
func Fixed(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	abs := math.Abs(v)
	exact := strconv.FormatFloat(abs, 'f', decimals+30, 64)
	if isHalfway(exact, decimals) {
		abs += 0.5 * math.Pow10(-decimals)
	}

	s := strconv.FormatFloat(abs, 'f', decimals, 64)
	if v < 0 && strings.Trim(s, "0.") != "" {
		s = "-" + s
	}
	return s
}

// Thousands renders v/1000 with one decimal: 450000 → "450.0".
func Thousands(v float64) string {
	return Fixed(v/1000, 1)
}

func isHalfway(exact string, decimals int) bool {
	dot := strings.IndexByte(exact, '.')
	if dot < 0 {
		return false
	}
	rest := exact[dot+1+decimals:]
	if rest == "" || rest[0] != '5' {
		return false
	}
	return strings.Trim(rest[1:], "0") == ""
}
