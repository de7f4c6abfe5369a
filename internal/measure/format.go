package measure

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NeatNumber rounds d to places decimals and inserts thousands separators:
// 4125001.256 with 2 places is "4,125,001.26", with 0 places "4,125,001".
func NeatNumber(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(intPart[i : i+3])
	}
	sb.WriteString(frac)
	return sb.String()
}

// NeatFloat is NeatNumber for float64 inputs.
func NeatFloat(f float64, places int32) string {
	return NeatNumber(decimal.NewFromFloat(f), places)
}
