package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	time.RFC3339,
}

// ParseDate accepts dd/mm/yyyy first, then ISO forms. Unparsable input yields the zero time.
func ParseDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseAmount turns a Brazilian formatted currency string such as
// "R$ 1.234,56" into a decimal. Everything except digits, comma, dot and
// minus is discarded, dots are thousands separators and the comma is the
// decimal separator. Anything left unparsable is zero.
func ParseAmount(valStr string) decimal.Decimal {
	if valStr == "" {
		return decimal.Zero
	}

	var b strings.Builder
	for _, r := range valStr {
		if (r >= '0' && r <= '9') || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleanStr := strings.Replace(b.String(), ",", ".", 1)
	if strings.Contains(cleanStr, ",") {
		return decimal.Zero
	}
	val, err := decimal.NewFromString(cleanStr)
	if err != nil {
		return decimal.Zero
	}
	return val
}

// FormatAmount renders a value the way the import files write it, e.g. "1.234,56".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

func ParseBool(valStr string) bool {
	return strings.EqualFold(valStr, "Sim") || strings.EqualFold(valStr, "Yes") || strings.EqualFold(valStr, "true") || valStr == "1"
}
