package sheetrow

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

// ParseQty reads a spreadsheet quantity such as "1,250" or "12.5 boxes".
// Only the leading number counts; anything unreadable is zero.
func ParseQty(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	m := leadingNumber.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(m, "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseCount reads a whole-number quantity, truncating decimals.
func ParseCount(s string) int64 {
	return ParseQty(s).IntPart()
}

// LeadingNumber reports the number at the start of s, if any.
// Used for ordering aisle/bay/level keys.
func LeadingNumber(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(m, "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatQty prints a quantity without trailing zeros.
func FormatQty(d decimal.Decimal) string {
	return d.String()
}
