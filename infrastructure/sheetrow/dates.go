package sheetrow

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateSeparators = regexp.MustCompile(`[/.\-]`)

func splitSheetDate(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	parts := dateSeparators.Split(s, -1)
	if len(parts) != 3 {
		return nil
	}
	return parts
}

// ParseSheetDate reads YYYY-MM-DD or DD-MM-YYYY (any of / . - as separator,
// optional trailing time). A 4 character first segment means year first.
// Two digit years are 20xx. Out of range days roll over like time.Date.
func ParseSheetDate(s string) (time.Time, bool) {
	parts := splitSheetDate(s)
	if parts == nil {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	var y, m, d int
	if len(parts[0]) == 4 {
		y, m, d = nums[0], nums[1], nums[2]
	} else {
		d, m, y = nums[0], nums[1], nums[2]
		if len(strconv.Itoa(y)) == 2 {
			y += 2000
		}
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), true
}

// NormalizeSheetDate rewrites a sheet date into a zero padded YYYY-MM-DD
// string without validating the numbers. Returns "" when the shape is wrong.
func NormalizeSheetDate(s string) string {
	parts := splitSheetDate(s)
	if parts == nil {
		return ""
	}
	if len(parts[0]) == 4 {
		return fmt.Sprintf("%s-%s-%s", parts[0], pad2(parts[1]), pad2(parts[2]))
	}
	d, m, y := parts[0], parts[1], parts[2]
	if len(y) == 2 {
		y = "20" + y
	}
	return fmt.Sprintf("%s-%s-%s", y, pad2(m), pad2(d))
}

func pad2(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

// ParseInputDate parses the YYYY-MM-DD value of an <input type="date">.
func ParseInputDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// InputDate formats t the way ParseInputDate reads it.
func InputDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// StartOfDay drops the clock part of t in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysRemaining counts calendar days from today until the expiry written in
// the sheet. Negative values mean already expired.
func DaysRemaining(expiry string, today time.Time) (int, bool) {
	exp, ok := ParseSheetDate(expiry)
	if !ok {
		return 0, false
	}
	ey, em, ed := exp.Date()
	ty, tm, td := today.Date()
	a := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(a.Sub(b).Hours() / 24)), true
}
