package dashboard

import (
	"strings"
	"time"

	"logidash/infrastructure/sheetrow"
)

// DateRange is an inclusive day range chosen on the dashboard.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange reads start/end query values (YYYY-MM-DD). Blank or
// invalid values fall back to today.
func ParseDateRange(start, end string, now time.Time) DateRange {
	today := sheetrow.StartOfDay(now)
	r := DateRange{Start: today, End: today}
	if t, ok := sheetrow.ParseInputDate(start); ok {
		r.Start = t
	}
	if t, ok := sheetrow.ParseInputDate(end); ok {
		r.End = t
	}
	return r
}

// Contains compares calendar days only.
func (r DateRange) Contains(t time.Time) bool {
	d := sheetrow.StartOfDay(t)
	return !d.Before(sheetrow.StartOfDay(r.Start)) && !d.After(sheetrow.StartOfDay(r.End))
}

// ContainsNormalized compares a YYYY-MM-DD string lexically to the bounds.
func (r DateRange) ContainsNormalized(ymd string) bool {
	if ymd == "" {
		return false
	}
	return ymd >= r.StartInput() && ymd <= r.EndInput()
}

func (r DateRange) StartInput() string {
	return sheetrow.InputDate(r.Start)
}

func (r DateRange) EndInput() string {
	return sheetrow.InputDate(r.End)
}

// InboundBetween returns tenant inbound entries whose date falls in r.
// Entries with unparsable dates are dropped.
func (s *Snapshot) InboundBetween(r DateRange) []VehicleEntry {
	out := make([]VehicleEntry, 0)
	if s == nil {
		return out
	}
	for _, v := range s.Inbound {
		if d, ok := sheetrow.ParseSheetDate(v.DateSource()); ok && r.Contains(d) {
			out = append(out, v)
		}
	}
	return out
}

// OutboundBetween is InboundBetween for dispatch notes, dated by actual_date.
func (s *Snapshot) OutboundBetween(r DateRange) []DispatchNote {
	out := make([]DispatchNote, 0)
	if s == nil {
		return out
	}
	for _, n := range s.Outbound {
		if d, ok := sheetrow.ParseSheetDate(n.ActualDate); ok && r.Contains(d) {
			out = append(out, n)
		}
	}
	return out
}

// CustomerCodeOnly keeps the notes whose customer cell carries the tenant code.
func (s *Snapshot) CustomerCodeOnly(notes []DispatchNote) []DispatchNote {
	out := make([]DispatchNote, 0, len(notes))
	code := ""
	if s != nil {
		code = s.Tenant.CustomerCode
	}
	for _, n := range notes {
		if code == "" || strings.Contains(n.CustomerName, code) {
			out = append(out, n)
		}
	}
	return out
}
