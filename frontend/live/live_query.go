package live

import (
	"strings"

	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
)

// StageActive treats blank, false, n/a, unchecked, - and 0 as not reached.
func StageActive(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "n/a", "unchecked", "-", "0":
		return false
	}
	return true
}

func stagesFor(row sheetrow.Row, names []string) []Stage {
	out := make([]Stage, len(names))
	for i, name := range names {
		out[i] = Stage{Name: name, Active: StageActive(row.Get(name))}
		if i > 0 {
			out[i].Linked = out[i].Active && out[i-1].Active
		}
	}
	return out
}

func matchesSearch(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// BuildInwardBoard keeps live inward rows whose GRN is dated inside r.
// Rows without a matching GRN or with no usable date are hidden.
func BuildInwardBoard(snap *dashboard.Snapshot, r dashboard.DateRange, search string) PageData {
	q := strings.ToLower(strings.TrimSpace(search))
	data := PageData{
		Board:    BoardInward,
		Title:    "INWARD STATUS SYSTEM",
		IDHeader: "ID/Arrival",
		Start:    r.StartInput(),
		End:      r.EndInput(),
		Search:   search,
		Stages:   InwardStages,
		Rows:     make([]BoardRow, 0),
	}
	if snap != nil {
		for _, row := range snap.LiveInward {
			id := row.Get("GRN_ID")
			g, ok := snap.GRNByID(id)
			if !ok || !r.ContainsNormalized(sheetrow.NormalizeSheetDate(g.DateRaw)) {
				continue
			}
			if !matchesSearch(q, id, g.ArrivalTime) {
				continue
			}
			arrival := g.ArrivalTime
			if strings.TrimSpace(arrival) == "" {
				arrival = "--"
			}
			data.Rows = append(data.Rows, BoardRow{ID: id, Sub: arrival, Stages: stagesFor(row, InwardStages)})
		}
	}
	if len(data.Rows) == 0 {
		data.EmptyMessage = "No inward records for selected date range"
	}
	return data
}

// BuildOutboundBoard joins live outbound rows to the tenant dispatch notes
// already dispatched inside r, then checks actual date (falling back to order
// date) against r again. Notes without an actual date never join.
func BuildOutboundBoard(snap *dashboard.Snapshot, r dashboard.DateRange, search string) PageData {
	q := strings.ToLower(strings.TrimSpace(search))
	data := PageData{
		Board:    BoardOutbound,
		Title:    "OUTBOUND STATUS SYSTEM",
		IDHeader: "ID/Order",
		Start:    r.StartInput(),
		End:      r.EndInput(),
		Search:   search,
		Stages:   OutboundStages,
		Rows:     make([]BoardRow, 0),
	}
	if snap != nil {
		dispatched := snap.OutboundBetween(r)
		notes := make(map[string]dashboard.DispatchNote, len(dispatched))
		for _, n := range dispatched {
			key := strings.TrimSpace(n.DNID)
			if _, seen := notes[key]; !seen {
				notes[key] = n
			}
		}
		for _, row := range snap.LiveOutbound {
			id := row.Get("DN_ID")
			n, ok := notes[strings.TrimSpace(id)]
			if !ok {
				continue
			}
			raw := n.ActualDate
			if strings.TrimSpace(raw) == "" {
				raw = n.OrderDate
			}
			if !r.ContainsNormalized(sheetrow.NormalizeSheetDate(raw)) {
				continue
			}
			if !matchesSearch(q, id, n.OrderDate) {
				continue
			}
			order := n.OrderDate
			if strings.TrimSpace(order) == "" {
				order = "--"
			}
			data.Rows = append(data.Rows, BoardRow{ID: id, Sub: order, Stages: stagesFor(row, OutboundStages)})
		}
	}
	if len(data.Rows) == 0 {
		data.EmptyMessage = "No outbound records for selected date range"
	}
	return data
}
