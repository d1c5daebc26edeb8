package movements

import (
	"net/url"
	"strconv"

	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
)

// InboundQuery is what the inbound tab reads from the request.
type InboundQuery struct {
	Range   dashboard.DateRange
	GRNID   string
	Vehicle string
}

type OutboundQuery struct {
	Range dashboard.DateRange
	DNID  string
}

// BuildInboundPage filters tenant inbound entries to the range, sums the
// stats and resolves the drill-down when a vehicle is selected.
func BuildInboundPage(snap *dashboard.Snapshot, q InboundQuery) PageData {
	entries := snap.InboundBetween(q.Range)
	pallets, boxes := dashboard.SumPallets(entries)

	data := PageData{
		Kind:         KindInbound,
		Start:        q.Range.StartInput(),
		End:          q.Range.EndInput(),
		AllTimeCount: snap.AllTimeCount,
		Stats: []Stat{
			{Title: "Vehicles Entered", Value: strconv.Itoa(len(entries))},
			{Title: "Total Pallets", Value: sheetrow.FormatQty(pallets)},
			{Title: "Total Boxes", Value: sheetrow.FormatQty(boxes)},
		},
		Inbound: make([]InboundRow, 0, len(entries)),
	}
	for _, v := range entries {
		data.Inbound = append(data.Inbound, InboundRow{
			Date:      v.DisplayDate(),
			GRNID:     v.GRNID,
			Vehicle:   v.VehicleNumber,
			Driver:    v.DriverName,
			Invoice:   v.InvoiceNumber,
			Pallets:   sheetrow.FormatQty(v.Pallets),
			Boxes:     sheetrow.FormatQty(v.Boxes),
			DetailURL: detailURL("/tasker/inbound", q.Range, url.Values{"grn": {v.GRNID}, "vehicle": {v.VehicleNumber}}),
		})
	}
	if len(entries) == 0 {
		data.EmptyMessage = emptyRangeMessage
	}

	if q.GRNID != "" || q.Vehicle != "" {
		if v, ok := snap.FindInbound(q.GRNID, q.Vehicle); ok {
			grn := v.GRNID
			if grn == "" {
				grn = "PENDING"
			}
			data.InboundDetail = &InboundDetail{
				Vehicle:  v.VehicleNumber,
				GRN:      grn,
				Driver:   v.DriverName,
				Invoice:  v.InvoiceNumber,
				Date:     v.DisplayDate(),
				Pallets:  snap.PalletsForVehicle(v),
				CloseURL: detailURL("/tasker/inbound", q.Range, nil),
			}
		}
	}
	return data
}

// BuildOutboundPage keeps tenant notes in range that carry the customer code.
func BuildOutboundPage(snap *dashboard.Snapshot, q OutboundQuery) PageData {
	notes := snap.CustomerCodeOnly(snap.OutboundBetween(q.Range))
	pallets, boxes := dashboard.SumDispatched(notes)

	data := PageData{
		Kind:         KindOutbound,
		Start:        q.Range.StartInput(),
		End:          q.Range.EndInput(),
		AllTimeCount: snap.AllTimeCount,
		Stats: []Stat{
			{Title: "Entries Processed", Value: strconv.Itoa(len(notes))},
			{Title: "Total Pallets", Value: sheetrow.FormatQty(pallets)},
			{Title: "Total Boxes", Value: sheetrow.FormatQty(boxes)},
		},
		Outbound: make([]OutboundRow, 0, len(notes)),
	}
	for _, n := range notes {
		data.Outbound = append(data.Outbound, OutboundRow{
			ActualDate: n.DisplayActualDate(),
			OrderDate:  n.DisplayOrderDate(),
			Customer:   n.CustomerName,
			DNID:       n.DNID,
			Status:     n.Status,
			Pallets:    sheetrow.FormatQty(n.Pallets),
			Boxes:      sheetrow.FormatQty(n.Boxes),
			DetailURL:  detailURL("/tasker/outbound", q.Range, url.Values{"dn": {n.DNID}}),
		})
	}
	if len(notes) == 0 {
		data.EmptyMessage = emptyRangeMessage
	}

	if q.DNID != "" {
		if n, ok := snap.FindOutbound(q.DNID); ok {
			data.OutboundDetail = &OutboundDetail{
				DNID:      n.DNID,
				Customer:  n.CustomerName,
				OrderDate: n.DisplayOrderDate(),
				Status:    n.Status,
				Date:      n.DisplayActualDate(),
				Picks:     snap.PicksForDispatch(n.DNID),
				CloseURL:  detailURL("/tasker/outbound", q.Range, nil),
			}
		}
	}
	return data
}

func detailURL(path string, r dashboard.DateRange, extra url.Values) string {
	q := url.Values{}
	q.Set("start", r.StartInput())
	q.Set("end", r.EndInput())
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return path + "?" + q.Encode()
}
