package dashboard

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"logidash/infrastructure/config"
	"logidash/infrastructure/sheetrow"
)

// Build reshapes the raw tabs of one poll into a Snapshot.
func Build(tables Tables, opts Options) *Snapshot {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	tenant := opts.Tenant
	if tenant.ExpiryDays <= 0 {
		tenant.ExpiryDays = 30
	}

	snap := &Snapshot{
		SyncedAt:  now,
		Tenant:    tenant,
		Occupancy: make(map[string][]StockPallet),
	}

	buildStock(snap, tables[config.TabStock], now)

	for _, row := range tables[config.TabInbound] {
		if tenant.Matches(row.Value("customer")) {
			snap.Inbound = append(snap.Inbound, newVehicleEntry(row))
		}
	}
	for _, row := range tables[config.TabOutbound] {
		if tenant.MatchesOutbound(row.Value("customer")) {
			snap.Outbound = append(snap.Outbound, newDispatchNote(row))
		}
	}
	snap.AllTimeCount = len(snap.Inbound) + len(snap.Outbound)

	for _, row := range tables[config.TabLocations] {
		if loc, ok := newLocation(row); ok {
			snap.Locations = append(snap.Locations, loc)
		}
	}

	inboundGRNs := make(map[string]struct{})
	for _, v := range snap.Inbound {
		if id := sheetrow.NormID(v.Row.Value("grn_id")); validGRNID(id) {
			inboundGRNs[id] = struct{}{}
		}
	}

	targetGRNs := make(map[string]struct{}, len(inboundGRNs))
	for id := range inboundGRNs {
		targetGRNs[id] = struct{}{}
	}
	for _, row := range tables[config.TabGRN] {
		customer := row.First("customer_name", "customer")
		id := sheetrow.NormID(row.Value("grn_id"))
		_, linked := inboundGRNs[id]
		if tenant.Matches(customer) || (id != "" && linked) {
			g := newGRN(row)
			snap.GRNs = append(snap.GRNs, g)
			if nid := sheetrow.NormID(g.GRNID); nid != "" {
				targetGRNs[nid] = struct{}{}
			}
		}
	}

	linkedPallets := 0
	for _, row := range tables[config.TabPalletBuild] {
		p := newPalletBuild(row)
		if _, ok := targetGRNs[sheetrow.NormID(p.GRNID)]; ok {
			linkedPallets++
		}
		snap.PalletBuilds = append(snap.PalletBuilds, p)
	}
	if len(snap.PalletBuilds) > 0 && linkedPallets == 0 {
		slog.Warn("pallet builds present but none linked to tenant GRNs",
			slog.String("tenant", tenant.Name),
			slog.String("sample_grn", snap.PalletBuilds[0].GRNID))
	}

	for _, row := range tables[config.TabPickExecution] {
		snap.Picks = append(snap.Picks, newPickExecution(row))
	}

	snap.LiveInward = tables[config.TabLiveInward]
	snap.LiveOutbound = tables[config.TabLiveOutbound]
	return snap
}

func buildStock(snap *Snapshot, rows []sheetrow.Row, now time.Time) {
	index := make(map[string]int)
	limit := sheetrow.StartOfDay(now).AddDate(0, 0, snap.Tenant.ExpiryDays)

	for _, row := range rows {
		p := newStockPallet(row)
		snap.StockPallets = append(snap.StockPallets, p)

		if p.SKUID != "" {
			i, ok := index[p.SKUID]
			if !ok {
				desc := p.Description
				if desc == "" {
					desc = "N/A"
				}
				i = len(snap.Stock)
				index[p.SKUID] = i
				snap.Stock = append(snap.Stock, StockSKU{SKUID: p.SKUID, Description: desc})
			}
			snap.Stock[i].TotalQty = snap.Stock[i].TotalQty.Add(p.CurrentQty)
		}

		if p.LocationID != "" {
			key := sheetrow.NormID(p.LocationID)
			snap.Occupancy[key] = append(snap.Occupancy[key], p)
		}

		if !p.Occupied() {
			continue
		}
		snap.OccupiedPallets++
		if exp, ok := sheetrow.ParseSheetDate(p.ExpiryDate); ok && !exp.After(limit) {
			snap.Danger = append(snap.Danger, p)
		}
	}
}

func validGRNID(id string) bool {
	return id != "" && id != "N/A" && id != "-"
}

func newVehicleEntry(row sheetrow.Row) VehicleEntry {
	return VehicleEntry{
		GRNID:         row.Value("grn_id"),
		ArrivalTime:   row.Value("arrival_time"),
		VehicleNumber: row.Value("vehicle_number"),
		DriverName:    row.Value("driver_name"),
		InvoiceNumber: row.Value("invoice_number"),
		CustomerName:  row.Value("customer"),
		ActualDate:    row.Value("actual_date"),
		Pallets:       sheetrow.ParseQty(row.Value("sum_of_pallet")),
		Boxes:         sheetrow.ParseQty(row.Value("sum_of_box")),
		Row:           row,
	}
}

func newDispatchNote(row sheetrow.Row) DispatchNote {
	return DispatchNote{
		DNID:         row.Value("dn_id"),
		ActualDate:   row.Value("actual_date"),
		OrderDate:    row.Value("order_date"),
		Status:       row.Value("status"),
		CustomerName: row.Value("customer"),
		Pallets:      sheetrow.ParseQty(row.Value("sum_of_dispatched_pallet")),
		Boxes:        sheetrow.ParseQty(row.Value("sum_of_dispatched_boxes")),
		Row:          row,
	}
}

func newStockPallet(row sheetrow.Row) StockPallet {
	return StockPallet{
		PalletID:        row.Value("pallet_id"),
		GRNID:           row.Value("grn_id"),
		SKUID:           row.Value("sku_id"),
		Description:     row.Value("sku_description"),
		LocationID:      row.Value("location_id"),
		OccupancyStatus: row.Value("occupancy_status"),
		BatchNumber:     row.Value("batch_number"),
		MfgDate:         row.Value("manufacturing_date"),
		ExpiryDate:      row.Value("expiry_date"),
		CurrentQty:      sheetrow.ParseQty(row.Value("current_qty")),
		FreeQty:         sheetrow.ParseQty(row.Value("free_qty")),
		Row:             row,
	}
}

func newLocation(row sheetrow.Row) (Location, bool) {
	code := row.ValueContains("location_code")
	if code == "" {
		return Location{}, false
	}
	return Location{
		Code:  code,
		Aisle: orDefault(row.ValueContains("aisle"), "Unassigned"),
		Bay:   orDefault(row.ValueContains("bay"), "0"),
		Level: orDefault(row.ValueContains("level"), "0"),
		Depth: orDefault(row.ValueContains("depth"), "0"),
		Row:   row,
	}, true
}

func newGRN(row sheetrow.Row) GRN {
	return GRN{
		GRNID:         row.Value("grn_id"),
		VehicleNumber: row.Value("vehicle_number"),
		CustomerName:  row.First("customer_name", "customer"),
		ArrivalTime:   row.Value("arrival_time"),
		DateRaw:       firstNonEmpty(row.Get("Date"), row.Value("arrival_date"), row.Value("arrival_time")),
		Row:           row,
	}
}

func newPalletBuild(row sheetrow.Row) PalletBuild {
	return PalletBuild{
		GRNID:         row.First("grn_id", "grn"),
		PalletID:      row.First("pallet_id", "pallet"),
		SKUID:         row.First("sku_id", "sku"),
		Description:   row.First("sku_description", "description"),
		BatchNumber:   row.First("batch_number", "batch"),
		ExpiryDate:    row.First("expiry_date", "expiry"),
		QuantityBoxes: row.First("quantity_boxes", "qty"),
		PhotosURL:     row.First("photos_url", "url"),
		VehicleNumber: row.First("vehicle_number", "vehicle"),
		Row:           row,
	}
}

func newPickExecution(row sheetrow.Row) PickExecution {
	return PickExecution{
		PickID:         row.Value("pick_id"),
		PickQuantity:   row.Value("pick_quantity"),
		SKUID:          row.Value("sku_id"),
		Description:    row.Value("sku_description"),
		BatchNumber:    row.Value("batch_number"),
		ExpiryDate:     row.Value("expiry_date"),
		QuantityPicked: row.Value("quantity_picked"),
		PickedBy:       row.Value("picked_by"),
		IsLastPallet:   row.Value("is_this_last_pallet_for_pick_execution"),
		IsSent:         row.Value("is_pick_execution_sent"),
		DNID:           row.Value("dn_id"),
		Row:            row,
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// SumPallets totals the pallet column of the given vehicle entries.
func SumPallets(entries []VehicleEntry) (pallets, boxes decimal.Decimal) {
	for _, e := range entries {
		pallets = pallets.Add(e.Pallets)
		boxes = boxes.Add(e.Boxes)
	}
	return pallets, boxes
}

// SumDispatched totals dispatched pallets and boxes.
func SumDispatched(notes []DispatchNote) (pallets, boxes decimal.Decimal) {
	for _, n := range notes {
		pallets = pallets.Add(n.Pallets)
		boxes = boxes.Add(n.Boxes)
	}
	return pallets, boxes
}
