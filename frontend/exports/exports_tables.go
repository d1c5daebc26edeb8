package exports

import (
	"time"

	"logidash/frontend/blueprint"
	"logidash/frontend/stock"
	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
)

func filename(prefix string, now time.Time) string {
	return prefix + now.Format("2006-01-02")
}

// StockTable follows the stock tab's search and sort.
func StockTable(snap *dashboard.Snapshot, q stock.Query, now time.Time) Table {
	t := Table{
		Type:     TypeStock,
		Sheet:    "Stock",
		Filename: filename("stock_export_", now),
		Headers:  []string{"SKU ID", "Description", "Total Current Qty"},
	}
	for _, s := range stock.FilterStock(snap, q) {
		t.Rows = append(t.Rows, []string{s.SKUID, s.Description, sheetrow.FormatQty(s.TotalQty)})
	}
	return t
}

// DangerTable lists expiring pallets. Unknown days remaining export blank.
func DangerTable(snap *dashboard.Snapshot, now time.Time) Table {
	t := Table{
		Type:     TypeDanger,
		Sheet:    "Danger Stock",
		Filename: filename("danger_stock_", now),
		Headers:  []string{"Pallet ID", "GRN ID", "SKU ID", "Description", "Expiry Date", "Days Remaining", "Free Qty", "Location"},
	}
	for _, r := range stock.DangerRows(snap, now) {
		days := r.DaysLeft
		if days == "N/A" {
			days = ""
		}
		t.Rows = append(t.Rows, []string{
			r.PalletID, r.GRNID, r.SKUID, r.Description, r.ExpiryDate, days, sheetrow.FormatQty(r.FreeQty), r.Location,
		})
	}
	return t
}

// WarehouseTable has one row per stored pallet and an Empty row for each
// vacant location, in blueprint order with levels ascending.
func WarehouseTable(snap *dashboard.Snapshot, now time.Time) Table {
	t := Table{
		Type:     TypeWarehouse,
		Sheet:    "Warehouse",
		Filename: filename("warehouse_export_", now),
		Headers:  []string{"Aisle", "Bay", "Level", "Location Code", "Status", "SKU ID", "Description", "Quantity", "Pallet ID"},
	}
	for _, aisle := range blueprint.Build(snap).Aisles {
		for _, bay := range aisle.Bays {
			for _, level := range bay.Levels {
				for _, slot := range level.Locations {
					if !slot.Occupied() {
						t.Rows = append(t.Rows, []string{aisle.Name, bay.Name, level.Name, slot.Code, "Empty", "", "", "", ""})
						continue
					}
					for _, p := range slot.Pallets {
						t.Rows = append(t.Rows, []string{
							aisle.Name, bay.Name, level.Name, slot.Code, "Occupied",
							p.Row.ValueContains("sku_id"), p.Row.ValueContains("sku_description"),
							sheetrow.FormatQty(sheetrow.ParseQty(p.Row.ValueContains("current_qty"))), p.Row.ValueContains("pallet_id"),
						})
					}
				}
			}
		}
	}
	return t
}
