package stock

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
)

// ParseQuery reads q and sort from the request; unknown sorts mean desc.
func ParseQuery(v url.Values) Query {
	q := Query{Search: strings.TrimSpace(v.Get("q")), Sort: SortDesc}
	if strings.EqualFold(v.Get("sort"), SortAsc) {
		q.Sort = SortAsc
	}
	return q
}

// Values encodes q back into query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	v.Set("sort", q.Sort)
	return v
}

// FilterStock applies the case-insensitive SKU search and the quantity sort.
// Ties keep sheet order.
func FilterStock(snap *dashboard.Snapshot, q Query) []dashboard.StockSKU {
	out := make([]dashboard.StockSKU, 0)
	if snap == nil {
		return out
	}
	needle := strings.ToLower(q.Search)
	for _, s := range snap.Stock {
		if needle != "" &&
			!strings.Contains(strings.ToLower(s.SKUID), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.Sort == SortAsc {
			return out[i].TotalQty.LessThan(out[j].TotalQty)
		}
		return out[i].TotalQty.GreaterThan(out[j].TotalQty)
	})
	return out
}

// BuildStockPage summarizes the filtered SKU list.
func BuildStockPage(snap *dashboard.Snapshot, q Query) StockPageData {
	rows := FilterStock(snap, q)
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalQty)
	}
	occupied, all := 0, 0
	if snap != nil {
		occupied, all = snap.OccupiedPallets, len(snap.Stock)
	}

	next := SortAsc
	if q.Sort == SortAsc {
		next = SortDesc
	}
	csv := q.Values()
	xlsx := q.Values()
	xlsx.Set("format", "xlsx")

	return StockPageData{
		Search:   q.Search,
		Sort:     q.Sort,
		NextSort: next,
		Stats: []Stat{
			{Title: "Total SKUs", Value: strconv.Itoa(len(rows))},
			{Title: "Total Pallets Occupied", Value: strconv.Itoa(occupied)},
			{Title: "Total Quantity", Value: sheetrow.FormatQty(total)},
		},
		Rows:       rows,
		TotalQty:   total,
		Unfiltered: all,
		CSVURL:     "/tasker/exports/stock?" + csv.Encode(),
		XLSXURL:    "/tasker/exports/stock?" + xlsx.Encode(),
	}
}

// DangerRows lists occupied pallets expiring within the tenant window.
func DangerRows(snap *dashboard.Snapshot, now time.Time) []DangerRow {
	out := make([]DangerRow, 0)
	if snap == nil {
		return out
	}
	for _, p := range snap.Danger {
		days := "N/A"
		if n, ok := sheetrow.DaysRemaining(p.ExpiryDate, now); ok {
			days = strconv.Itoa(n)
		}
		out = append(out, DangerRow{
			PalletID:    p.PalletID,
			GRNID:       p.GRNID,
			SKUID:       p.SKUID,
			Description: p.Description,
			MfgDate:     p.MfgDate,
			ExpiryDate:  p.ExpiryDate,
			DaysLeft:    days,
			FreeQty:     p.FreeQty,
			Location:    p.LocationID,
		})
	}
	return out
}

func BuildDangerPage(snap *dashboard.Snapshot, now time.Time) DangerPageData {
	rows := DangerRows(snap, now)
	free := decimal.Zero
	for _, r := range rows {
		free = free.Add(r.FreeQty)
	}
	window := 30
	if snap != nil && snap.Tenant.ExpiryDays > 0 {
		window = snap.Tenant.ExpiryDays
	}
	return DangerPageData{
		ExpiryDays: window,
		Stats: []Stat{
			{Title: "Danger Pallets", Value: strconv.Itoa(len(rows))},
			{Title: "Expiring Soon (Free Qty)", Value: sheetrow.FormatQty(free)},
			{Title: "Avg Days Remaining", Value: fmt.Sprintf("< %d", window)},
		},
		Rows:      rows,
		TotalFree: free,
		CSVURL:    "/tasker/exports/danger",
		XLSXURL:   "/tasker/exports/danger?format=xlsx",
		PDFURL:    "/tasker/exports/danger/picksheet.pdf",
	}
}
