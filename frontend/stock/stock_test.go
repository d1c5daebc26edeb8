package stock

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"logidash/infrastructure/config"
	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
	"logidash/infrastructure/sheets"
)

var testNow = time.Date(2026, 2, 7, 10, 0, 0, 0, time.Local)

func testSnapshot() *dashboard.Snapshot {
	headers := []string{"Pallet_ID", "GRN_ID", "SKU_ID", "SKU_Description", "Location_ID", "Occupancy_Status", "Manufacturing_Date", "Expiry_Date", "Current_Qty", "Free_Qty"}
	records := [][]string{
		{"P1", "G1", "SKU-A", "Apple Juice", "A-01-1", "Occupied", "01/01/2026", "17/02/2026", "100", "60"},
		{"P2", "G1", "SKU-B", "Berry Mix", "A-01-2", "Occupied", "", "2026-12-31", "5", "5"},
		{"P3", "G2", "SKU-A", "Apple Juice", "A-02-1", "Occupied", "", "01/02/2026", "20", "20"},
		{"P4", "G3", "SKU-C", "Cherry", "", "Empty", "", "08/02/2026", "7", "7"},
		{"P5", "G3", "SKU-D", "", "B-01-1", "Occupied", "", "", "5", "0"},
	}
	rows := make([]sheetrow.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, sheetrow.New(headers, rec))
	}
	return dashboard.Build(dashboard.Tables{config.TabStock: rows}, dashboard.Options{
		Tenant: dashboard.Tenant{Name: "falcon", ExpiryDays: 30},
		Now:    testNow,
	})
}

func TestFilterStockSortsByQuantity(t *testing.T) {
	snap := testSnapshot()

	desc := FilterStock(snap, ParseQuery(url.Values{}))
	if len(desc) != 4 || desc[0].SKUID != "SKU-A" || desc[0].TotalQty.String() != "120" {
		t.Fatalf("unexpected desc order: %+v", desc)
	}
	// SKU-B and SKU-D tie at 5 and keep sheet order.
	if desc[2].SKUID != "SKU-B" || desc[3].SKUID != "SKU-D" {
		t.Fatalf("expected stable tie order, got %s %s", desc[2].SKUID, desc[3].SKUID)
	}

	asc := FilterStock(snap, ParseQuery(url.Values{"sort": {"ASC"}}))
	if asc[0].SKUID != "SKU-B" || asc[len(asc)-1].SKUID != "SKU-A" {
		t.Fatalf("unexpected asc order: %+v", asc)
	}
}

func TestFilterStockSearch(t *testing.T) {
	snap := testSnapshot()
	got := FilterStock(snap, Query{Search: "berry", Sort: SortDesc})
	if len(got) != 1 || got[0].SKUID != "SKU-B" {
		t.Fatalf("expected description search to find SKU-B, got %+v", got)
	}
	got = FilterStock(snap, Query{Search: "sku-d", Sort: SortDesc})
	if len(got) != 1 || got[0].Description != "N/A" {
		t.Fatalf("expected id search and N/A description, got %+v", got)
	}
}

func TestBuildStockPageStats(t *testing.T) {
	data := BuildStockPage(testSnapshot(), Query{Search: "apple", Sort: SortDesc})
	want := []Stat{{"Total SKUs", "1"}, {"Total Pallets Occupied", "4"}, {"Total Quantity", "120"}}
	for i, s := range want {
		if data.Stats[i] != s {
			t.Fatalf("stat %d: expected %+v, got %+v", i, s, data.Stats[i])
		}
	}
	if data.NextSort != SortAsc {
		t.Fatalf("expected toggle to asc")
	}
	if !strings.Contains(data.XLSXURL, "format=xlsx") || !strings.Contains(data.CSVURL, "q=apple") {
		t.Fatalf("unexpected export urls %s %s", data.CSVURL, data.XLSXURL)
	}
}

func TestDangerRows(t *testing.T) {
	rows := DangerRows(testSnapshot(), testNow)
	if len(rows) != 2 {
		t.Fatalf("expected P1 and P3 (occupied, expiring), got %+v", rows)
	}
	if rows[0].PalletID != "P1" || rows[0].DaysLeft != "10" {
		t.Fatalf("unexpected first danger row %+v", rows[0])
	}
	if rows[1].PalletID != "P3" || rows[1].DaysLeft != "-6" {
		t.Fatalf("expected expired pallet with negative days, got %+v", rows[1])
	}

	data := BuildDangerPage(testSnapshot(), testNow)
	if data.Stats[1].Value != "80" || data.Stats[2].Value != "< 30" {
		t.Fatalf("unexpected danger stats %+v", data.Stats)
	}
}

func TestDangerPageRenders(t *testing.T) {
	var buf bytes.Buffer
	if err := DangerPage(BuildDangerPage(testSnapshot(), testNow)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "10 Days") || !strings.Contains(buf.String(), "Pick Sheet PDF") {
		t.Fatalf("unexpected danger page output")
	}
}

func TestStockHandlerEscapesSearch(t *testing.T) {
	store := sheets.NewStore()
	store.Replace(testSnapshot(), "")

	req := httptest.NewRequest(http.MethodGet, "/tasker/stock?q=%3Cscript%3E", nil)
	rec := httptest.NewRecorder()
	StockPageQueryHandler(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="&lt;script&gt;"`) {
		t.Fatalf("search term must be escaped")
	}
	if !strings.Contains(rec.Body.String(), "No stock matches the current search.") {
		t.Fatalf("expected empty search message")
	}
}
