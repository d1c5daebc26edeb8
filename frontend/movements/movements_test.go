package movements

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"logidash/infrastructure/config"
	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
	"logidash/infrastructure/sheets"
)

func rows(headers []string, records ...[]string) []sheetrow.Row {
	out := make([]sheetrow.Row, 0, len(records))
	for _, rec := range records {
		out = append(out, sheetrow.New(headers, rec))
	}
	return out
}

var testNow = time.Date(2026, 2, 7, 11, 0, 0, 0, time.Local)

func testSnapshot() *dashboard.Snapshot {
	tables := dashboard.Tables{
		config.TabInbound: rows(
			[]string{"GRN_ID", "Vehicle_Number", "Driver_Name", "Invoice_Number", "Customer", "Actual_Date", "Arrival_Time", "Sum_of_Pallet", "Sum_of_Box"},
			[]string{"G1", "KA01", "Ravi", "INV1", "Falcon Foods", "07/02/2026", "", "10", "1,000"},
			[]string{"", "KA02", "Som", "INV2", "Falcon Foods", "", "2026-02-07 09:00", "2.5", "50"},
			[]string{"G3", "KA03", "Old", "INV3", "Falcon Foods", "01/01/2026", "", "1", "1"},
			[]string{"G4", "KA04", "Bad", "INV4", "Falcon Foods", "someday", "", "1", "1"},
		),
		config.TabOutbound: rows(
			[]string{"DN_ID", "Customer", "Actual_Date", "Order_Date", "Status", "Sum_of_Dispatched_Pallet", "Sum_of_Dispatched_Boxes"},
			[]string{"DN-1", "CUS-0001 Falcon", "07/02/2026 14:00", "05/02/2026", "Dispatched", "2", "20"},
			[]string{"DN-2", "Falcon Retail", "07/02/2026", "06/02/2026", "Open", "1", "10"},
		),
		config.TabGRN: rows(
			[]string{"GRN_ID", "Vehicle_Number", "Customer_Name"},
			[]string{"G1", "KA01", "Falcon"},
			[]string{"G9", "KA01", "Falcon"},
		),
		config.TabPalletBuild: rows(
			[]string{"GRN_ID", "Pallet_ID", "SKU_ID", "SKU_Description", "Batch_Number", "Expiry_Date", "Quantity_Boxes", "Photos_URL", "Vehicle_Number"},
			[]string{"G1", "PB1", "SKU-A", "Apple", "B1", "01/03/2026", "40", "https://photos.example/pb1", ""},
			[]string{"G9", "PB2", "SKU-A", "Apple", "B2", "", "10", "N/A", ""},
			[]string{"G7", "PB3", "SKU-C", "Cherry", "", "", "5", "", "KA07"},
		),
		config.TabPickExecution: rows(
			[]string{"Pick_ID", "DN_ID", "SKU_ID", "SKU_Description", "Pick_Quantity", "Quantity_Picked"},
			[]string{"PK-DN-1-01", "DN-1", "SKU-A", "Apple", "10", "8"},
			[]string{"PK-DN-2-01", "DN-2", "SKU-B", "Berry", "5", "5"},
		),
	}
	return dashboard.Build(tables, dashboard.Options{
		Tenant: dashboard.Tenant{Name: "falcon", CustomerCode: "CUS-0001", ExpiryDays: 30},
		Now:    testNow,
	})
}

func TestBuildInboundPageStats(t *testing.T) {
	snap := testSnapshot()
	data := BuildInboundPage(snap, InboundQuery{Range: dashboard.ParseDateRange("", "", testNow)})

	if len(data.Inbound) != 2 {
		t.Fatalf("expected 2 entries today, got %d", len(data.Inbound))
	}
	want := []Stat{{"Vehicles Entered", "2"}, {"Total Pallets", "12.5"}, {"Total Boxes", "1050"}}
	for i, s := range want {
		if data.Stats[i] != s {
			t.Fatalf("stat %d: expected %+v, got %+v", i, s, data.Stats[i])
		}
	}
	if data.Inbound[1].Date != "2026-02-07" {
		t.Fatalf("expected arrival time date part, got %q", data.Inbound[1].Date)
	}
	if data.EmptyMessage != "" {
		t.Fatalf("unexpected empty message")
	}
	if !strings.Contains(data.Inbound[0].DetailURL, "grn=G1") || !strings.Contains(data.Inbound[0].DetailURL, "start=2026-02-07") {
		t.Fatalf("unexpected detail url %s", data.Inbound[0].DetailURL)
	}
}

func TestBuildInboundPageEmptyRange(t *testing.T) {
	snap := testSnapshot()
	data := BuildInboundPage(snap, InboundQuery{Range: dashboard.ParseDateRange("2025-01-01", "2025-01-31", testNow)})

	if data.EmptyMessage != "No entries found for this date range" {
		t.Fatalf("unexpected empty message %q", data.EmptyMessage)
	}
	if data.AllTimeCount != 6 {
		t.Fatalf("expected all-time count of tenant rows, got %d", data.AllTimeCount)
	}
}

func TestBuildInboundPageDrillDown(t *testing.T) {
	snap := testSnapshot()
	data := BuildInboundPage(snap, InboundQuery{Range: dashboard.ParseDateRange("", "", testNow), GRNID: "g1", Vehicle: "KA01"})

	d := data.InboundDetail
	if d == nil {
		t.Fatalf("expected drill-down")
	}
	if len(d.Pallets) != 2 || d.Pallets[0].PalletID != "PB1" || d.Pallets[1].PalletID != "PB2" {
		t.Fatalf("expected pallets from both GRNs of the vehicle, got %+v", d.Pallets)
	}

	pending := BuildInboundPage(snap, InboundQuery{Range: dashboard.ParseDateRange("", "", testNow), Vehicle: "KA02"})
	if pending.InboundDetail == nil || pending.InboundDetail.GRN != "PENDING" {
		t.Fatalf("expected PENDING GRN for vehicle without GRN")
	}
	if len(pending.InboundDetail.Pallets) != 0 {
		t.Fatalf("expected no pallets for KA02")
	}
}

func TestBuildOutboundPage(t *testing.T) {
	snap := testSnapshot()
	data := BuildOutboundPage(snap, OutboundQuery{Range: dashboard.ParseDateRange("2026-02-07", "2026-02-07", testNow), DNID: "DN-1"})

	if len(data.Outbound) != 1 || data.Outbound[0].DNID != "DN-1" {
		t.Fatalf("expected only the customer-code row, got %+v", data.Outbound)
	}
	if data.Stats[0] != (Stat{"Entries Processed", "1"}) || data.Stats[2] != (Stat{"Total Boxes", "20"}) {
		t.Fatalf("unexpected stats %+v", data.Stats)
	}
	if data.Outbound[0].ActualDate != "07/02/2026" {
		t.Fatalf("expected date part of actual date, got %q", data.Outbound[0].ActualDate)
	}
	if data.OutboundDetail == nil || len(data.OutboundDetail.Picks) != 1 {
		t.Fatalf("expected one pick for DN-1")
	}
}

func TestMovementsPageRendersDetail(t *testing.T) {
	snap := testSnapshot()
	data := BuildInboundPage(snap, InboundQuery{Range: dashboard.ParseDateRange("", "", testNow), GRNID: "G1", Vehicle: "KA01"})

	var buf bytes.Buffer
	if err := MovementsPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"PALLET BUILD DETAILS", "40 Boxes", "View Photo", "No Photo", "Vehicles Entered"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestOutboundHandlerEmptyDetail(t *testing.T) {
	store := sheets.NewStore()
	store.Replace(testSnapshot(), "")

	req := httptest.NewRequest(http.MethodGet, "/tasker/outbound?start=2026-02-07&end=2026-02-07&dn=DN-9", nil)
	rec := httptest.NewRecorder()
	OutboundPageQueryHandler(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "PICK EXECUTION DETAILS") {
		t.Fatalf("unknown DN must not open a drill-down")
	}
	if !strings.Contains(body, "DN-1") {
		t.Fatalf("expected DN-1 row in body")
	}
}
