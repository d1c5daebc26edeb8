package live

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"logidash/infrastructure/config"
	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
)

func rows(headers []string, records ...[]string) []sheetrow.Row {
	out := make([]sheetrow.Row, 0, len(records))
	for _, rec := range records {
		out = append(out, sheetrow.New(headers, rec))
	}
	return out
}

var testNow = time.Date(2026, 2, 7, 9, 0, 0, 0, time.Local)

func testSnapshot() *dashboard.Snapshot {
	tables := dashboard.Tables{
		config.TabOutbound: rows(
			[]string{"DN_ID", "Customer", "Actual_Date", "Order_Date"},
			[]string{"DN-1", "CUS-0001 Falcon", "", "7/2/2026"},
			[]string{"DN-2", "Falcon", "01/01/2026", "07/02/2026"},
			[]string{"DN-3", "Falcon", "07/02/2026", "05/02/2026"},
		),
		config.TabGRN: rows(
			[]string{"GRN_ID", "Vehicle_Number", "Customer_Name", "Date", "Arrival_Time"},
			[]string{"G1", "KA01", "Falcon", "7/2/26", "09:15"},
			[]string{"G2", "KA02", "Falcon", "", ""},
			[]string{"G3", "KA03", "Falcon", "2026-02-07", ""},
		),
		config.TabLiveInward: rows(
			[]string{"GRN_ID", "Vehicle Arrived", "Vehicle Docked", "Unloading in Progress", "Unloading Completed", "Putaway Completed", "GRN Issued"},
			[]string{" G1 ", "TRUE", "true", "FALSE", "x", "1", "0"},
			[]string{"G2", "TRUE", "", "", "", "", ""},
			[]string{"G3", "n/a", "-", "unchecked", "", "0", "false"},
			[]string{"G4", "TRUE", "", "", "", "", ""},
		),
		config.TabLiveOutbound: rows(
			[]string{"DN_ID", "Order Created", "Picklist Generated", "Picking In-Progress", "Picking Completed", "Loading In-Progress", "Dispatched"},
			[]string{"DN-1", "TRUE", "TRUE", "", "", "", ""},
			[]string{"DN-2", "TRUE", "", "", "", "", ""},
			[]string{"DN-3", "TRUE", "TRUE", "", "", "", ""},
			[]string{"DN-9", "TRUE", "", "", "", "", ""},
		),
	}
	return dashboard.Build(tables, dashboard.Options{
		Tenant: dashboard.Tenant{Name: "falcon", CustomerCode: "CUS-0001"},
		Now:    testNow,
	})
}

func TestStageActive(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"  ", false},
		{"FALSE", false},
		{"N/A", false},
		{"Unchecked", false},
		{"-", false},
		{"0", false},
		{"TRUE", true},
		{"x", true},
		{"2026-02-07", true},
	}
	for _, tc := range cases {
		if got := StageActive(tc.in); got != tc.want {
			t.Fatalf("StageActive(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBuildInwardBoard(t *testing.T) {
	snap := testSnapshot()
	data := BuildInwardBoard(snap, dashboard.ParseDateRange("", "", testNow), "")

	if len(data.Rows) != 2 {
		t.Fatalf("expected G1 and G3, got %+v", data.Rows)
	}
	g1 := data.Rows[0]
	if g1.Sub != "09:15" {
		t.Fatalf("expected arrival time, got %q", g1.Sub)
	}
	wantActive := []bool{true, true, false, true, true, false}
	wantLinked := []bool{false, true, false, false, true, false}
	for i, st := range g1.Stages {
		if st.Active != wantActive[i] || st.Linked != wantLinked[i] {
			t.Fatalf("stage %s: got active=%v linked=%v", st.Name, st.Active, st.Linked)
		}
	}
	if data.Rows[1].Sub != "--" {
		t.Fatalf("expected -- for missing arrival, got %q", data.Rows[1].Sub)
	}
	for _, st := range data.Rows[1].Stages {
		if st.Active {
			t.Fatalf("expected all G3 stages inactive, %s was active", st.Name)
		}
	}
}

func TestBuildInwardBoardSearchAndEmpty(t *testing.T) {
	snap := testSnapshot()
	data := BuildInwardBoard(snap, dashboard.ParseDateRange("", "", testNow), "09:1")
	if len(data.Rows) != 1 || strings.TrimSpace(data.Rows[0].ID) != "G1" {
		t.Fatalf("expected search on arrival time to keep G1, got %+v", data.Rows)
	}

	empty := BuildInwardBoard(snap, dashboard.ParseDateRange("2025-01-01", "2025-01-02", testNow), "")
	if empty.EmptyMessage != "No inward records for selected date range" {
		t.Fatalf("unexpected empty message %q", empty.EmptyMessage)
	}
}

func TestBuildOutboundBoard(t *testing.T) {
	snap := testSnapshot()
	data := BuildOutboundBoard(snap, dashboard.ParseDateRange("", "", testNow), "")

	if len(data.Rows) != 1 || data.Rows[0].ID != "DN-3" {
		t.Fatalf("expected only DN-3 (dispatched today), got %+v", data.Rows)
	}
	if data.Rows[0].Sub != "05/02/2026" {
		t.Fatalf("expected order date, got %q", data.Rows[0].Sub)
	}
	if !data.Rows[0].Stages[1].Linked || data.Rows[0].Stages[2].Linked {
		t.Fatalf("unexpected connectors %+v", data.Rows[0].Stages)
	}

	none := BuildOutboundBoard(snap, dashboard.ParseDateRange("", "", testNow), "dn-5")
	if none.EmptyMessage != "No outbound records for selected date range" {
		t.Fatalf("expected empty message, got %q", none.EmptyMessage)
	}
}

func TestBuildOutboundBoardSkipsUndispatchedNotes(t *testing.T) {
	snap := testSnapshot()

	// DN-1 has no actual date, so its order date alone never places it on the board.
	wide := BuildOutboundBoard(snap, dashboard.ParseDateRange("2025-12-01", "2026-03-01", testNow), "")
	var ids []string
	for _, row := range wide.Rows {
		ids = append(ids, row.ID)
	}
	if strings.Join(ids, ",") != "DN-2,DN-3" {
		t.Fatalf("expected DN-2,DN-3, got %v", ids)
	}

	jan := BuildOutboundBoard(snap, dashboard.ParseDateRange("2026-01-01", "2026-01-01", testNow), "")
	if len(jan.Rows) != 1 || jan.Rows[0].ID != "DN-2" || jan.Rows[0].Sub != "07/02/2026" {
		t.Fatalf("expected only DN-2 on its dispatch day, got %+v", jan.Rows)
	}
}

func TestStagesReadExactColumns(t *testing.T) {
	row := sheetrow.New(
		[]string{"GRN_ID", "Vehicle", "Vehicle Docked", "Docked"},
		[]string{"G1", "KA01", "", "TRUE"},
	)
	stages := stagesFor(row, InwardStages)
	if stages[0].Active {
		t.Fatalf("a Vehicle column must not light Vehicle Arrived")
	}
	if stages[1].Active {
		t.Fatalf("a Docked column must not light Vehicle Docked")
	}

	snap := &dashboard.Snapshot{LiveInward: []sheetrow.Row{
		sheetrow.New([]string{"GRN", "Vehicle Arrived"}, []string{"G1", "TRUE"}),
	}}
	data := BuildInwardBoard(snap, dashboard.ParseDateRange("", "", testNow), "")
	if len(data.Rows) != 0 {
		t.Fatalf("expected rows without a GRN_ID column to be skipped, got %+v", data.Rows)
	}
}

func TestBoardPageRendersEmptyRow(t *testing.T) {
	data := BuildOutboundBoard(nil, dashboard.ParseDateRange("", "", testNow), "")
	var buf bytes.Buffer
	if err := BoardPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "OUTBOUND STATUS SYSTEM") || !strings.Contains(out, "No outbound records for selected date range") {
		t.Fatalf("unexpected output: %s", out)
	}
}
