package blueprint

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

func table(headers []string, records ...[]string) []sheetrow.Row {
	out := make([]sheetrow.Row, 0, len(records))
	for _, rec := range records {
		out = append(out, sheetrow.New(headers, rec))
	}
	return out
}

func testSnapshot() *dashboard.Snapshot {
	return dashboard.Build(dashboard.Tables{
		config.TabLocations: table(
			[]string{"Location_Code", "Aisle", "Bay", "Level", "Depth"},
			[]string{"B-10-1", "B", "10", "1", ""},
			[]string{"B-2-1", "B", "2", "1", ""},
			[]string{"B-2-2", "B", "2", "2", ""},
			[]string{"A-1-1", "A", "1", "1", "1"},
			[]string{"", "A", "1", "3", ""},
			[]string{"X-1", "", "", "", ""},
		),
		config.TabStock: table(
			[]string{"Pallet_ID", "SKU_ID", "SKU_Description", "Location_ID", "Occupancy_Status", "Current_Qty"},
			[]string{"P1", "SKU-A", "Apple", " b-2-1 ", "Occupied", "10"},
			[]string{"P2", "SKU-A", "Apple", "B-2-1", "Occupied", "5.9"},
			[]string{"P3", "", "", "B-10-1", "Occupied", "3"},
		),
	}, dashboard.Options{Tenant: dashboard.Tenant{Name: "falcon"}, Now: time.Date(2026, 2, 7, 0, 0, 0, 0, time.Local)})
}

func TestCompareKeys(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"1.5", "1.50", 0},
		{"A", "B", -1},
		{"2", "A", -1},
		{"Unassigned", "A", 1},
	}
	for _, tc := range cases {
		if got := CompareKeys(tc.a, tc.b); got != tc.want {
			t.Fatalf("CompareKeys(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestBuildGroupsAndSorts(t *testing.T) {
	plan := Build(testSnapshot())

	var names []string
	for _, a := range plan.Aisles {
		names = append(names, a.Name)
	}
	if strings.Join(names, ",") != "A,B,Unassigned" {
		t.Fatalf("unexpected aisle order %v", names)
	}

	b := plan.Aisles[1]
	if len(b.Bays) != 2 || b.Bays[0].Name != "2" || b.Bays[1].Name != "10" {
		t.Fatalf("expected numeric bay order 2,10; got %+v", b.Bays)
	}
	if b.Total != 3 || b.Occupied != 2 || b.Empty != 1 {
		t.Fatalf("unexpected aisle counts %+v", b)
	}
	if len(b.SKUs) != 2 || b.SKUs[0].SKUID != "SKU-A" || b.SKUs[0].TotalQty != 15 {
		t.Fatalf("unexpected SKU totals %+v", b.SKUs)
	}
	if b.SKUs[1].SKUID != "Unknown" || b.SKUs[1].Description != "Unknown" {
		t.Fatalf("expected Unknown SKU fallback, got %+v", b.SKUs[1])
	}

	top := b.Bays[0].TopDown()
	if top[0].Name != "2" || top[1].Name != "1" {
		t.Fatalf("expected levels top-down, got %+v", top)
	}

	un := plan.Aisles[2]
	if un.Bays[0].Name != "0" || un.Bays[0].Levels[0].Name != "0" {
		t.Fatalf("expected bay/level defaults of 0, got %+v", un.Bays)
	}
}

func TestBuildSKUTotalsNeedFullColumnNames(t *testing.T) {
	snap := dashboard.Build(dashboard.Tables{
		config.TabLocations: table(
			[]string{"Location_Code", "Aisle", "Bay", "Level"},
			[]string{"A-1-1", "A", "1", "1"},
		),
		config.TabStock: table(
			[]string{"Pallet_ID", "SKU", "Location_ID", "Occupancy_Status", "Qty"},
			[]string{"P1", "SKU-A", "A-1-1", "Occupied", "4"},
		),
	}, dashboard.Options{Tenant: dashboard.Tenant{Name: "falcon"}, Now: time.Date(2026, 2, 7, 0, 0, 0, 0, time.Local)})

	plan := Build(snap)
	if len(plan.Aisles) != 1 || plan.Aisles[0].Occupied != 1 {
		t.Fatalf("expected one occupied slot, got %+v", plan.Aisles)
	}
	skus := plan.Aisles[0].SKUs
	if len(skus) != 1 || skus[0].SKUID != "Unknown" || skus[0].TotalQty != 0 {
		t.Fatalf("short SKU and Qty columns should not feed the totals, got %+v", skus)
	}
}

func TestFindSlot(t *testing.T) {
	plan := Build(testSnapshot())
	slot, ok := plan.Find("b-2-1")
	if !ok || len(slot.Pallets) != 2 || slot.Density() != 2 {
		t.Fatalf("expected 2 pallets at B-2-1, got %+v", slot)
	}
	if _, ok := plan.Find(""); ok {
		t.Fatalf("blank code must not match")
	}
}

func TestBlueprintPageRendersSelection(t *testing.T) {
	store := sheets.NewStore()
	store.Replace(testSnapshot(), "")

	req := httptest.NewRequest(http.MethodGet, "/tasker/blueprint?loc=B-2-1", nil)
	rec := httptest.NewRecorder()
	BlueprintPageQueryHandler(store).ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{"AISLE Unassigned", "P1", "P2", "Occupied 2"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body", want)
		}
	}
}

func TestBlueprintPageEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := BlueprintPage(PageData{Empty: true}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No warehouse locations loaded.") {
		t.Fatalf("expected empty message")
	}
}
