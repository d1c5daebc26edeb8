package blueprint

import (
	"logidash/frontend/shared/html"
	"logidash/infrastructure/dashboard"
)

// Blueprint is the warehouse layout grouped aisle > bay > level.
type Blueprint struct {
	Aisles []Aisle
}

type Aisle struct {
	Name     string
	Bays     []Bay
	Total    int
	Occupied int
	Empty    int
	SKUs     []SKUTotal
}

// SKUTotal sums current quantity of one SKU across an aisle.
type SKUTotal struct {
	SKUID       string
	Description string
	TotalQty    int64
}

type Bay struct {
	Name string
	// Levels are in ascending order; see TopDown for display.
	Levels []Level
}

type Level struct {
	Name      string
	Locations []Slot
}

// Slot is one location and the pallets stored there.
type Slot struct {
	Code    string
	Depth   string
	Level   string
	Pallets []dashboard.StockPallet
}

func (s Slot) Occupied() bool {
	return len(s.Pallets) > 0
}

// Density buckets the pallet count for shading, capped at 5.
func (s Slot) Density() int {
	if len(s.Pallets) > 5 {
		return 5
	}
	return len(s.Pallets)
}

// TopDown returns the levels with the highest first.
func (b Bay) TopDown() []Level {
	out := make([]Level, len(b.Levels))
	for i, l := range b.Levels {
		out[len(b.Levels)-1-i] = l
	}
	return out
}

type PageData struct {
	Layout   html.LayoutData
	Plan     Blueprint
	Selected *Slot
	Empty    bool
}
