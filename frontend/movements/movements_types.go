package movements

import (
	"logidash/frontend/shared/html"
	"logidash/infrastructure/dashboard"
)

const (
	KindInbound  = "inbound"
	KindOutbound = "outbound"

	emptyRangeMessage = "No entries found for this date range"
)

// Stat is one summary card.
type Stat struct {
	Title string
	Value string
}

type InboundRow struct {
	Date      string
	GRNID     string
	Vehicle   string
	Driver    string
	Invoice   string
	Pallets   string
	Boxes     string
	DetailURL string
}

type OutboundRow struct {
	ActualDate string
	OrderDate  string
	Customer   string
	DNID       string
	Status     string
	Pallets    string
	Boxes      string
	DetailURL  string
}

// InboundDetail is the pallet build drill-down for one vehicle.
type InboundDetail struct {
	Vehicle  string
	GRN      string
	Driver   string
	Invoice  string
	Date     string
	Pallets  []dashboard.PalletBuild
	CloseURL string
}

// OutboundDetail is the pick execution drill-down for one DN.
type OutboundDetail struct {
	DNID      string
	Customer  string
	OrderDate string
	Status    string
	Date      string
	Picks     []dashboard.PickExecution
	CloseURL  string
}

type PageData struct {
	Layout         html.LayoutData
	Kind           string
	Start          string
	End            string
	Stats          []Stat
	Inbound        []InboundRow
	Outbound       []OutboundRow
	EmptyMessage   string
	AllTimeCount   int
	InboundDetail  *InboundDetail
	OutboundDetail *OutboundDetail
}
