package live

import "logidash/frontend/shared/html"

const (
	BoardInward   = "inward"
	BoardOutbound = "outbound"
)

var (
	InwardStages = []string{
		"Vehicle Arrived",
		"Vehicle Docked",
		"Unloading in Progress",
		"Unloading Completed",
		"Putaway Completed",
		"GRN Issued",
	}
	OutboundStages = []string{
		"Order Created",
		"Picklist Generated",
		"Picking In-Progress",
		"Picking Completed",
		"Loading In-Progress",
		"Dispatched",
	}
)

// Stage is one cell of the progress rail.
type Stage struct {
	Name   string
	Active bool
	// Linked lights the connector from the previous stage.
	Linked bool
}

type BoardRow struct {
	ID     string
	Sub    string
	Stages []Stage
}

type PageData struct {
	Layout       html.LayoutData
	Board        string
	Title        string
	IDHeader     string
	Start        string
	End          string
	Search       string
	Stages       []string
	Rows         []BoardRow
	EmptyMessage string
}
