package exports

import (
	"logidash/frontend/shared/html"
	"logidash/models"
)

// Export types recorded in export_runs.
const (
	TypeStock     = "stock"
	TypeDanger    = "danger_stock"
	TypeWarehouse = "warehouse"
	TypePickSheet = "danger_pick_sheet"

	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Table is one export before it is encoded.
type Table struct {
	Type     string
	Sheet    string
	Filename string
	Headers  []string
	Rows     [][]string
}

type Link struct {
	Label string
	Href  string
}

type PageData struct {
	Layout html.LayoutData
	Links  []Link
	Recent []models.ExportRun
}
