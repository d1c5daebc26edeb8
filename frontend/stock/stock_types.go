package stock

import (
	"github.com/shopspring/decimal"

	"logidash/frontend/shared/html"
	"logidash/infrastructure/dashboard"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Query is the search and sort state of the stock tab.
type Query struct {
	Search string
	Sort   string
}

type Stat struct {
	Title string
	Value string
}

// DangerRow is one expiring pallet as shown and exported.
type DangerRow struct {
	PalletID    string
	GRNID       string
	SKUID       string
	Description string
	MfgDate     string
	ExpiryDate  string
	DaysLeft    string
	FreeQty     decimal.Decimal
	Location    string
}

type StockPageData struct {
	Layout     html.LayoutData
	Search     string
	Sort       string
	NextSort   string
	Stats      []Stat
	Rows       []dashboard.StockSKU
	CSVURL     string
	XLSXURL    string
	TotalQty   decimal.Decimal
	Unfiltered int
}

type DangerPageData struct {
	Layout     html.LayoutData
	ExpiryDays int
	Stats      []Stat
	Rows       []DangerRow
	TotalFree  decimal.Decimal
	CSVURL     string
	XLSXURL    string
	PDFURL     string
}
