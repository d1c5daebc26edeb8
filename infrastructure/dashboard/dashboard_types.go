package dashboard

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"logidash/infrastructure/sheetrow"
)

// Tables holds the rows of every fetched tab keyed by tab name (see config.Tab*).
type Tables map[string][]sheetrow.Row

// Tenant selects whose rows the dashboard shows.
type Tenant struct {
	Name         string
	CustomerCode string
	ExpiryDays   int
}

// Matches reports whether a customer cell belongs to the tenant by name.
func (t Tenant) Matches(customer string) bool {
	name := strings.ToLower(strings.TrimSpace(t.Name))
	if name == "" || customer == "" {
		return false
	}
	return strings.Contains(strings.ToLower(customer), name)
}

// MatchesOutbound also accepts the tenant customer code (case-sensitive).
func (t Tenant) MatchesOutbound(customer string) bool {
	if t.Matches(customer) {
		return true
	}
	return t.CustomerCode != "" && strings.Contains(customer, t.CustomerCode)
}

type Options struct {
	Tenant Tenant
	Now    time.Time
}

// SourceStatus describes how one tab fared in the last poll.
type SourceStatus struct {
	Key      string
	Sheet    string
	Rows     int
	Err      string
	Duration time.Duration
}

func (s SourceStatus) OK() bool {
	return s.Err == ""
}

// VehicleEntry is one inbound vehicle row.
type VehicleEntry struct {
	GRNID         string
	ArrivalTime   string
	VehicleNumber string
	DriverName    string
	InvoiceNumber string
	CustomerName  string
	ActualDate    string
	Pallets       decimal.Decimal
	Boxes         decimal.Decimal
	Row           sheetrow.Row
}

// DateSource is the cell used for date filtering.
func (v VehicleEntry) DateSource() string {
	return firstNonEmpty(v.ActualDate, v.ArrivalTime)
}

// DisplayDate is the date part of the entry's date cell, or N/A.
func (v VehicleEntry) DisplayDate() string {
	return datePart(v.DateSource())
}

// DispatchNote is one outbound DN row.
type DispatchNote struct {
	DNID         string
	ActualDate   string
	OrderDate    string
	Status       string
	CustomerName string
	Pallets      decimal.Decimal
	Boxes        decimal.Decimal
	Row          sheetrow.Row
}

func (d DispatchNote) DisplayActualDate() string {
	return datePart(d.ActualDate)
}

func (d DispatchNote) DisplayOrderDate() string {
	return datePart(d.OrderDate)
}

// StockSKU aggregates current quantity across all pallets of one SKU.
type StockSKU struct {
	SKUID       string
	Description string
	TotalQty    decimal.Decimal
}

// StockPallet is one row of the pallet status sheet.
type StockPallet struct {
	PalletID        string
	GRNID           string
	SKUID           string
	Description     string
	LocationID      string
	OccupancyStatus string
	BatchNumber     string
	MfgDate         string
	ExpiryDate      string
	CurrentQty      decimal.Decimal
	FreeQty         decimal.Decimal
	Row             sheetrow.Row
}

func (p StockPallet) Occupied() bool {
	return strings.Contains(strings.ToLower(p.OccupancyStatus), "occupied")
}

// Location is one slot in the warehouse layout sheet.
type Location struct {
	Code  string
	Aisle string
	Bay   string
	Level string
	Depth string
	Row   sheetrow.Row
}

type GRN struct {
	GRNID         string
	VehicleNumber string
	CustomerName  string
	ArrivalTime   string
	DateRaw       string
	Row           sheetrow.Row
}

type PalletBuild struct {
	GRNID         string
	PalletID      string
	SKUID         string
	Description   string
	BatchNumber   string
	ExpiryDate    string
	QuantityBoxes string
	PhotosURL     string
	VehicleNumber string
	Row           sheetrow.Row
}

// HasPhoto is false for blank and N/A photo cells.
func (p PalletBuild) HasPhoto() bool {
	u := strings.TrimSpace(p.PhotosURL)
	return u != "" && u != "N/A"
}

type PickExecution struct {
	PickID         string
	PickQuantity   string
	SKUID          string
	Description    string
	BatchNumber    string
	ExpiryDate     string
	QuantityPicked string
	PickedBy       string
	IsLastPallet   string
	IsSent         string
	DNID           string
	Row            sheetrow.Row
}

// Snapshot is the immutable result of one poll cycle.
type Snapshot struct {
	SyncedAt time.Time
	Tenant   Tenant
	Sources  []SourceStatus

	Inbound      []VehicleEntry
	Outbound     []DispatchNote
	AllTimeCount int

	Stock           []StockSKU
	StockPallets    []StockPallet
	Occupancy       map[string][]StockPallet
	OccupiedPallets int
	Danger          []StockPallet

	Locations    []Location
	GRNs         []GRN
	PalletBuilds []PalletBuild
	Picks        []PickExecution

	LiveInward   []sheetrow.Row
	LiveOutbound []sheetrow.Row
}

// Source returns the status of the tab with the given key.
func (s *Snapshot) Source(key string) (SourceStatus, bool) {
	if s == nil {
		return SourceStatus{}, false
	}
	for _, src := range s.Sources {
		if src.Key == key {
			return src, true
		}
	}
	return SourceStatus{}, false
}

// FailedSources lists tabs that degraded to empty in the last poll.
func (s *Snapshot) FailedSources() []SourceStatus {
	if s == nil {
		return nil
	}
	out := make([]SourceStatus, 0)
	for _, src := range s.Sources {
		if !src.OK() {
			out = append(out, src)
		}
	}
	return out
}

// PalletsAt returns the stock pallets stored at a location code.
func (s *Snapshot) PalletsAt(code string) []StockPallet {
	if s == nil {
		return nil
	}
	return s.Occupancy[sheetrow.NormID(code)]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func datePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/A"
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
