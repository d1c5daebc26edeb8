package status

import (
	"context"
	"time"

	"logidash/frontend/shared/html"
	"logidash/infrastructure/dashboard"
)

const sampleLimit = 120

// Refresher triggers an immediate poll.
type Refresher interface {
	RefreshNow(ctx context.Context) *dashboard.Snapshot
}

type SourceView struct {
	Key      string `json:"key"`
	Sheet    string `json:"sheet"`
	Rows     int    `json:"rows"`
	Err      string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

type RunView struct {
	TriggeredBy   string    `json:"triggered_by"`
	StartedAt     time.Time `json:"started_at"`
	Duration      string    `json:"duration"`
	SourcesOK     int       `json:"sources_ok"`
	SourcesFailed int       `json:"sources_failed"`
	TotalRows     int       `json:"total_rows"`
	ErrorText     string    `json:"error,omitempty"`
}

// Report is the debug panel content, shared by the page and the JSON endpoint.
type Report struct {
	Connection    string       `json:"connection"`
	Tenant        string       `json:"tenant"`
	InboundCount  int          `json:"inbound"`
	OutboundCount int          `json:"outbound"`
	PalletCount   int          `json:"pallets"`
	GRNCount      int          `json:"grns"`
	PickCount     int          `json:"picks"`
	SyncedAt      time.Time    `json:"synced_at"`
	PalletSample  string       `json:"pallet_sample"`
	Sources       []SourceView `json:"sources"`
	Runs          []RunView    `json:"recent_runs"`
}

type PageData struct {
	Layout  html.LayoutData
	Report  Report
	IsAdmin bool
}
