package status

import (
	"encoding/json"
	"time"

	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheets"
	"logidash/models"
)

// BuildReport summarises the store for the debug panel.
func BuildReport(snap *dashboard.Snapshot, st sheets.State, runs []models.SyncRun) Report {
	rep := Report{
		Connection:    st.Connection(),
		Tenant:        snap.Tenant.Name,
		InboundCount:  len(snap.Inbound),
		OutboundCount: len(snap.Outbound),
		PalletCount:   len(snap.PalletBuilds),
		GRNCount:      len(snap.GRNs),
		PickCount:     len(snap.Picks),
		SyncedAt:      st.SyncedAt,
		PalletSample:  PalletSample(snap),
		Sources:       make([]SourceView, 0, len(snap.Sources)),
		Runs:          make([]RunView, 0, len(runs)),
	}
	for _, src := range snap.Sources {
		rep.Sources = append(rep.Sources, SourceView{
			Key:      src.Key,
			Sheet:    src.Sheet,
			Rows:     src.Rows,
			Err:      src.Err,
			Duration: src.Duration.Round(time.Millisecond).String(),
		})
	}
	for _, run := range runs {
		rep.Runs = append(rep.Runs, RunView{
			TriggeredBy:   run.TriggeredBy,
			StartedAt:     run.StartedAt,
			Duration:      run.Duration().Round(time.Millisecond).String(),
			SourcesOK:     run.SourcesOK,
			SourcesFailed: run.SourcesFailed,
			TotalRows:     run.TotalRows,
			ErrorText:     run.ErrorText,
		})
	}
	return rep
}

// PalletSample renders the first tenant pallet build as indented JSON, cut
// to a fixed length.
func PalletSample(snap *dashboard.Snapshot) string {
	if snap == nil || len(snap.PalletBuilds) == 0 {
		name := "Tenant"
		if snap != nil && snap.Tenant.Name != "" {
			name = snap.Tenant.Name
		}
		return "No " + name + " Pallets"
	}
	data, err := json.MarshalIndent(snap.PalletBuilds[0].Row.Map(), "", " ")
	if err != nil {
		return err.Error()
	}
	out := []rune(string(data))
	if len(out) > sampleLimit {
		out = out[:sampleLimit]
	}
	return string(out) + "..."
}
