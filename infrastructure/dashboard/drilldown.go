package dashboard

import (
	"strings"

	"logidash/infrastructure/sheetrow"
)

// FindInbound returns the tenant inbound entry with the given GRN id, or by
// vehicle number when grnID is blank.
func (s *Snapshot) FindInbound(grnID, vehicle string) (VehicleEntry, bool) {
	if s == nil {
		return VehicleEntry{}, false
	}
	grnID = sheetrow.NormID(grnID)
	vehicle = sheetrow.NormID(vehicle)
	for _, v := range s.Inbound {
		if grnID != "" && sheetrow.NormID(v.GRNID) == grnID {
			return v, true
		}
	}
	if vehicle == "" {
		return VehicleEntry{}, false
	}
	for _, v := range s.Inbound {
		if sheetrow.NormID(v.VehicleNumber) == vehicle {
			return v, true
		}
	}
	return VehicleEntry{}, false
}

// FindOutbound returns the tenant dispatch note with the given DN id.
func (s *Snapshot) FindOutbound(dnID string) (DispatchNote, bool) {
	if s == nil {
		return DispatchNote{}, false
	}
	dnID = sheetrow.NormID(dnID)
	if dnID == "" {
		return DispatchNote{}, false
	}
	for _, n := range s.Outbound {
		if sheetrow.NormID(n.DNID) == dnID {
			return n, true
		}
	}
	return DispatchNote{}, false
}

// PalletsForVehicle returns the pallet builds unloaded from a vehicle: same
// vehicle number, or a GRN that is the entry's own GRN or any GRN recorded
// against that vehicle.
func (s *Snapshot) PalletsForVehicle(v VehicleEntry) []PalletBuild {
	out := make([]PalletBuild, 0)
	if s == nil {
		return out
	}
	vehicle := sheetrow.NormID(v.VehicleNumber)
	grns := map[string]struct{}{sheetrow.NormID(v.GRNID): {}}
	for _, g := range s.GRNs {
		if vehicle != "" && sheetrow.NormID(g.VehicleNumber) == vehicle {
			grns[sheetrow.NormID(g.GRNID)] = struct{}{}
		}
	}
	for _, p := range s.PalletBuilds {
		pv := sheetrow.NormID(p.VehicleNumber)
		if pv != "" && pv == vehicle {
			out = append(out, p)
			continue
		}
		if g := sheetrow.NormID(p.GRNID); g != "" {
			if _, ok := grns[g]; ok {
				out = append(out, p)
			}
		}
	}
	return out
}

// PicksForDispatch returns pick executions whose pick id embeds the DN id.
func (s *Snapshot) PicksForDispatch(dnID string) []PickExecution {
	out := make([]PickExecution, 0)
	dnID = sheetrow.NormID(dnID)
	if s == nil || dnID == "" {
		return out
	}
	for _, p := range s.Picks {
		if id := sheetrow.NormID(p.PickID); id != "" && strings.Contains(id, dnID) {
			out = append(out, p)
		}
	}
	return out
}

// GRNByID joins on the trimmed GRN id, as the live board does.
func (s *Snapshot) GRNByID(id string) (GRN, bool) {
	if s == nil {
		return GRN{}, false
	}
	id = strings.TrimSpace(id)
	for _, g := range s.GRNs {
		if strings.TrimSpace(g.GRNID) == id {
			return g, true
		}
	}
	return GRN{}, false
}
