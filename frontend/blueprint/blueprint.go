package blueprint

import (
	"sort"
	"strings"

	"logidash/infrastructure/dashboard"
	"logidash/infrastructure/sheetrow"
)

// CompareKeys orders layout keys numerically when both start with a number
// and as plain strings otherwise.
func CompareKeys(a, b string) int {
	na, okA := sheetrow.LeadingNumber(a)
	nb, okB := sheetrow.LeadingNumber(b)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

func sortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool { return CompareKeys(keys[i], keys[j]) < 0 })
}

// Build groups snapshot locations and joins pallets by normalized code.
func Build(snap *dashboard.Snapshot) Blueprint {
	if snap == nil {
		return Blueprint{}
	}

	tree := make(map[string]map[string]map[string][]Slot)
	for _, loc := range snap.Locations {
		bays, ok := tree[loc.Aisle]
		if !ok {
			bays = make(map[string]map[string][]Slot)
			tree[loc.Aisle] = bays
		}
		levels, ok := bays[loc.Bay]
		if !ok {
			levels = make(map[string][]Slot)
			bays[loc.Bay] = levels
		}
		levels[loc.Level] = append(levels[loc.Level], Slot{
			Code:    loc.Code,
			Depth:   loc.Depth,
			Level:   loc.Level,
			Pallets: snap.PalletsAt(loc.Code),
		})
	}

	var plan Blueprint
	for _, aisleName := range keysOf(tree) {
		aisle := Aisle{Name: aisleName}
		skuIndex := make(map[string]int)
		bays := tree[aisleName]
		for _, bayName := range keysOf(bays) {
			bay := Bay{Name: bayName}
			levels := bays[bayName]
			for _, levelName := range keysOf(levels) {
				slots := levels[levelName]
				bay.Levels = append(bay.Levels, Level{Name: levelName, Locations: slots})
				for _, slot := range slots {
					aisle.Total++
					if !slot.Occupied() {
						continue
					}
					aisle.Occupied++
					for _, p := range slot.Pallets {
						id := p.Row.ValueContains("sku_id")
						if id == "" {
							id = "Unknown"
						}
						i, seen := skuIndex[id]
						if !seen {
							desc := p.Row.ValueContains("sku_description")
							if desc == "" {
								desc = id
							}
							i = len(aisle.SKUs)
							skuIndex[id] = i
							aisle.SKUs = append(aisle.SKUs, SKUTotal{SKUID: id, Description: desc})
						}
						aisle.SKUs[i].TotalQty += sheetrow.ParseCount(p.Row.ValueContains("current_qty"))
					}
				}
			}
			aisle.Bays = append(aisle.Bays, bay)
		}
		aisle.Empty = aisle.Total - aisle.Occupied
		plan.Aisles = append(plan.Aisles, aisle)
	}
	return plan
}

// Find returns the slot with the given code.
func (b Blueprint) Find(code string) (Slot, bool) {
	code = sheetrow.NormID(code)
	if code == "" {
		return Slot{}, false
	}
	for _, a := range b.Aisles {
		for _, bay := range a.Bays {
			for _, l := range bay.Levels {
				for _, s := range l.Locations {
					if sheetrow.NormID(s.Code) == code {
						return s, true
					}
				}
			}
		}
	}
	return Slot{}, false
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sortKeys(keys)
	return keys
}
