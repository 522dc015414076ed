package classify

import (
	"encoding/json"
	"math"
)

// ZoneUncategorized is returned for tempos outside every zone.
const ZoneUncategorized = "Uncategorized"

// Zone is a heart-rate style training bracket derived from tempo.
type Zone struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Min   float64 `json:"min"` // inclusive
	Max   float64 `json:"-"`   // exclusive, +Inf for the open top zone
}

// MarshalJSON encodes the open upper bound as null.
func (z Zone) MarshalJSON() ([]byte, error) {
	var upper *float64
	if z.Name != ZoneUncategorized && !math.IsInf(z.Max, 1) {
		upper = &z.Max
	}
	return json.Marshal(struct {
		Name  string   `json:"name"`
		Label string   `json:"label,omitempty"`
		Min   float64  `json:"min"`
		Max   *float64 `json:"max"`
	}{z.Name, z.Label, z.Min, upper})
}

// Zones are contiguous and ordered from slowest to fastest.
var Zones = []Zone{
	{Name: "Zone 1", Label: "Recovery", Min: 0, Max: 116},
	{Name: "Zone 2", Label: "Endurance", Min: 116, Max: 136},
	{Name: "Zone 3", Label: "Tempo", Min: 136, Max: 151},
	{Name: "Zone 4", Label: "Threshold", Min: 151, Max: 166},
	{Name: "Zone 5", Label: "Sprint", Min: 166, Max: math.Inf(1)},
}

// Title returns the display form, e.g. "Zone 3 (Tempo)".
func (z Zone) Title() string {
	if z.Label == "" {
		return z.Name
	}
	return z.Name + " (" + z.Label + ")"
}

// ZoneOf returns the zone containing bpm. ok is false for negative or NaN tempos.
func ZoneOf(bpm float64) (Zone, bool) {
	for _, z := range Zones {
		if bpm >= z.Min && bpm < z.Max {
			return z, true
		}
	}
	return Zone{Name: ZoneUncategorized}, false
}

// ZoneIndex returns the position of the named zone, or len(Zones) if unknown.
func ZoneIndex(name string) int {
	for i, z := range Zones {
		if z.Name == name {
			return i
		}
	}
	return len(Zones)
}
