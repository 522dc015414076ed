package classify

import "strings"

// WorkoutType is an activity with the tempo range that suits it.
type WorkoutType struct {
	Name   string  `json:"name"`
	MinBPM float64 `json:"min_bpm"` // inclusive
	MaxBPM float64 `json:"max_bpm"` // inclusive
}

// Contains reports whether bpm lies in the workout's range.
func (w WorkoutType) Contains(bpm float64) bool {
	return bpm >= w.MinBPM && bpm <= w.MaxBPM
}

// WorkoutTypes are listed from gentlest to hardest. Ranges overlap.
var WorkoutTypes = []WorkoutType{
	{"Yoga", 60, 105},
	{"Pilates", 70, 110},
	{"Walking", 70, 115},
	{"Strength", 90, 130},
	{"Elliptical", 90, 140},
	{"Stepper", 100, 140},
	{"Cycling", 100, 150},
	{"Dance", 110, 160},
	{"Running", 115, 175},
	{"HIIT", 120, 175},
}

// WorkoutsFor returns every workout type whose range contains bpm.
func WorkoutsFor(bpm float64) []string {
	var names []string
	for _, w := range WorkoutTypes {
		if w.Contains(bpm) {
			names = append(names, w.Name)
		}
	}
	return names
}

// WorkoutByName looks up a workout type case-insensitively.
func WorkoutByName(name string) (WorkoutType, bool) {
	for _, w := range WorkoutTypes {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return WorkoutType{}, false
}
