package classify

import "math"

// Mood is a point-of-feel label in valence/energy space.
type Mood string

// Moods in declared order. Ties in weight resolve to the earlier mood.
const (
	MoodEuphoric   Mood = "Euphoric"
	MoodEnergetic  Mood = "Energetic"
	MoodBalanced   Mood = "Balanced"
	MoodChill      Mood = "Chill"
	MoodReflective Mood = "Reflective"
	MoodMoody      Mood = "Moody"
)

// moodDecay is the exponential falloff applied to center distance.
const moodDecay = 10.0

// MoodCenter is the reference point of a mood.
type MoodCenter struct {
	Mood    Mood
	Valence float64 // 0-1
	Energy  float64 // 0-100
}

// MoodCenters holds the fixed centers in declared order.
var MoodCenters = [...]MoodCenter{
	{MoodEuphoric, 0.9, 80},
	{MoodEnergetic, 0.75, 70},
	{MoodBalanced, 0.55, 65},
	{MoodChill, 0.45, 50},
	{MoodReflective, 0.35, 45},
	{MoodMoody, 0.2, 60},
}

// Moods lists every mood in declared order.
var Moods = func() []Mood {
	moods := make([]Mood, len(MoodCenters))
	for i, c := range MoodCenters {
		moods[i] = c.Mood
	}
	return moods
}()

// MoodWeights is the fuzzy membership of a song in each mood, indexed like
// MoodCenters. Weights are not normalized.
type MoodWeights [len(MoodCenters)]float64

// MoodWeightsOf computes exp(-10*d) for the distance d between the song's
// (valence/100, energy) and each center, with energy distances scaled to 0-1.
func MoodWeightsOf(valence, energy float64) MoodWeights {
	v := valence / 100
	var w MoodWeights
	for i, c := range MoodCenters {
		dv := v - c.Valence
		de := (energy - c.Energy) / 100
		w[i] = math.Exp(-math.Sqrt(dv*dv+de*de) * moodDecay)
	}
	return w
}

// Primary returns the mood with the highest weight. The first mood in declared
// order wins ties, and when every weight is NaN.
func (w MoodWeights) Primary() Mood {
	best := 0
	for i := 1; i < len(w); i++ {
		if w[i] > w[best] {
			best = i
		}
	}
	return MoodCenters[best].Mood
}

// Max returns the largest weight, ignoring NaN. It is NaN only when every weight is.
func (w MoodWeights) Max() float64 {
	top := math.NaN()
	for _, x := range w {
		if math.IsNaN(top) || x > top {
			top = x
		}
	}
	return top
}

// Weight returns the weight for m, or 0 for a label that is not a mood.
func (w MoodWeights) Weight(m Mood) float64 {
	for i, c := range MoodCenters {
		if c.Mood == m {
			return w[i]
		}
	}
	return 0
}

// Map returns the weights keyed by mood name.
func (w MoodWeights) Map() map[Mood]float64 {
	m := make(map[Mood]float64, len(w))
	for i, c := range MoodCenters {
		m[c.Mood] = w[i]
	}
	return m
}

// FuzzyMatch reports whether m carries at least frac of the song's own
// strongest weight. NaN weights never match.
func (w MoodWeights) FuzzyMatch(m Mood, frac float64) bool {
	return w.Weight(m) >= w.Max()*frac
}
