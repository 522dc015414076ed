package classify

// Texture buckets acousticness.
type Texture string

const (
	TextureOrganic    Texture = "Organic"
	TextureAmbient    Texture = "Ambient"
	TextureHybrid     Texture = "Hybrid"
	TexturePercussive Texture = "Percussive"
	TextureSynthetic  Texture = "Synthetic"
)

// Textures lists every texture in declared order.
var Textures = []Texture{
	TextureOrganic, TextureAmbient, TextureHybrid, TexturePercussive, TextureSynthetic,
}

// TextureOf buckets acousticness (0-100). Thresholds are strict, so 75 is
// Ambient and 20 is Synthetic.
func TextureOf(acousticness float64) Texture {
	a := acousticness / 100
	switch {
	case a > 0.75:
		return TextureOrganic
	case a > 0.55:
		return TextureAmbient
	case a > 0.35:
		return TextureHybrid
	case a > 0.2:
		return TexturePercussive
	default:
		return TextureSynthetic
	}
}

// DanceTier buckets danceability.
type DanceTier string

const (
	DanceGroovy DanceTier = "Groovy"
	DanceSteady DanceTier = "Steady"
	DanceStill  DanceTier = "Still"
)

// DanceTiers lists every tier in declared order.
var DanceTiers = []DanceTier{DanceGroovy, DanceSteady, DanceStill}

// DanceTierOf buckets danceability (0-100).
func DanceTierOf(danceability float64) DanceTier {
	switch {
	case danceability > 80:
		return DanceGroovy
	case danceability > 60:
		return DanceSteady
	default:
		return DanceStill
	}
}

// Phase is the part of a workout a tempo suits.
type Phase string

const (
	PhaseHighIntensity Phase = "High Intensity"
	PhasePeak          Phase = "Peak Zone"
	PhaseTempoRiser    Phase = "Tempo Riser"
	PhaseWarmUp        Phase = "Warm-Up & Recovery"
)

// Phases lists every phase in declared order.
var Phases = []Phase{PhaseHighIntensity, PhasePeak, PhaseTempoRiser, PhaseWarmUp}

// PhaseOf buckets tempo.
func PhaseOf(bpm float64) Phase {
	switch {
	case bpm > 150:
		return PhaseHighIntensity
	case bpm > 125:
		return PhasePeak
	case bpm > 100:
		return PhaseTempoRiser
	default:
		return PhaseWarmUp
	}
}
