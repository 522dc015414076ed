package classify

import (
	"math"
	"testing"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

func TestGenreFamilyOf(t *testing.T) {
	tests := []struct {
		tag  string
		want GenreFamily
	}{
		{"australian pop", GenrePop},
		{"Dance Pop", GenrePop}, // "pop" is checked before the EDM rule's "dance pop"
		{"permanent wave", GenrePop},
		{"pop rock fusion", GenrePop},
		{"boy band", GenrePop},
		{"alaska indie", GenreIndie},
		{"neo mellow", GenreIndie},
		{"escape room", GenreIndie},
		{"alternative r&b", GenreIndie}, // "alternative" hits before "r&b"
		{"british soul", GenreRnB},
		{"canadian contemporary r&b", GenreRnB},
		{"detroit hip hop", GenreHipHop},
		{"brostep", GenreHipHop},
		{"electronic trap", GenreHipHop},
		{"big room", GenreEDM},
		{"complextro", GenreEDM},
		{"tropical house", GenreEDM},
		{"downtempo", GenreEDM},
		{"celtic rock", GenreRock},
		{"canadian latin", GenreLatin},
		{"irish singer-songwriter", GenreCountry},
		{"contemporary country", GenreCountry},
		{"acid jazz", GenreJazz},
		{"funk", GenreJazz},
		{"hollywood", GenreOther},
		{"", GenreOther},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := GenreFamilyOf(tt.tag); got != tt.want {
				t.Errorf("GenreFamilyOf(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

// "permanent wave" appears in both the Pop and Rock keyword sets. Pop is
// evaluated first, so the Rock entry is unreachable for that keyword.
func TestGenreFamilyOrderIsPriority(t *testing.T) {
	if got := GenreFamilyOf("PERMANENT WAVE"); got != GenrePop {
		t.Errorf("permanent wave resolved to %q, want Pop", got)
	}
	if got := GenreFamilyOf("rock"); got != GenreRock {
		t.Errorf("plain rock resolved to %q, want Rock", got)
	}
}

func TestTextureOf(t *testing.T) {
	tests := []struct {
		acous float64
		want  Texture
	}{
		{100, TextureOrganic},
		{76, TextureOrganic},
		{75, TextureAmbient}, // strict >
		{56, TextureAmbient},
		{55, TextureHybrid},
		{36, TextureHybrid},
		{35, TexturePercussive},
		{21, TexturePercussive},
		{20, TextureSynthetic}, // strict >
		{0, TextureSynthetic},
		{math.NaN(), TextureSynthetic},
	}

	for _, tt := range tests {
		if got := TextureOf(tt.acous); got != tt.want {
			t.Errorf("TextureOf(%v) = %q, want %q", tt.acous, got, tt.want)
		}
	}
}

func TestDanceTierOf(t *testing.T) {
	tests := []struct {
		dnce float64
		want DanceTier
	}{
		{95, DanceGroovy},
		{81, DanceGroovy},
		{80, DanceSteady},
		{61, DanceSteady},
		{60, DanceStill},
		{0, DanceStill},
		{math.NaN(), DanceStill},
	}

	for _, tt := range tests {
		if got := DanceTierOf(tt.dnce); got != tt.want {
			t.Errorf("DanceTierOf(%v) = %q, want %q", tt.dnce, got, tt.want)
		}
	}
}

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		bpm  float64
		want Phase
	}{
		{180, PhaseHighIntensity},
		{151, PhaseHighIntensity},
		{150, PhasePeak},
		{126, PhasePeak},
		{125, PhaseTempoRiser},
		{101, PhaseTempoRiser},
		{100, PhaseWarmUp},
		{60, PhaseWarmUp},
		{math.NaN(), PhaseWarmUp},
	}

	for _, tt := range tests {
		if got := PhaseOf(tt.bpm); got != tt.want {
			t.Errorf("PhaseOf(%v) = %q, want %q", tt.bpm, got, tt.want)
		}
	}
}

func TestZoneOf(t *testing.T) {
	tests := []struct {
		bpm    float64
		want   string
		wantOK bool
	}{
		{0, "Zone 1", true},
		{115, "Zone 1", true},
		{115.5, "Zone 1", true},
		{116, "Zone 2", true},
		{135, "Zone 2", true},
		{136, "Zone 3", true},
		{140, "Zone 3", true},
		{150, "Zone 3", true},
		{151, "Zone 4", true},
		{165, "Zone 4", true},
		{166, "Zone 5", true},
		{400, "Zone 5", true},
		{-1, ZoneUncategorized, false},
		{math.NaN(), ZoneUncategorized, false},
	}

	for _, tt := range tests {
		got, ok := ZoneOf(tt.bpm)
		if got.Name != tt.want || ok != tt.wantOK {
			t.Errorf("ZoneOf(%v) = %q, %v; want %q, %v", tt.bpm, got.Name, ok, tt.want, tt.wantOK)
		}
	}
}

func TestZoneTitleAndIndex(t *testing.T) {
	if got := Zones[2].Title(); got != "Zone 3 (Tempo)" {
		t.Errorf("Title() = %q", got)
	}
	if got := ZoneIndex("Zone 4"); got != 3 {
		t.Errorf("ZoneIndex(Zone 4) = %d, want 3", got)
	}
	if got := ZoneIndex(ZoneUncategorized); got != len(Zones) {
		t.Errorf("ZoneIndex(Uncategorized) = %d, want %d", got, len(Zones))
	}
}

func TestMoodWeightsFormula(t *testing.T) {
	w := MoodWeightsOf(90, 85)

	for i, c := range MoodCenters {
		dv := 0.9 - c.Valence
		de := (85 - c.Energy) / 100
		want := math.Exp(-10 * math.Sqrt(dv*dv+de*de))
		if math.Abs(w[i]-want) > 1e-12 {
			t.Errorf("weight[%s] = %v, want %v", c.Mood, w[i], want)
		}
	}
}

func TestMoodPrimaryTieBreak(t *testing.T) {
	var w MoodWeights
	for i := range w {
		w[i] = 0.5
	}
	if got := w.Primary(); got != MoodEuphoric {
		t.Errorf("all-equal weights: Primary() = %q, want first declared mood", got)
	}

	w[2], w[4] = 0.9, 0.9
	if got := w.Primary(); got != MoodBalanced {
		t.Errorf("tie between Balanced and Reflective: Primary() = %q, want Balanced", got)
	}
}

func TestMoodWeightsNaN(t *testing.T) {
	w := MoodWeightsOf(math.NaN(), 50)

	if got := w.Primary(); got != MoodEuphoric {
		t.Errorf("NaN Primary() = %q, want %q", got, MoodEuphoric)
	}
	if !math.IsNaN(w.Max()) {
		t.Errorf("NaN Max() = %v, want NaN", w.Max())
	}
	if w.FuzzyMatch(MoodEuphoric, 0.2) {
		t.Error("NaN weights should never fuzzy-match")
	}
}

func TestMoodInfiniteEnergyMatchesNothing(t *testing.T) {
	s := song.Parse(song.Row{"title": "Loud", "bpm": "120", "nrgy": "Inf", "val": "60"})

	w := MoodWeightsOf(s.Valence, s.Energy)
	for _, m := range Moods {
		if w.FuzzyMatch(m, 0.2) {
			t.Errorf("FuzzyMatch(%s) = true for unparsable energy", m)
		}
	}
}

func TestMoodWeightUnknownLabel(t *testing.T) {
	w := MoodWeightsOf(50, 50)
	if got := w.Weight(Mood("Pop")); got != 0 {
		t.Errorf("Weight(Pop) = %v, want 0", got)
	}
	if w.FuzzyMatch(Mood("Pop"), 0.2) {
		t.Error("a non-mood label should not fuzzy-match")
	}
	if len(w.Map()) != len(MoodCenters) {
		t.Errorf("Map() has %d entries", len(w.Map()))
	}
}

func TestClassifyEndToEnd(t *testing.T) {
	s := song.Song{
		Title:        "Test Track",
		Genre:        "australian pop",
		BPM:          140,
		Energy:       85,
		Valence:      90,
		Acousticness: 10,
		Danceability: 88,
	}

	got := Classify(s)

	if got.Zone.Name != "Zone 3" {
		t.Errorf("Zone = %q, want Zone 3", got.Zone.Name)
	}
	if got.Phase != PhasePeak {
		t.Errorf("Phase = %q, want %q", got.Phase, PhasePeak)
	}
	if got.Texture != TextureSynthetic {
		t.Errorf("Texture = %q, want %q", got.Texture, TextureSynthetic)
	}
	if got.Dance != DanceGroovy {
		t.Errorf("Dance = %q, want %q", got.Dance, DanceGroovy)
	}
	if got.Genre != GenrePop {
		t.Errorf("Genre = %q, want %q", got.Genre, GenrePop)
	}

	// Euphoric sits 0.05 away, Energetic about 0.212 away.
	euphoric := math.Exp(-10 * 0.05)
	energetic := math.Exp(-10 * math.Hypot(0.15, 0.15))
	if math.Abs(got.MoodWeights.Weight(MoodEuphoric)-euphoric) > 1e-9 {
		t.Errorf("Euphoric weight = %v, want %v", got.MoodWeights.Weight(MoodEuphoric), euphoric)
	}
	if math.Abs(got.MoodWeights.Weight(MoodEnergetic)-energetic) > 1e-9 {
		t.Errorf("Energetic weight = %v, want %v", got.MoodWeights.Weight(MoodEnergetic), energetic)
	}
	if got.Mood != MoodEuphoric {
		t.Errorf("Mood = %q, want %q", got.Mood, MoodEuphoric)
	}
}

func TestClassifyMalformedSong(t *testing.T) {
	got := Classify(song.Parse(song.Row{"title": "x", "bpm": "??"}))

	if got.Zone.Name != ZoneUncategorized {
		t.Errorf("Zone = %q", got.Zone.Name)
	}
	if got.Phase != PhaseWarmUp || got.Texture != TextureSynthetic || got.Dance != DanceStill {
		t.Errorf("NaN song not in lowest tiers: %+v", got)
	}
	if got.Genre != GenreOther {
		t.Errorf("Genre = %q", got.Genre)
	}
}

func TestClassificationPath(t *testing.T) {
	c := Classification{
		Mood: MoodChill, Genre: GenreRock, Texture: TextureHybrid,
		Dance: DanceSteady, Phase: PhaseTempoRiser,
	}
	want := [NumStages]string{"Chill", "Rock", "Hybrid", "Steady", "Tempo Riser"}
	if got := c.Path(); got != want {
		t.Errorf("Path() = %v, want %v", got, want)
	}
	if got := c.Label(Stage(9)); got != "" {
		t.Errorf("Label(out of range) = %q", got)
	}
}

func TestLabelUniverse(t *testing.T) {
	if got := UniverseSize(); got != 28 {
		t.Fatalf("UniverseSize() = %d, want 28 (labels must be unique across stages)", got)
	}

	sizes := [NumStages]int{6, 10, 5, 3, 4}
	for st := StageMood; st < NumStages; st++ {
		labels := Labels(st)
		if len(labels) != sizes[st] {
			t.Errorf("stage %s has %d labels, want %d", st, len(labels), sizes[st])
		}
		for i, l := range labels {
			got, ok := StageOf(l)
			if !ok || got != st {
				t.Errorf("StageOf(%q) = %v, %v; want %v", l, got, ok, st)
			}
			if LabelOrder(l) != i {
				t.Errorf("LabelOrder(%q) = %d, want %d", l, LabelOrder(l), i)
			}
		}
	}

	if _, ok := StageOf("Zone 1"); ok {
		t.Error("zones are not flow labels")
	}
	if LabelOrder("nope") != -1 {
		t.Error("unknown label should have order -1")
	}
	if Labels(Stage(-1)) != nil {
		t.Error("Labels(out of range) should be nil")
	}
}

func TestWorkouts(t *testing.T) {
	got := WorkoutsFor(105)
	want := []string{"Yoga", "Pilates", "Walking", "Strength", "Elliptical", "Stepper", "Cycling"}
	if len(got) != len(want) {
		t.Fatalf("WorkoutsFor(105) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WorkoutsFor(105)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := WorkoutsFor(200); len(got) != 0 {
		t.Errorf("WorkoutsFor(200) = %v, want none", got)
	}

	hiit, ok := WorkoutByName("hiit")
	if !ok || hiit.Name != "HIIT" || !hiit.Contains(175) || hiit.Contains(119) {
		t.Errorf("WorkoutByName(hiit) = %+v, %v", hiit, ok)
	}
	if _, ok := WorkoutByName("Swimming"); ok {
		t.Error("unknown workout should not be found")
	}
}
