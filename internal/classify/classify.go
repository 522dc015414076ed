// Package classify maps a song's raw attributes to the categorical labels used
// across the workout explorer: mood, genre family, texture, danceability tier,
// workout phase and BPM zone.
//
// Every function here is pure and total. NaN inputs fail each threshold test
// and land in the lowest tier; unmatched genre tags fall back to GenreOther.
package classify

import "github.com/justestif/go-workout-music-explorer/internal/song"

// Classification is the full set of labels for one song.
type Classification struct {
	Mood        Mood        `json:"mood"`
	MoodWeights MoodWeights `json:"-"`
	Genre       GenreFamily `json:"genre"`
	Texture     Texture     `json:"texture"`
	Dance       DanceTier   `json:"dance"`
	Phase       Phase       `json:"phase"`
	Zone        Zone        `json:"zone"`
}

// Classify labels a song.
func Classify(s song.Song) Classification {
	weights := MoodWeightsOf(s.Valence, s.Energy)
	zone, _ := ZoneOf(s.BPM)
	return Classification{
		Mood:        weights.Primary(),
		MoodWeights: weights,
		Genre:       GenreFamilyOf(s.Genre),
		Texture:     TextureOf(s.Acousticness),
		Dance:       DanceTierOf(s.Danceability),
		Phase:       PhaseOf(s.BPM),
		Zone:        zone,
	}
}

// Label returns the classification's label at a flow stage.
func (c Classification) Label(stage Stage) string {
	switch stage {
	case StageMood:
		return string(c.Mood)
	case StageGenre:
		return string(c.Genre)
	case StageTexture:
		return string(c.Texture)
	case StageDance:
		return string(c.Dance)
	case StagePhase:
		return string(c.Phase)
	}
	return ""
}

// Path returns the five flow labels in stage order.
func (c Classification) Path() [NumStages]string {
	var p [NumStages]string
	for st := StageMood; st < NumStages; st++ {
		p[st] = c.Label(st)
	}
	return p
}
