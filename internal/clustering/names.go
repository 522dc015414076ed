package clustering

import (
	"fmt"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/song"
)

var moodDescriptions = map[classify.Mood]string{
	classify.MoodEuphoric:   "Bright, high-energy tracks for the hardest pushes",
	classify.MoodEnergetic:  "Driving and positive, good for sustained effort",
	classify.MoodBalanced:   "Even-keeled tracks for steady work",
	classify.MoodChill:      "Relaxed and easy, suited to warm-ups and cool-downs",
	classify.MoodReflective: "Low-key and introspective, for stretching and recovery",
	classify.MoodMoody:      "Dark, tense energy for grinding through sets",
}

// newCluster names a cluster after the mood and texture its centroid
// classifies as.
func newCluster(c Centroid, members []song.Song) Cluster {
	mood := classify.MoodWeightsOf(c.Valence, c.Energy).Primary()
	texture := classify.TextureOf(c.Acousticness)
	return Cluster{
		Name:        fmt.Sprintf("%s %s", mood, texture),
		Mood:        mood,
		Texture:     texture,
		Description: moodDescriptions[mood],
		Centroid:    c,
		Songs:       members,
	}
}

// disambiguate numbers clusters that ended up with the same name,
// e.g. "Chill Organic" and "Chill Organic 2".
func disambiguate(cs []Cluster) {
	seen := make(map[string]int)
	for i := range cs {
		seen[cs[i].Name]++
		if n := seen[cs[i].Name]; n > 1 {
			cs[i].Name = fmt.Sprintf("%s %d", cs[i].Name, n)
		}
	}
}
