package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/song"
)

func TestFilterEmptyPath(t *testing.T) {
	songs := []song.Song{euphoricPop("a", 85)}

	got, err := Filter(songs, nil)

	assert.ErrorIs(t, err, ErrNothingSelected)
	assert.Nil(t, got)
}

func TestFilterPathTooLong(t *testing.T) {
	_, err := Filter(nil, []string{"Euphoric", "Pop", "Synthetic", "Groovy", "Peak Zone", "extra"})
	assert.ErrorIs(t, err, ErrPathTooLong)
}

func TestFilterEuphoricPop(t *testing.T) {
	songs := []song.Song{
		euphoricPop("low", 70),
		chillFolk("folk"),
		euphoricPop("high", 95),
		euphoricPop("mid", 85),
		{Title: "rock", Genre: "celtic rock", BPM: 140, Energy: 99, Valence: 90},
	}

	got, err := Filter(songs, []string{"Euphoric", "Pop"})
	require.NoError(t, err)

	titles := make([]string, len(got))
	for i, s := range got {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"high", "mid", "low"}, titles)

	for _, s := range got {
		c := classify.Classify(s)
		assert.Equal(t, classify.GenrePop, c.Genre)
		assert.True(t, c.MoodWeights.FuzzyMatch(classify.MoodEuphoric, MoodMatchFraction))
	}
}

func TestFilterFuzzyMood(t *testing.T) {
	// Primary mood is Euphoric, but Energetic carries well over 20% of the top weight.
	s := song.Song{Title: "x", Genre: "pop", BPM: 120, Energy: 78, Valence: 85}
	c := classify.Classify(s)
	require.Equal(t, classify.MoodEuphoric, c.Mood)
	require.GreaterOrEqual(t, c.MoodWeights.Weight(classify.MoodEnergetic), 0.2*c.MoodWeights.Max())

	got, err := Filter([]song.Song{s}, []string{"Energetic"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Moody is far away in valence.
	got, err = Filter([]song.Song{s}, []string{"Moody"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilterExactStages(t *testing.T) {
	songs := []song.Song{euphoricPop("a", 85), chillFolk("b")}

	got, err := Filter(songs, []string{"Chill", "Country / Folk", "Organic", "Still", "Warm-Up & Recovery"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Title)

	got, err = Filter(songs, []string{"Chill", "Country / Folk", "Organic", "Groovy"})
	require.NoError(t, err)
	assert.Empty(t, got, "selection matching zero songs is a valid empty result")
}

func TestFilterStableOnEqualEnergy(t *testing.T) {
	songs := []song.Song{euphoricPop("first", 85), euphoricPop("second", 85), euphoricPop("third", 85)}

	got, err := Filter(songs, []string{"Euphoric"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestFilterMisplacedLabelMatchesNothing(t *testing.T) {
	got, err := Filter([]song.Song{euphoricPop("a", 85)}, []string{"Pop"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
