package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

func testGraph() Graph {
	return Build([]song.Song{euphoricPop("a", 85), chillFolk("b")})
}

func TestSelectionClick(t *testing.T) {
	g := testGraph()
	var sel Selection

	sel.Click(g, "Euphoric")
	assert.Equal(t, []string{"Euphoric"}, sel.Path)

	sel.Click(g, "Pop")
	assert.Equal(t, []string{"Euphoric", "Pop"}, sel.Path)

	// Not downstream of Pop: restart.
	sel.Click(g, "Organic")
	assert.Equal(t, []string{"Organic"}, sel.Path)

	sel.Click(g, "Still")
	sel.Click(g, "Warm-Up & Recovery")
	assert.Equal(t, []string{"Organic", "Still", "Warm-Up & Recovery"}, sel.Path)

	last, ok := sel.Last()
	assert.True(t, ok)
	assert.Equal(t, "Warm-Up & Recovery", last)

	sel.Reset()
	assert.True(t, sel.Empty())
	_, ok = sel.Last()
	assert.False(t, ok)
}

func TestSelectionChoose(t *testing.T) {
	tests := []struct {
		name  string
		start []string
		label string
		want  []string
	}{
		{"empty starts path", nil, "Rock", []string{"Rock"}},
		{"mood always restarts", []string{"Chill", "Pop"}, "Euphoric", []string{"Euphoric"}},
		{"genre replaces after mood", []string{"Chill", "Pop", "Organic"}, "Rock", []string{"Chill", "Rock"}},
		{"texture appends after one", []string{"Chill"}, "Hybrid", []string{"Chill", "Hybrid"}},
		{"dance replaces at stage", []string{"Chill", "Pop", "Organic", "Still"}, "Groovy",
			[]string{"Chill", "Pop", "Organic", "Groovy"}},
		{"phase replaces last", []string{"Chill", "Pop", "Organic", "Still", "Peak Zone"}, "Tempo Riser",
			[]string{"Chill", "Pop", "Organic", "Still", "Tempo Riser"}},
		{"phase appends when short", []string{"Chill", "Pop"}, "Peak Zone", []string{"Chill", "Pop", "Peak Zone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Selection{Path: tt.start}
			require.NoError(t, sel.Choose(tt.label))
			assert.Equal(t, tt.want, sel.Path)
		})
	}
}

func TestSelectionChooseUnknown(t *testing.T) {
	sel := Selection{Path: []string{"Chill"}}
	assert.Error(t, sel.Choose("Zone 2"))
	assert.Equal(t, []string{"Chill"}, sel.Path)
}

func TestSelectionDoesNotAliasCallerSlice(t *testing.T) {
	g := testGraph()
	shared := make([]string, 1, 4)
	shared[0] = "Euphoric"

	a := Selection{Path: shared}
	b := Selection{Path: shared}
	a.Click(g, "Pop")
	require.NoError(t, b.Choose("Groovy"))

	assert.Equal(t, []string{"Euphoric", "Pop"}, a.Path)
	assert.Equal(t, []string{"Euphoric", "Groovy"}, b.Path)
}

func TestSelectionHighlight(t *testing.T) {
	g := testGraph()

	h := Selection{}.Highlight(g)
	assert.Empty(t, h.Nodes)
	assert.Empty(t, h.Links)

	h = Selection{Path: []string{"Euphoric"}}.Highlight(g)
	assert.Equal(t, []string{"Euphoric", "Pop"}, h.Nodes)
	require.Len(t, h.Links, 1)
	assert.Equal(t, "Pop", h.Links[0].Target)

	h = Selection{Path: []string{"Euphoric", "Pop"}}.Highlight(g)
	assert.Equal(t, []string{"Euphoric", "Pop", "Synthetic"}, h.Nodes)
	assert.Len(t, h.Links, 2)
}

func TestGraphConnected(t *testing.T) {
	g := testGraph()

	h := g.Connected("Pop")

	assert.ElementsMatch(t, []string{"Pop", "Synthetic", "Euphoric"}, h.Nodes)
	assert.Len(t, h.Links, 2)
}
