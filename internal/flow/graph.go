// Package flow builds the five-layer mood → genre → texture → danceability →
// phase flow graph from classified songs, and filters songs by a selection
// path through it.
package flow

import (
	"slices"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// Node is a label in the flow graph. Its layer is fixed by the label's stage.
type Node struct {
	ID    string `json:"id"`
	Layer int    `json:"layer"`
}

// Link is an aggregated edge between labels in adjacent layers.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Count  int     `json:"count"` // songs flowing through this pair
	Value  float64 `json:"value"` // Count relative to the heaviest link, 0-1
}

// Graph is the full flow diagram for one song collection.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

type linkKey struct {
	source, target string
}

// Build classifies every song and aggregates the four adjacent-stage edges
// each one touches. It always recomputes from scratch.
func Build(songs []song.Song) Graph {
	counts := make(map[linkKey]int)
	seen := make(map[string]bool)

	for _, s := range songs {
		path := classify.Classify(s).Path()
		for _, label := range path {
			seen[label] = true
		}
		for i := 0; i+1 < len(path); i++ {
			counts[linkKey{path[i], path[i+1]}]++
		}
	}

	g := Graph{
		Nodes: make([]Node, 0, len(seen)),
		Links: make([]Link, 0, len(counts)),
	}

	for label := range seen {
		st, _ := classify.StageOf(label)
		g.Nodes = append(g.Nodes, Node{ID: label, Layer: int(st)})
	}
	slices.SortFunc(g.Nodes, func(a, b Node) int {
		return compareLabels(a.ID, b.ID)
	})

	maxCount := 0
	for k, c := range counts {
		g.Links = append(g.Links, Link{Source: k.source, Target: k.target, Count: c})
		maxCount = max(maxCount, c)
	}
	for i := range g.Links {
		g.Links[i].Value = float64(g.Links[i].Count) / float64(maxCount)
	}
	slices.SortFunc(g.Links, func(a, b Link) int {
		if c := compareLabels(a.Source, b.Source); c != 0 {
			return c
		}
		return compareLabels(a.Target, b.Target)
	})

	return g
}

// compareLabels orders labels by stage, then by declared order within the stage.
func compareLabels(a, b string) int {
	sa, _ := classify.StageOf(a)
	sb, _ := classify.StageOf(b)
	if sa != sb {
		return int(sa) - int(sb)
	}
	return classify.LabelOrder(a) - classify.LabelOrder(b)
}

// Node returns the node with the given label.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// HasLink reports whether the graph carries an edge from source to target.
func (g Graph) HasLink(source, target string) bool {
	for _, l := range g.Links {
		if l.Source == source && l.Target == target {
			return true
		}
	}
	return false
}

// NodesInLayer returns the nodes of one layer in display order.
func (g Graph) NodesInLayer(layer int) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Layer == layer {
			out = append(out, n)
		}
	}
	return out
}
