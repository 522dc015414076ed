package zones

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// Navigation errors.
var (
	ErrNodeNotFound = errors.New("zone node not found")
	ErrLeafNode     = errors.New("cannot zoom into a song")
)

// Visible rings, counted outward from the focus.
const (
	firstRing = 1
	lastRing  = 3

	minLabelArea = 0.03 // radians × rings
)

// Navigator holds one visitor's zoom focus as the names leading to it.
// The zero value is focused on the root.
type Navigator struct {
	Path []string `json:"path"`
}

// ZoomIn focuses on the node at path. Songs cannot be focused.
func (n *Navigator) ZoomIn(t *Tree, path []string) error {
	node, ok := t.Find(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, strings.Join(path, " > "))
	}
	if node.Leaf() {
		return fmt.Errorf("%w: %s", ErrLeafNode, node.Name)
	}
	n.Path = slices.Clone(path)
	return nil
}

// ZoomOut moves the focus to its parent. It does nothing at the root.
func (n *Navigator) ZoomOut() {
	if len(n.Path) > 0 {
		n.Path = slices.Clone(n.Path[:len(n.Path)-1])
	}
}

// Focus returns the path of the focused node; empty means the root.
func (n Navigator) Focus() []string {
	return slices.Clone(n.Path)
}

// Arc is a node's extent relative to the current focus. X0 and X1 are
// fractions of the full circle; Y0 and Y1 are rings outward from the focus.
type Arc struct {
	Path         []string   `json:"path"`
	Name         string     `json:"name"`
	Label        string     `json:"label,omitempty"`
	Depth        int        `json:"depth"`
	Value        int        `json:"value"`
	X0           float64    `json:"x0"`
	X1           float64    `json:"x1"`
	Y0           float64    `json:"y0"`
	Y1           float64    `json:"y1"`
	Visible      bool       `json:"visible"`
	LabelVisible bool       `json:"label_visible"`
	Song         *song.Song `json:"song,omitempty"`
}

// View is the whole tree as seen from one focus.
type View struct {
	Focus  []string `json:"focus"`
	Parent []string `json:"parent"` // where zooming out leads; nil at the root
	Arcs   []Arc    `json:"arcs"`
}

// View rescales every node below the root so the focus fills the circle.
// A focus that no longer exists in t, for example after the dataset
// changed, falls back to the root.
func (n Navigator) View(t *Tree) View {
	focus, ok := t.Find(n.Path)
	path := n.Path
	if !ok || focus.Leaf() {
		focus, path = t.Root, nil
	}

	v := View{Focus: slices.Clone(path), Arcs: []Arc{}}
	if v.Focus == nil {
		v.Focus = []string{}
	}
	if len(path) > 0 {
		v.Parent = slices.Clone(path[:len(path)-1])
	}

	width := focus.X1 - focus.X0
	t.Walk(func(d *Node, p []string) {
		a := Arc{
			Path:  p,
			Name:  d.Name,
			Label: d.Label,
			Depth: d.Depth,
			Value: d.Value,
			Song:  d.Song,
		}
		if width > 0 {
			a.X0 = clamp01((d.X0 - focus.X0) / width)
			a.X1 = clamp01((d.X1 - focus.X0) / width)
		}
		a.Y0 = math.Max(0, float64(d.Depth-focus.Depth))
		a.Y1 = math.Max(0, float64(d.Depth+1-focus.Depth))
		a.Visible = a.Y1 <= lastRing && a.Y0 >= firstRing && a.X1 > a.X0
		a.LabelVisible = a.Visible && (a.Y1-a.Y0)*(a.X1-a.X0)*2*math.Pi > minLabelArea
		v.Arcs = append(v.Arcs, a)
	})
	return v
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
