package flow

import (
	"fmt"
	"slices"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
)

// Selection is the drill-down path a visitor has built through the graph.
// The zero value is an empty selection.
type Selection struct {
	Path []string `json:"path"`
}

// Click applies a node click. The first click starts a path; a click on a
// downstream neighbour of the last element extends it; any other click
// restarts the path at the clicked node.
func (s *Selection) Click(g Graph, id string) {
	if len(s.Path) == 0 {
		s.Path = []string{id}
		return
	}
	last := s.Path[len(s.Path)-1]
	if g.HasLink(last, id) {
		s.Path = append(slices.Clip(s.Path), id)
		return
	}
	s.Path = []string{id}
}

// Choose sets the label for a stage, as the per-stage buttons do. Labels
// before the stage are kept and labels after it are dropped. With fewer
// than stage labels selected, the label is appended instead, and with
// nothing selected it starts a new path.
func (s *Selection) Choose(label string) error {
	st, ok := classify.StageOf(label)
	if !ok {
		return fmt.Errorf("unknown label %q", label)
	}
	switch {
	case len(s.Path) == 0:
		s.Path = []string{label}
	case len(s.Path) >= int(st):
		s.Path = append(append([]string(nil), s.Path[:st]...), label)
	default:
		s.Path = append(slices.Clip(s.Path), label)
	}
	return nil
}

// Reset clears the selection.
func (s *Selection) Reset() {
	s.Path = nil
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return len(s.Path) == 0
}

// Last returns the most recently selected label.
func (s Selection) Last() (string, bool) {
	if len(s.Path) == 0 {
		return "", false
	}
	return s.Path[len(s.Path)-1], true
}

// Highlight returns what a renderer should emphasise for this selection:
// nothing when empty, a downstream preview for a single label, and the
// exact path plus the next column otherwise.
func (s Selection) Highlight(g Graph) Highlight {
	switch len(s.Path) {
	case 0:
		return Highlight{Nodes: []string{}, Links: []Link{}}
	case 1:
		return g.Preview(s.Path[0])
	}
	return g.Highlight(s.Path)
}
