// Package zones builds the Zone → genre family → song hierarchy and lays it
// out as a radial partition that can be zoomed into.
package zones

import (
	"cmp"
	"slices"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// RootName names the root of every tree.
const RootName = "Workout Zones"

// Depths of the hierarchy.
const (
	DepthRoot = iota
	DepthZone
	DepthGenre
	DepthSong
)

// Node is one arc of the partition. X0 and X1 are the node's angular extent
// as a fraction of the full circle; its ring spans [Depth, Depth+1).
type Node struct {
	Name     string     `json:"name"`
	Label    string     `json:"label,omitempty"` // zone title, e.g. "Zone 3 (Tempo)"
	Depth    int        `json:"depth"`
	Value    int        `json:"value"` // songs underneath
	X0       float64    `json:"x0"`
	X1       float64    `json:"x1"`
	Song     *song.Song `json:"song,omitempty"`
	Children []*Node    `json:"children,omitempty"`
}

// Leaf reports whether n is a song.
func (n *Node) Leaf() bool {
	return n.Depth == DepthSong
}

// Tree is the partitioned zone hierarchy of one dataset.
type Tree struct {
	Root *Node `json:"root"`
}

// Build groups songs by BPM zone and genre family. Zones are ordered
// Zone 1..5 with Uncategorized last; genres by song count, largest first,
// ties in declared family order; songs keep their input order.
func Build(songs []song.Song) *Tree {
	type zoneGroup struct {
		zone   classify.Zone
		genres map[classify.GenreFamily][]song.Song
	}

	groups := make(map[string]*zoneGroup)
	for _, s := range songs {
		z, _ := classify.ZoneOf(s.BPM)
		g, ok := groups[z.Name]
		if !ok {
			g = &zoneGroup{zone: z, genres: make(map[classify.GenreFamily][]song.Song)}
			groups[z.Name] = g
		}
		fam := classify.GenreFamilyOf(s.Genre)
		g.genres[fam] = append(g.genres[fam], s)
	}

	root := &Node{Name: RootName, Depth: DepthRoot, Value: len(songs)}

	for _, g := range groups {
		zn := &Node{Name: g.zone.Name, Label: g.zone.Title(), Depth: DepthZone}
		for fam, members := range g.genres {
			gn := &Node{Name: string(fam), Depth: DepthGenre, Value: len(members)}
			for i := range members {
				gn.Children = append(gn.Children, &Node{
					Name:  members[i].Title,
					Depth: DepthSong,
					Value: 1,
					Song:  &members[i],
				})
			}
			zn.Children = append(zn.Children, gn)
			zn.Value += gn.Value
		}
		slices.SortFunc(zn.Children, func(a, b *Node) int {
			if n := cmp.Compare(b.Value, a.Value); n != 0 {
				return n
			}
			return cmp.Compare(genreOrder(a.Name), genreOrder(b.Name))
		})
		root.Children = append(root.Children, zn)
	}

	slices.SortFunc(root.Children, func(a, b *Node) int {
		return cmp.Compare(classify.ZoneIndex(a.Name), classify.ZoneIndex(b.Name))
	})

	partition(root, 0, 1)
	return &Tree{Root: root}
}

func genreOrder(name string) int {
	return slices.Index(classify.GenreFamilies, classify.GenreFamily(name))
}

// partition splits [x0, x1) among n's children in proportion to their values.
func partition(n *Node, x0, x1 float64) {
	n.X0, n.X1 = x0, x1
	if len(n.Children) == 0 || n.Value == 0 {
		return
	}
	span := (x1 - x0) / float64(n.Value)
	at := x0
	for i, c := range n.Children {
		end := at + span*float64(c.Value)
		if i == len(n.Children)-1 {
			end = x1
		}
		partition(c, at, end)
		at = end
	}
}

// Find returns the node reached by following names from the root.
// An empty path is the root.
func (t *Tree) Find(path []string) (*Node, bool) {
	n := t.Root
	for _, name := range path {
		i := slices.IndexFunc(n.Children, func(c *Node) bool { return c.Name == name })
		if i < 0 {
			return nil, false
		}
		n = n.Children[i]
	}
	return n, true
}

// Walk calls fn for every node below the root in depth-first order,
// with the names leading to it.
func (t *Tree) Walk(fn func(n *Node, path []string)) {
	var visit func(n *Node, path []string)
	visit = func(n *Node, path []string) {
		for _, c := range n.Children {
			p := append(slices.Clip(path), c.Name)
			fn(c, p)
			visit(c, p)
		}
	}
	visit(t.Root, nil)
}
