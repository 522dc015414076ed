package flow

// Highlight is the set of nodes and links a renderer should emphasise.
type Highlight struct {
	Nodes []string `json:"nodes"`
	Links []Link   `json:"links"`
}

type highlighter struct {
	g         Graph
	nodes     []string
	nodeSeen  map[string]bool
	links     []Link
	linksSeen map[linkKey]bool
}

func newHighlighter(g Graph) *highlighter {
	return &highlighter{
		g:         g,
		nodes:     []string{},
		nodeSeen:  make(map[string]bool),
		links:     []Link{},
		linksSeen: make(map[linkKey]bool),
	}
}

func (h *highlighter) addNode(id string) {
	if !h.nodeSeen[id] {
		h.nodeSeen[id] = true
		h.nodes = append(h.nodes, id)
	}
}

func (h *highlighter) addLink(l Link) {
	k := linkKey{l.Source, l.Target}
	if !h.linksSeen[k] {
		h.linksSeen[k] = true
		h.links = append(h.links, l)
	}
}

func (h *highlighter) downstream(id string) {
	for _, l := range h.g.Links {
		if l.Source == id {
			h.addNode(l.Target)
			h.addLink(l)
		}
	}
}

func (h *highlighter) upstream(id string) {
	for _, l := range h.g.Links {
		if l.Target == id {
			h.addNode(l.Source)
			h.addLink(l)
		}
	}
}

func (h *highlighter) path(path []string) {
	for _, id := range path {
		h.addNode(id)
	}
	for i := 0; i+1 < len(path); i++ {
		for _, l := range h.g.Links {
			if l.Source == path[i] && l.Target == path[i+1] {
				h.addLink(l)
			}
		}
	}
}

func (h *highlighter) result() Highlight {
	return Highlight{Nodes: h.nodes, Links: h.links}
}

// Preview highlights a node and everything one step downstream of it.
func (g Graph) Preview(id string) Highlight {
	h := newHighlighter(g)
	h.addNode(id)
	h.downstream(id)
	return h.result()
}

// Highlight emphasises the exact edges along path plus a preview of the
// column after its last element.
func (g Graph) Highlight(path []string) Highlight {
	h := newHighlighter(g)
	h.path(path)
	if len(path) > 0 {
		h.downstream(path[len(path)-1])
	}
	return h.result()
}

// Connected highlights a node with its direct upstream and downstream neighbours.
func (g Graph) Connected(id string) Highlight {
	h := newHighlighter(g)
	h.addNode(id)
	h.downstream(id)
	h.upstream(id)
	return h.result()
}
