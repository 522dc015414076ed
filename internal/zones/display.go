package zones

import (
	"fmt"
	"strings"
)

const sampleGenreCount = 3

// FormatSummary returns a human-readable outline of the tree: each zone with
// its song count and largest genre families.
func FormatSummary(t *Tree) string {
	var sb strings.Builder

	if len(t.Root.Children) == 0 {
		sb.WriteString("No songs to place in zones\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "%s: %d songs\n", RootName, t.Root.Value)
	for _, z := range t.Root.Children {
		title := z.Label
		if title == "" {
			title = z.Name
		}
		fmt.Fprintf(&sb, "\n%s: %d songs (%.0f%%)\n", title, z.Value, (z.X1-z.X0)*100)
		for _, g := range z.Children[:min(sampleGenreCount, len(z.Children))] {
			fmt.Fprintf(&sb, "  • %s (%d)\n", g.Name, g.Value)
		}
		if remaining := len(z.Children) - sampleGenreCount; remaining > 0 {
			fmt.Fprintf(&sb, "  ... and %d more genres\n", remaining)
		}
	}

	return sb.String()
}
