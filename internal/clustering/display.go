package clustering

import (
	"fmt"
	"strings"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

const sampleSongCount = 3

// FormatSummary returns a human-readable summary of vibe clusters.
// Shows the centroid, song count, and first 3 songs of each cluster.
// Outliers are summarized by count only.
func FormatSummary(cs []Cluster, outliers []song.Song) string {
	var sb strings.Builder

	total := len(outliers)
	for _, c := range cs {
		total += len(c.Songs)
	}

	if len(cs) == 0 {
		fmt.Fprintf(&sb, "No vibe clusters found from %d songs", total)
		if len(outliers) > 0 {
			fmt.Fprintf(&sb, " (%d outliers skipped)", len(outliers))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	word := "cluster"
	if len(cs) > 1 {
		word = "clusters"
	}

	fmt.Fprintf(&sb, "Found %d vibe %s from %d songs", len(cs), word, total)
	if len(outliers) > 0 {
		fmt.Fprintf(&sb, " (%d outliers skipped)", len(outliers))
	}
	sb.WriteString("\n")

	for i, c := range cs {
		sb.WriteString("\n")
		sb.WriteString(formatCluster(i+1, c))
	}

	return sb.String()
}

func formatCluster(num int, c Cluster) string {
	var sb strings.Builder

	word := "song"
	if len(c.Songs) > 1 {
		word = "songs"
	}

	fmt.Fprintf(&sb, "Cluster %d: %s (%d %s)\n", num, c.Name, len(c.Songs), word)
	fmt.Fprintf(&sb, "  energy %.0f, valence %.0f, danceability %.0f, acousticness %.0f\n",
		c.Centroid.Energy, c.Centroid.Valence, c.Centroid.Danceability, c.Centroid.Acousticness)

	for _, s := range c.Songs[:min(sampleSongCount, len(c.Songs))] {
		fmt.Fprintf(&sb, "  • %q - %s\n", s.Title, s.Artist)
	}

	if remaining := len(c.Songs) - sampleSongCount; remaining > 0 {
		fmt.Fprintf(&sb, "  ... and %d more\n", remaining)
	}

	return sb.String()
}
