package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/clustering"
	"github.com/justestif/go-workout-music-explorer/internal/flow"
	"github.com/justestif/go-workout-music-explorer/internal/zones"
)

var (
	filterLimit    int
	clusterCount   int
	zoneFocusFlags []string
)

var classifyCmd = &cobra.Command{
	Use:   "classify <dataset>",
	Short: "Print every song with its mood, genre, texture, danceability, phase and zone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, snap, err := loadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer d.close()

		fmt.Printf("%-32s %-10s %-26s %-10s %-7s %-18s %s\n",
			"Title", "Mood", "Genre", "Texture", "Dance", "Phase", "Zone")
		for _, e := range snap.Entries {
			c := e.Classification
			fmt.Printf("%-32s %-10s %-26s %-10s %-7s %-18s %s\n",
				truncate(e.Song.Title, 32), c.Mood, c.Genre, c.Texture, c.Dance, c.Phase, c.Zone.Name)
		}
		fmt.Printf("\n%d songs, %d rows skipped\n", len(snap.Songs), snap.Skipped)
		return nil
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph <dataset>",
	Short: "Print the mood → genre → texture → danceability → phase flow links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, snap, err := loadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer d.close()

		for layer := 0; layer < classify.NumStages; layer++ {
			nodes := snap.Graph.NodesInLayer(layer)
			ids := make([]string, len(nodes))
			for i, n := range nodes {
				ids[i] = n.ID
			}
			fmt.Printf("%-13s %s\n", classify.Stage(layer).String()+":", strings.Join(ids, ", "))
		}
		fmt.Println()
		for _, l := range snap.Graph.Links {
			fmt.Printf("%-26s → %-26s %4d  %.2f\n", l.Source, l.Target, l.Count, l.Value)
		}
		return nil
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter <dataset> <label>...",
	Short: "List songs matching a selection path, most energetic first",
	Long: `List songs matching a selection path, most energetic first.

The first label is a mood and matches fuzzily; the rest must equal the song's
genre family, texture, danceability tier and phase, in that order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, snap, err := loadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer d.close()

		res, err := d.explorer.Filter(snap, args[1:], filterLimit)
		if errors.Is(err, flow.ErrNothingSelected) {
			return fmt.Errorf("%w: pass at least one label after the dataset", err)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d songs\n", strings.Join(res.Path, " → "), res.Total)
		for i, s := range res.Songs {
			fmt.Printf("%3d. %s - %s (energy %s, %s bpm)\n", i+1, s.Title, s.Artist, number(s.Energy), number(s.BPM))
		}
		if hidden := res.Total - len(res.Songs); hidden > 0 {
			fmt.Printf("... and %d more\n", hidden)
		}
		return nil
	},
}

var zonesCmd = &cobra.Command{
	Use:   "zones <dataset>",
	Short: "Summarize songs by BPM zone and genre family",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, snap, err := loadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer d.close()

		if len(zoneFocusFlags) == 0 {
			fmt.Print(zones.FormatSummary(snap.Zones))
			return nil
		}

		var nav zones.Navigator
		if err := nav.ZoomIn(snap.Zones, zoneFocusFlags); err != nil {
			return err
		}
		for _, a := range nav.View(snap.Zones).Arcs {
			if !a.Visible {
				continue
			}
			indent := strings.Repeat("  ", int(a.Y0)-1)
			fmt.Printf("%s%s (%d) %.0f%%\n", indent, a.Name, a.Value, (a.X1-a.X0)*100)
		}
		return nil
	},
}

var clustersCmd = &cobra.Command{
	Use:   "clusters <dataset>",
	Short: "Group songs into vibe clusters by audio features",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, snap, err := loadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer d.close()

		res := d.explorer.Clusters(snap, clusterCount)
		fmt.Print(clustering.FormatSummary(res.Clusters, res.Outliers))
		return nil
	},
}

var workoutsCmd = &cobra.Command{
	Use:   "workouts <dataset> [type]",
	Short: "List workout types, or the songs whose tempo suits one",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			for _, w := range classify.WorkoutTypes {
				fmt.Printf("%-11s %3.0f-%3.0f bpm\n", w.Name, w.MinBPM, w.MaxBPM)
			}
			return nil
		}

		d, snap, err := loadSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer d.close()

		w, songs, err := snap.Workout(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%.0f-%.0f bpm): %d songs\n", w.Name, w.MinBPM, w.MaxBPM, len(songs))
		for _, s := range songs {
			fmt.Printf("  %s - %s (%s bpm)\n", s.Title, s.Artist, number(s.BPM))
		}
		return nil
	},
}

func init() {
	filterCmd.Flags().IntVarP(&filterLimit, "limit", "n", 20, "Maximum songs to print (0 for all)")
	clustersCmd.Flags().IntVar(&clusterCount, "k", 0, "Number of clusters (default from config)")
	zonesCmd.Flags().StringSliceVar(&zoneFocusFlags, "focus", nil, "Zoom into a zone and optional genre, e.g. --focus \"Zone 2,Pop\"")

	rootCmd.AddCommand(classifyCmd, graphCmd, filterCmd, zonesCmd, clustersCmd, workoutsCmd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func number(v float64) string {
	if math.IsNaN(v) {
		return "?"
	}
	return fmt.Sprintf("%.0f", v)
}

