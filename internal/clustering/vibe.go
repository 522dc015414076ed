// Package clustering groups songs into vibe clusters using their audio features.
package clustering

import (
	"cmp"
	"log"
	"math"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// Config holds vibe clustering parameters.
type Config struct {
	NumClusters    int // Number of clusters to create (default: 3)
	MinClusterSize int // Minimum songs per cluster (smaller clusters become outliers)
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:    3,
		MinClusterSize: 3,
	}
}

// Centroid is the mean audio feature vector of a cluster, on the dataset's 0-100 scale.
type Centroid struct {
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Danceability float64 `json:"danceability"`
	Acousticness float64 `json:"acousticness"`
}

// Cluster is a group of songs with a similar vibe.
type Cluster struct {
	Name        string           `json:"name"` // e.g. "Euphoric Synthetic"
	Mood        classify.Mood    `json:"mood"`
	Texture     classify.Texture `json:"texture"`
	Description string           `json:"description"`
	Centroid    Centroid         `json:"centroid"`
	Songs       []song.Song      `json:"songs"` // most energetic first
}

type songObservation struct {
	song   *song.Song
	coords clusters.Coordinates
}

func (o songObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o songObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Detect groups songs by audio feature similarity using k-means.
// Returns the clusters, largest first, and the songs that fit none of them.
// Songs with a missing feature are always outliers.
func Detect(songs []song.Song, cfg Config) ([]Cluster, []song.Song) {
	if len(songs) == 0 {
		return nil, nil
	}

	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultConfig().NumClusters
	}

	var valid []*song.Song
	var outliers []song.Song

	for i := range songs {
		s := &songs[i]
		if hasFeatures(s) {
			valid = append(valid, s)
		} else {
			outliers = append(outliers, *s)
		}
	}

	if len(valid) < cfg.NumClusters {
		for _, s := range valid {
			outliers = append(outliers, *s)
		}
		return nil, outliers
	}

	var obs clusters.Observations
	for _, s := range valid {
		obs = append(obs, songObservation{song: s, coords: features(s)})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumClusters)
	if err != nil {
		log.Printf("Warning: k-means clustering failed: %v", err)
		for _, s := range valid {
			outliers = append(outliers, *s)
		}
		return nil, outliers
	}

	var found []Cluster
	assigned := make(map[*song.Song]bool, len(valid))
	for _, c := range result {
		var members []song.Song
		for _, o := range c.Observations {
			// A song re-seeded into an empty cluster can appear twice.
			if so, ok := o.(songObservation); ok && !assigned[so.song] {
				assigned[so.song] = true
				members = append(members, *so.song)
			}
		}
		if len(members) == 0 {
			continue
		}
		if len(members) < cfg.MinClusterSize {
			outliers = append(outliers, members...)
			continue
		}

		slices.SortStableFunc(members, func(a, b song.Song) int {
			return cmp.Compare(b.Energy, a.Energy)
		})

		found = append(found, newCluster(centroidOf(members), members))
	}

	slices.SortStableFunc(found, func(a, b Cluster) int {
		if n := cmp.Compare(len(b.Songs), len(a.Songs)); n != 0 {
			return n
		}
		return cmp.Compare(a.Name, b.Name)
	})
	disambiguate(found)

	return found, outliers
}

func hasFeatures(s *song.Song) bool {
	for _, v := range []float64{s.Energy, s.Valence, s.Danceability, s.Acousticness} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// features scales the clustering features to 0-1 so no single column dominates.
func features(s *song.Song) clusters.Coordinates {
	return clusters.Coordinates{
		s.Energy / 100,
		s.Valence / 100,
		s.Danceability / 100,
		s.Acousticness / 100,
	}
}

// centroidOf averages the members directly. The partition's own center is
// only recomputed when assignments change, so it can be stale.
func centroidOf(members []song.Song) Centroid {
	var c Centroid
	for _, s := range members {
		c.Energy += s.Energy
		c.Valence += s.Valence
		c.Danceability += s.Danceability
		c.Acousticness += s.Acousticness
	}
	n := float64(len(members))
	c.Energy /= n
	c.Valence /= n
	c.Danceability /= n
	c.Acousticness /= n
	return c
}
