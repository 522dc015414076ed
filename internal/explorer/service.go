// Package explorer caches one derived snapshot per dataset and answers
// filter, cluster and workout queries against it.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/justestif/go-workout-music-explorer/internal/clustering"
	"github.com/justestif/go-workout-music-explorer/internal/dataset"
	"github.com/justestif/go-workout-music-explorer/internal/flow"
	"github.com/justestif/go-workout-music-explorer/internal/metrics"
	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// ErrNoDataset is returned when a dataset has not been loaded yet.
var ErrNoDataset = errors.New("dataset not loaded")

// Catalog resolves dataset IDs to their description and rows.
type Catalog interface {
	List() []dataset.Dataset
	Get(id string) (dataset.Dataset, error)
	Rows(ctx context.Context, id string) ([]song.Row, error)
}

// Service handles dataset loading and the queries over loaded snapshots.
type Service struct {
	catalog  Catalog
	metrics  *metrics.Registry
	clusters clustering.Config

	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records loads and filter outcomes in reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Service) {
		s.metrics = reg
	}
}

// WithClusterConfig sets the default vibe clustering parameters.
func WithClusterConfig(cfg clustering.Config) Option {
	return func(s *Service) {
		s.clusters = cfg
	}
}

// New creates a new explorer service.
func New(catalog Catalog, opts ...Option) *Service {
	s := &Service{
		catalog:   catalog,
		clusters:  clustering.DefaultConfig(),
		snapshots: make(map[string]*Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Datasets returns the catalog entries.
func (s *Service) Datasets() []dataset.Dataset {
	return s.catalog.List()
}

// Snapshot returns the cached snapshot for a dataset without loading it.
func (s *Service) Snapshot(id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDataset, id)
	}
	return snap, nil
}

// Load returns the cached snapshot for a dataset, building it on first use.
func (s *Service) Load(ctx context.Context, id string) (*Snapshot, error) {
	if snap, err := s.Snapshot(id); err == nil {
		return snap, nil
	}
	return s.Reload(ctx, id)
}

// Reload rebuilds a dataset's snapshot from its source and swaps it in.
// On failure the previous snapshot, if any, stays in place.
func (s *Service) Reload(ctx context.Context, id string) (*Snapshot, error) {
	start := time.Now()

	ds, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.catalog.Rows(ctx, id)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordLoadFailure(id)
		}
		return nil, fmt.Errorf("reloading %q: %w", id, err)
	}

	snap := NewSnapshot(ds, rows)

	s.mu.Lock()
	s.snapshots[id] = snap
	s.mu.Unlock()

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordLoad(id, ds.Source, len(snap.Songs), snap.Skipped, elapsed)
	}
	log.Printf("Loaded dataset %q: %d songs, %d rows skipped (%s)", id, len(snap.Songs), snap.Skipped, elapsed.Round(time.Millisecond))
	return snap, nil
}

// FilterResult is one page of songs matching a selection path.
type FilterResult struct {
	Path  []string    `json:"path"`
	Total int         `json:"total"`
	Songs []song.Song `json:"songs"`
}

// Filter returns the songs of snap matching path, energy descending, capped
// at limit when limit is positive. Total counts every match.
func (s *Service) Filter(snap *Snapshot, path []string, limit int) (FilterResult, error) {
	matched, err := flow.Filter(snap.Songs, path)
	if err != nil {
		s.recordFilter(metrics.OutcomeInvalid)
		return FilterResult{}, err
	}

	if len(matched) == 0 {
		s.recordFilter(metrics.OutcomeEmpty)
	} else {
		s.recordFilter(metrics.OutcomeMatched)
	}

	res := FilterResult{Path: path, Total: len(matched), Songs: matched}
	if limit > 0 && len(matched) > limit {
		res.Songs = matched[:limit]
	}
	return res, nil
}

func (s *Service) recordFilter(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordFilter(outcome)
	}
}

// ClusterResult is the vibe clustering of one snapshot.
type ClusterResult struct {
	Clusters []clustering.Cluster `json:"clusters"`
	Outliers []song.Song          `json:"outliers"`
	Total    int                  `json:"total"`
}

// Clusters groups snap's songs into vibe clusters. A positive k overrides
// the configured cluster count.
func (s *Service) Clusters(snap *Snapshot, k int) ClusterResult {
	cfg := s.clusters
	if k > 0 {
		cfg.NumClusters = k
	}
	cs, outliers := clustering.Detect(snap.Songs, cfg)
	if cs == nil {
		cs = []clustering.Cluster{}
	}
	if outliers == nil {
		outliers = []song.Song{}
	}
	return ClusterResult{Clusters: cs, Outliers: outliers, Total: len(snap.Songs)}
}
