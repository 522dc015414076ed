// Package metrics exposes Prometheus instrumentation for dataset loads and
// selection filtering.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Filter outcomes.
const (
	OutcomeMatched = "matched"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
)

// Registry holds all metrics for the explorer.
type Registry struct {
	DatasetsLoaded       *prometheus.CounterVec
	DatasetLoadFailures  *prometheus.CounterVec
	RowsSkipped          *prometheus.CounterVec
	SnapshotBuildSeconds *prometheus.HistogramVec
	SnapshotSongs        *prometheus.GaugeVec
	FilterRequests       *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Registry{
		DatasetsLoaded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workout_explorer_datasets_loaded_total",
				Help: "Total number of dataset snapshots built",
			},
			[]string{"dataset", "source"},
		),
		DatasetLoadFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workout_explorer_dataset_load_failures_total",
				Help: "Total number of dataset loads that failed",
			},
			[]string{"dataset"},
		),
		RowsSkipped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workout_explorer_rows_skipped_total",
				Help: "Malformed dataset rows dropped while loading",
			},
			[]string{"dataset"},
		),
		SnapshotBuildSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "workout_explorer_snapshot_build_seconds",
				Help:    "Time to fetch and derive a dataset snapshot",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"dataset"},
		),
		SnapshotSongs: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "workout_explorer_snapshot_songs",
				Help: "Valid songs in the current snapshot of each dataset",
			},
			[]string{"dataset"},
		),
		FilterRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workout_explorer_filter_requests_total",
				Help: "Selection filter requests by outcome",
			},
			[]string{"outcome"},
		),
		registry: reg,
	}
}

// RecordLoad records a successful snapshot build.
func (r *Registry) RecordLoad(dataset, source string, songs, skipped int, duration time.Duration) {
	r.DatasetsLoaded.WithLabelValues(dataset, source).Inc()
	r.RowsSkipped.WithLabelValues(dataset).Add(float64(skipped))
	r.SnapshotBuildSeconds.WithLabelValues(dataset).Observe(duration.Seconds())
	r.SnapshotSongs.WithLabelValues(dataset).Set(float64(songs))
}

// RecordLoadFailure records a dataset load that returned an error.
func (r *Registry) RecordLoadFailure(dataset string) {
	r.DatasetLoadFailures.WithLabelValues(dataset).Inc()
}

// RecordFilter records one filter request.
func (r *Registry) RecordFilter(outcome string) {
	r.FilterRequests.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}
