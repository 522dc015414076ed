package explorer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/dataset"
	"github.com/justestif/go-workout-music-explorer/internal/flow"
	"github.com/justestif/go-workout-music-explorer/internal/metrics"
	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// fakeCatalog serves fixed rows per dataset and counts fetches.
type fakeCatalog struct {
	rows  map[string][]song.Row
	err   error
	calls int
}

func (f *fakeCatalog) List() []dataset.Dataset {
	var out []dataset.Dataset
	for id := range f.rows {
		out = append(out, dataset.Dataset{ID: id, Source: dataset.KindCSV})
	}
	return out
}

func (f *fakeCatalog) Get(id string) (dataset.Dataset, error) {
	if _, ok := f.rows[id]; !ok {
		return dataset.Dataset{}, fmt.Errorf("%w: %q", dataset.ErrUnknownDataset, id)
	}
	return dataset.Dataset{ID: id, Label: id, Source: dataset.KindCSV}, nil
}

func (f *fakeCatalog) Rows(_ context.Context, id string) ([]song.Row, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[id], nil
}

func songRow(title string, bpm, nrgy, val, acous, dnce int, genre string) song.Row {
	return song.Row{
		song.ColTitle:    title,
		song.ColArtist:   "Artist",
		song.ColGenre:    genre,
		song.ColBPM:      fmt.Sprint(bpm),
		song.ColDuration: "180",
		song.ColEnergy:   fmt.Sprint(nrgy),
		song.ColValence:  fmt.Sprint(val),
		song.ColAcoustic: fmt.Sprint(acous),
		song.ColDance:    fmt.Sprint(dnce),
	}
}

func testRows() []song.Row {
	return []song.Row{
		songRow("Peak", 140, 85, 90, 10, 88, "australian pop"),
		songRow("Quiet", 95, 30, 35, 80, 30, "folk"),
		songRow("Also Peak", 135, 92, 88, 5, 80, "dance pop"),
		{song.ColTitle: "Broken", song.ColBPM: "n/a"},
	}
}

func newTestService() (*Service, *fakeCatalog) {
	cat := &fakeCatalog{rows: map[string][]song.Row{"low": testRows()}}
	return New(cat, WithMetrics(metrics.NewRegistry())), cat
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot(dataset.Dataset{ID: "low"}, testRows())

	if len(snap.Songs) != 3 || snap.Skipped != 1 {
		t.Fatalf("songs = %d, skipped = %d, want 3 and 1", len(snap.Songs), snap.Skipped)
	}
	if len(snap.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(snap.Entries))
	}

	c := snap.Entries[0].Classification
	if c.Zone.Name != "Zone 3" || c.Phase != classify.PhasePeak || c.Genre != classify.GenrePop {
		t.Errorf("classification = %+v", c)
	}
	if len(snap.Entries[0].Workouts) == 0 {
		t.Error("140 bpm should suit at least one workout")
	}
	if len(snap.Graph.Links) == 0 {
		t.Error("graph has no links")
	}
	if snap.Zones.Root.Value != 3 {
		t.Errorf("zone tree value = %d, want 3", snap.Zones.Root.Value)
	}
	if got := snap.Timeline.TotalMinutes(); got != 9 {
		t.Errorf("timeline minutes = %v, want 9", got)
	}
}

func TestLoadCachesSnapshot(t *testing.T) {
	svc, cat := newTestService()
	ctx := context.Background()

	if _, err := svc.Snapshot("low"); !errors.Is(err, ErrNoDataset) {
		t.Errorf("Snapshot() before load error = %v, want ErrNoDataset", err)
	}

	first, err := svc.Load(ctx, "low")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := svc.Load(ctx, "low")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second || cat.calls != 1 {
		t.Errorf("second Load fetched again (calls = %d)", cat.calls)
	}

	cached, err := svc.Snapshot("low")
	if err != nil || cached != first {
		t.Errorf("Snapshot() = %v, %v", cached, err)
	}
}

func TestReloadBuildsNewSnapshot(t *testing.T) {
	svc, cat := newTestService()
	ctx := context.Background()

	first, _ := svc.Load(ctx, "low")
	cat.rows["low"] = testRows()[:1]

	second, err := svc.Reload(ctx, "low")
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if second.ID == first.ID {
		t.Error("Reload() kept the snapshot ID")
	}
	if len(second.Songs) != 1 || len(first.Songs) != 3 {
		t.Errorf("songs = %d (new), %d (old); old snapshot must be untouched", len(second.Songs), len(first.Songs))
	}
}

func TestReloadFailureKeepsPreviousSnapshot(t *testing.T) {
	svc, cat := newTestService()
	ctx := context.Background()

	first, _ := svc.Load(ctx, "low")
	cat.err = errors.New("source down")

	if _, err := svc.Reload(ctx, "low"); err == nil {
		t.Fatal("Reload() expected error")
	}
	current, err := svc.Snapshot("low")
	if err != nil || current != first {
		t.Errorf("Snapshot() after failed reload = %v, %v", current, err)
	}

	if _, err := svc.Load(ctx, "ghost"); !errors.Is(err, dataset.ErrUnknownDataset) {
		t.Errorf("Load(ghost) error = %v, want ErrUnknownDataset", err)
	}
}

func TestFilter(t *testing.T) {
	svc, _ := newTestService()
	snap, _ := svc.Load(context.Background(), "low")

	tests := []struct {
		name      string
		path      []string
		limit     int
		wantErr   error
		wantTotal int
		wantSongs []string
	}{
		{
			name:    "empty path",
			path:    nil,
			wantErr: flow.ErrNothingSelected,
		},
		{
			name:      "genre path energy descending",
			path:      []string{"Euphoric", "Pop"},
			wantTotal: 2,
			wantSongs: []string{"Also Peak", "Peak"},
		},
		{
			name:      "limit caps songs not total",
			path:      []string{"Euphoric", "Pop"},
			limit:     1,
			wantTotal: 2,
			wantSongs: []string{"Also Peak"},
		},
		{
			name:      "no matches",
			path:      []string{"Euphoric", "Country / Folk"},
			wantSongs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Filter(snap, tt.path, tt.limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Filter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if res.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", res.Total, tt.wantTotal)
			}
			if len(res.Songs) != len(tt.wantSongs) {
				t.Fatalf("len(Songs) = %d, want %d", len(res.Songs), len(tt.wantSongs))
			}
			for i, title := range tt.wantSongs {
				if res.Songs[i].Title != title {
					t.Errorf("Songs[%d] = %q, want %q", i, res.Songs[i].Title, title)
				}
			}
		})
	}
}

func TestClusters(t *testing.T) {
	svc, _ := newTestService()
	snap, _ := svc.Load(context.Background(), "low")

	res := svc.Clusters(snap, 1)
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
	if len(res.Clusters) != 1 || len(res.Clusters[0].Songs) != 3 {
		t.Errorf("Clusters(k=1) = %+v", res.Clusters)
	}
	if res.Outliers == nil {
		t.Error("Outliers must be non-nil")
	}

	// Default config wants three clusters of three songs.
	res = svc.Clusters(snap, 0)
	if len(res.Clusters) != 0 || len(res.Outliers) != 3 {
		t.Errorf("Clusters(default) = %d clusters, %d outliers", len(res.Clusters), len(res.Outliers))
	}
}

func TestSnapshotWorkout(t *testing.T) {
	snap := NewSnapshot(dataset.Dataset{ID: "low"}, testRows())

	w, songs, err := snap.Workout("yoga")
	if err != nil {
		t.Fatalf("Workout() error = %v", err)
	}
	if w.Name != "Yoga" || len(songs) != 1 || songs[0].Title != "Quiet" {
		t.Errorf("Workout(yoga) = %v, %v", w, songs)
	}

	if _, _, err := snap.Workout("curling"); !errors.Is(err, ErrUnknownWorkout) {
		t.Errorf("Workout(curling) error = %v, want ErrUnknownWorkout", err)
	}
}
