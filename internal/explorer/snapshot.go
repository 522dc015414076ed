package explorer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/dataset"
	"github.com/justestif/go-workout-music-explorer/internal/flow"
	"github.com/justestif/go-workout-music-explorer/internal/song"
	"github.com/justestif/go-workout-music-explorer/internal/zones"
)

// ErrUnknownWorkout is returned for a workout type name that is not listed.
var ErrUnknownWorkout = errors.New("unknown workout type")

// Entry is a song with every label derived from it.
type Entry struct {
	Song           song.Song               `json:"song"`
	Classification classify.Classification `json:"classification"`
	Workouts       []string                `json:"workouts"`
}

// Snapshot is the fully derived, read-only view of one dataset load.
// A reload builds a new Snapshot rather than changing an existing one.
type Snapshot struct {
	ID       uuid.UUID       `json:"id"`
	Dataset  dataset.Dataset `json:"dataset"`
	LoadedAt time.Time       `json:"loaded_at"`
	Skipped  int             `json:"skipped"`

	Songs    []song.Song   `json:"-"`
	Entries  []Entry       `json:"-"`
	Graph    flow.Graph    `json:"-"`
	Zones    *zones.Tree   `json:"-"`
	Timeline song.Timeline `json:"-"`
}

// NewSnapshot parses rows and derives every view from the valid songs.
func NewSnapshot(ds dataset.Dataset, rows []song.Row) *Snapshot {
	songs, skipped := song.ParseAll(rows)

	entries := make([]Entry, len(songs))
	for i, s := range songs {
		workouts := classify.WorkoutsFor(s.BPM)
		if workouts == nil {
			workouts = []string{}
		}
		entries[i] = Entry{
			Song:           s,
			Classification: classify.Classify(s),
			Workouts:       workouts,
		}
	}

	return &Snapshot{
		ID:       uuid.New(),
		Dataset:  ds,
		LoadedAt: time.Now(),
		Skipped:  skipped,
		Songs:    songs,
		Entries:  entries,
		Graph:    flow.Build(songs),
		Zones:    zones.Build(songs),
		Timeline: song.NewTimeline(songs),
	}
}

// Workout returns the songs whose tempo suits the named workout type, in
// dataset order.
func (s *Snapshot) Workout(name string) (classify.WorkoutType, []song.Song, error) {
	w, ok := classify.WorkoutByName(name)
	if !ok {
		return classify.WorkoutType{}, nil, fmt.Errorf("%w: %q", ErrUnknownWorkout, name)
	}
	out := []song.Song{}
	for _, sg := range s.Songs {
		if w.Contains(sg.BPM) {
			out = append(out, sg)
		}
	}
	return w, out, nil
}
