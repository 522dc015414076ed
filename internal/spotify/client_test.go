package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

func TestBatches(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want [][2]int
	}{
		{"empty", 0, 100, nil},
		{"less than size", 50, 100, [][2]int{{0, 50}}},
		{"exactly size", 100, 100, [][2]int{{0, 100}}},
		{"more than size", 250, 100, [][2]int{{0, 100}, {100, 200}, {200, 250}}},
		{"artist batches", 51, 50, [][2]int{{0, 50}, {50, 51}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := batches(tt.n, tt.size)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("batches(%d, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
			}
		})
	}
}

func TestTrackRow(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  song.Row
	}{
		{
			name: "full features",
			track: Track{
				Title: "Song", Artist: "A, B", Genre: "dance pop",
				DurationMs: 201500, ReleaseDate: "2015-03-01",
				Features: &spotify.AudioFeatures{
					Tempo: 139.6, Energy: 0.854, Valence: 0.9,
					Acousticness: 0.1, Danceability: 0.875,
				},
			},
			want: song.Row{
				"title": "Song", "artist": "A, B", "top genre": "dance pop",
				"year": "2015", "dur": "202", "bpm": "140",
				"nrgy": "85", "val": "90", "acous": "10", "dnce": "88",
			},
		},
		{
			name:  "no features",
			track: Track{Title: "Bare", ReleaseDate: "99"},
			want:  song.Row{"title": "Bare", "artist": "", "top genre": "", "year": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.track.Row()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Row() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackRowWithoutFeaturesIsSkipped(t *testing.T) {
	songs, skipped := song.ParseAll([]song.Row{Track{Title: "Bare"}.Row()})
	if len(songs) != 0 || skipped != 1 {
		t.Errorf("ParseAll() = %d songs, %d skipped; want 0, 1", len(songs), skipped)
	}
}

func newFakeAPI(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/playlists/p1/tracks":
			w.Write([]byte(`{"items":[
				{"track":{"type":"track","id":"t1","name":"Fast One","duration_ms":180000,
					"artists":[{"id":"a1","name":"Artist One"}],"album":{"release_date":"2016-05-01"}}},
				{"track":{"type":"track","id":"t2","name":"No Features","duration_ms":200000,
					"artists":[{"id":"a2","name":"Artist Two"},{"id":"a1","name":"Artist One"}],"album":{"release_date":"2012"}}}
			],"limit":100,"offset":0,"total":2}`))
		case r.URL.Path == "/audio-features":
			if !strings.Contains(r.URL.Query().Get("ids"), "t1") {
				t.Errorf("audio-features ids = %q", r.URL.Query().Get("ids"))
			}
			w.Write([]byte(`{"audio_features":[
				{"id":"t1","tempo":150.2,"energy":0.9,"valence":0.8,"acousticness":0.05,"danceability":0.7},
				null
			]}`))
		case r.URL.Path == "/artists":
			w.Write([]byte(`{"artists":[
				{"id":"a1","name":"Artist One","genres":["big room","edm"]},
				{"id":"a2","name":"Artist Two","genres":[]}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return New(spotify.New(srv.Client(), spotify.WithBaseURL(srv.URL+"/")))
}

func TestPlaylistRows(t *testing.T) {
	c := newFakeAPI(t)

	rows, err := c.PlaylistRows(context.Background(), "p1")
	if err != nil {
		t.Fatalf("PlaylistRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	first := song.Parse(rows[0])
	if first.Title != "Fast One" || first.BPM != 150 || first.Energy != 90 || first.Genre != "big room" {
		t.Errorf("first song = %+v", first)
	}
	if first.Year != 2016 || first.Duration != 180 {
		t.Errorf("first song year/duration = %d/%v", first.Year, first.Duration)
	}

	if rows[1][song.ColArtist] != "Artist Two, Artist One" {
		t.Errorf("artist = %q", rows[1][song.ColArtist])
	}
	if rows[1][song.ColGenre] != "" {
		t.Errorf("genre = %q, want empty for artist without genres", rows[1][song.ColGenre])
	}
	if song.Parse(rows[1]).Valid() {
		t.Error("track without audio features should not be valid")
	}
}

func TestPlaylistRowsUnknownPlaylist(t *testing.T) {
	c := newFakeAPI(t)

	if _, err := c.PlaylistRows(context.Background(), "missing"); err == nil {
		t.Error("PlaylistRows() expected error for unknown playlist")
	}
}
