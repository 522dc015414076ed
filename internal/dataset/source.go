// Package dataset loads the raw rows behind each selectable dataset from
// CSV files, Postgres or the Spotify Web API.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// Source kinds accepted in the dataset configuration.
const (
	KindCSV      = "csv"
	KindPostgres = "postgres"
	KindSpotify  = "spotify"
)

// ErrEmptyFile is returned for a CSV file without a header row.
var ErrEmptyFile = errors.New("dataset file has no header")

// Source fetches the untyped rows stored at a location.
type Source interface {
	Rows(ctx context.Context, location string) ([]song.Row, error)
}

// CSVSource reads dataset files from a directory. The header row supplies
// the column names.
type CSVSource struct {
	FS fs.FS
}

// Rows parses the file at location. Records shorter than the header leave
// the missing columns empty.
func (s CSVSource) Rows(ctx context.Context, location string) ([]song.Row, error) {
	f, err := s.FS.Open(location)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", location, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", location, ErrEmptyFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", location, err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var rows []song.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", location, err)
		}
		row := make(song.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PlaylistStore is the subset of the database layer PostgresSource needs.
type PlaylistStore interface {
	ForPlaylist(ctx context.Context, playlistID string) ([]song.Row, error)
}

// PostgresSource reads imported playlists. The location is the playlist ID.
type PostgresSource struct {
	Store PlaylistStore
}

func (s PostgresSource) Rows(ctx context.Context, location string) ([]song.Row, error) {
	rows, err := s.Store.ForPlaylist(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading playlist %s: %w", location, err)
	}
	return rows, nil
}

// PlaylistFetcher is the subset of the Spotify client SpotifySource needs.
type PlaylistFetcher interface {
	PlaylistRows(ctx context.Context, playlistID string) ([]song.Row, error)
}

// SpotifySource reads a public Spotify playlist. The location is the
// playlist ID.
type SpotifySource struct {
	Client PlaylistFetcher
}

func (s SpotifySource) Rows(ctx context.Context, location string) ([]song.Row, error) {
	rows, err := s.Client.PlaylistRows(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetching spotify playlist %s: %w", location, err)
	}
	return rows, nil
}
