// Package spotify turns Spotify playlists into dataset rows.
package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

const (
	maxTracksPerRequest  = 100
	maxArtistsPerRequest = 50
)

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// PlaylistRows fetches a playlist with its audio features and artist
// genres, shaped like the rows of a dataset file.
func (c *Client) PlaylistRows(ctx context.Context, playlistID string) ([]song.Row, error) {
	tracks, err := c.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := c.FetchAudioFeatures(ctx, tracks); err != nil {
		return nil, err
	}
	if err := c.FetchGenres(ctx, tracks); err != nil {
		return nil, err
	}

	rows := make([]song.Row, len(tracks))
	for i, t := range tracks {
		rows[i] = t.Row()
	}
	return rows, nil
}

// batches splits n items into [start, end) ranges of at most size.
func batches(n, size int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i += size {
		out = append(out, [2]int{i, min(i+size, n)})
	}
	return out
}

func wrapBatch(what string, b [2]int, err error) error {
	return fmt.Errorf("fetching %s (batch %d-%d): %w", what, b[0]+1, b[1], err)
}
