package spotify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/zmb3/spotify/v2"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// Track is a playlist entry with what a dataset row needs.
type Track struct {
	ID          string
	Title       string
	Artist      string // Comma-separated artist names
	ArtistIDs   []string
	Genre       string // first genre of the lead artist
	DurationMs  int
	ReleaseDate string
	Features    *spotify.AudioFeatures // nil if unavailable
}

// PlaylistTracks retrieves every track of a playlist in order.
// Podcast episodes and unavailable tracks are skipped.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	page, err := c.api.GetPlaylistItems(ctx, spotify.ID(playlistID), spotify.Limit(maxTracksPerRequest))
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", playlistID, err)
	}

	var tracks []Track
	for {
		for _, item := range page.Items {
			if item.Track.Track == nil {
				continue
			}
			tracks = append(tracks, convertTrack(item.Track.Track))
		}

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	log.Printf("Fetched %d tracks from playlist %s", len(tracks), playlistID)
	return tracks, nil
}

func convertTrack(t *spotify.FullTrack) Track {
	names := make([]string, len(t.Artists))
	ids := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
		ids[i] = a.ID.String()
	}

	return Track{
		ID:          t.ID.String(),
		Title:       t.Name,
		Artist:      strings.Join(names, ", "),
		ArtistIDs:   ids,
		DurationMs:  int(t.Duration),
		ReleaseDate: t.Album.ReleaseDate,
	}
}

// Row renders the track in dataset form: 0-100 integer percentages, tempo
// rounded to whole BPM and duration in seconds. Without audio features the
// numeric columns are empty.
func (t Track) Row() song.Row {
	row := song.Row{
		song.ColTitle:  t.Title,
		song.ColArtist: t.Artist,
		song.ColGenre:  t.Genre,
		song.ColYear:   releaseYear(t.ReleaseDate),
	}
	if t.DurationMs > 0 {
		row[song.ColDuration] = strconv.Itoa(int(math.Round(float64(t.DurationMs) / 1000)))
	}
	if f := t.Features; f != nil {
		row[song.ColBPM] = whole(float64(f.Tempo))
		row[song.ColEnergy] = percent(f.Energy)
		row[song.ColValence] = percent(f.Valence)
		row[song.ColAcoustic] = percent(f.Acousticness)
		row[song.ColDance] = percent(f.Danceability)
	}
	return row
}

func whole(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

func percent(v float32) string {
	return whole(float64(v) * 100)
}

// releaseYear takes the year from "2015", "2015-03" or "2015-03-01".
func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
