package spotify

import (
	"context"

	"github.com/zmb3/spotify/v2"
)

// FetchAudioFeatures fills in Features for the given tracks, batching
// requests per Spotify API limits. Tracks Spotify has no features for
// keep a nil Features.
func (c *Client) FetchAudioFeatures(ctx context.Context, tracks []Track) error {
	indexByID := make(map[string]int, len(tracks))
	ids := make([]spotify.ID, len(tracks))
	for i, t := range tracks {
		ids[i] = spotify.ID(t.ID)
		indexByID[t.ID] = i
	}

	for _, b := range batches(len(ids), maxTracksPerRequest) {
		features, err := c.api.GetAudioFeatures(ctx, ids[b[0]:b[1]]...)
		if err != nil {
			return wrapBatch("audio features", b, err)
		}
		for _, f := range features {
			if f == nil {
				continue
			}
			if idx, ok := indexByID[f.ID.String()]; ok {
				tracks[idx].Features = f
			}
		}
	}
	return nil
}

// FetchGenres sets each track's Genre to the first genre Spotify lists for
// its lead artist.
func (c *Client) FetchGenres(ctx context.Context, tracks []Track) error {
	var ids []spotify.ID
	seen := make(map[string]bool)
	for _, t := range tracks {
		if len(t.ArtistIDs) == 0 || t.ArtistIDs[0] == "" || seen[t.ArtistIDs[0]] {
			continue
		}
		seen[t.ArtistIDs[0]] = true
		ids = append(ids, spotify.ID(t.ArtistIDs[0]))
	}

	genres := make(map[string]string, len(ids))
	for _, b := range batches(len(ids), maxArtistsPerRequest) {
		artists, err := c.api.GetArtists(ctx, ids[b[0]:b[1]]...)
		if err != nil {
			return wrapBatch("artists", b, err)
		}
		for _, a := range artists {
			if a != nil && len(a.Genres) > 0 {
				genres[a.ID.String()] = a.Genres[0]
			}
		}
	}

	for i := range tracks {
		if len(tracks[i].ArtistIDs) > 0 {
			tracks[i].Genre = genres[tracks[i].ArtistIDs[0]]
		}
	}
	return nil
}
