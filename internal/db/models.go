package db

import "time"

// Playlist is a stored workout playlist.
type Playlist struct {
	ID        string
	Name      string
	CreatedAt time.Time
	SongCount int
}
