package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlaylistRepository handles playlist database operations.
type PlaylistRepository struct {
	pool *pgxpool.Pool
}

// Upsert creates or renames a playlist.
func (r *PlaylistRepository) Upsert(ctx context.Context, p *Playlist) error {
	query := `
		INSERT INTO playlists (id, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query, p.ID, p.Name).Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("upserting playlist: %w", err)
	}
	return nil
}

// Get retrieves a playlist by ID.
func (r *PlaylistRepository) Get(ctx context.Context, id string) (*Playlist, error) {
	query := `
		SELECT p.id, p.name, p.created_at, COUNT(s.position)
		FROM playlists p
		LEFT JOIN playlist_songs s ON s.playlist_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`
	var p Playlist
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.SongCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying playlist: %w", err)
	}
	return &p, nil
}

// List returns every playlist ordered by name.
func (r *PlaylistRepository) List(ctx context.Context) ([]Playlist, error) {
	query := `
		SELECT p.id, p.name, p.created_at, COUNT(s.position)
		FROM playlists p
		LEFT JOIN playlist_songs s ON s.playlist_id = p.id
		GROUP BY p.id
		ORDER BY p.name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying playlists: %w", err)
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.SongCount); err != nil {
			return nil, fmt.Errorf("scanning playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}
