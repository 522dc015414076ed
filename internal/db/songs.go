package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// Song columns are stored as the raw text found in the dataset files, so a
// stored playlist goes through the same coercion as a CSV one.
var columnNames = []string{
	"title", "artist", "top_genre", "bpm", "dur", "nrgy", "val", "acous", "dnce", "year",
}

// SongRepository handles playlist song database operations.
type SongRepository struct {
	pool *pgxpool.Pool
}

// ForPlaylist returns a playlist's songs in playlist order as untyped rows.
// Returns ErrNotFound if the playlist has no songs.
func (r *SongRepository) ForPlaylist(ctx context.Context, playlistID string) ([]song.Row, error) {
	query := `SELECT ` + strings.Join(columnNames, ", ") + `
		FROM playlist_songs
		WHERE playlist_id = $1
		ORDER BY position
	`
	rows, err := r.pool.Query(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("querying playlist songs: %w", err)
	}
	defer rows.Close()

	var out []song.Row
	for rows.Next() {
		vals := make([]string, len(song.Columns))
		dest := make([]any, len(vals))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning playlist song: %w", err)
		}
		out = append(out, rowFromValues(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating playlist songs: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("playlist %q: %w", playlistID, ErrNotFound)
	}
	return out, nil
}

// ReplaceForPlaylist swaps a playlist's songs for rows in a single transaction.
func (r *SongRepository) ReplaceForPlaylist(ctx context.Context, playlistID string, rows []song.Row) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM playlist_songs WHERE playlist_id = $1`, playlistID); err != nil {
		return fmt.Errorf("clearing playlist songs: %w", err)
	}

	if len(rows) > 0 {
		query := `
			INSERT INTO playlist_songs (playlist_id, position, ` + strings.Join(columnNames, ", ") + `)
			SELECT $1, * FROM unnest($2::int[], $3::text[], $4::text[], $5::text[], $6::text[], $7::text[],
				$8::text[], $9::text[], $10::text[], $11::text[], $12::text[])
		`
		positions, cols := columnArrays(rows)
		args := []any{playlistID, positions}
		for _, c := range cols {
			args = append(args, c)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("batch inserting playlist songs: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing playlist songs: %w", err)
	}
	return nil
}

func rowFromValues(vals []string) song.Row {
	row := make(song.Row, len(song.Columns))
	for i, col := range song.Columns {
		row[col] = vals[i]
	}
	return row
}

// columnArrays transposes rows into one array per stored column, in
// columnNames order, plus 1-based positions.
func columnArrays(rows []song.Row) ([]int, [][]string) {
	positions := make([]int, len(rows))
	cols := make([][]string, len(song.Columns))
	for c := range cols {
		cols[c] = make([]string, len(rows))
	}
	for i, row := range rows {
		positions[i] = i + 1
		for c, name := range song.Columns {
			cols[c][i] = row[name]
		}
	}
	return positions, cols
}
