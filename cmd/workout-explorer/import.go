package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justestif/go-workout-music-explorer/internal/dataset"
	"github.com/justestif/go-workout-music-explorer/internal/db"
)

var importName string

var importCmd = &cobra.Command{
	Use:   "import <file.csv> <playlist-id>",
	Short: "Store a dataset CSV file in Postgres as a playlist",
	Long: `Store a dataset CSV file in Postgres as a playlist.

The playlist can then be listed in the config as a dataset with
source = "postgres" and location = <playlist-id>. Re-importing replaces
the playlist's songs.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, playlistID := args[0], args[1]
		if cfg.Postgres.URL == "" {
			return errors.New("no database configured: set DATABASE_URL or [postgres] url")
		}

		ctx := cmd.Context()
		rows, err := dataset.CSVSource{FS: os.DirFS(dataDir)}.Rows(ctx, file)
		if err != nil {
			return err
		}
		logVerbose("Read %d rows from %s", len(rows), file)

		database, err := db.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}

		name := importName
		if name == "" {
			name = file
		}
		playlist := &db.Playlist{ID: playlistID, Name: name}
		if err := database.Playlists().Upsert(ctx, playlist); err != nil {
			return err
		}
		if err := database.Songs().ReplaceForPlaylist(ctx, playlistID, rows); err != nil {
			return err
		}

		stored, err := database.Playlists().Get(ctx, playlistID)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d rows into playlist %q (%s)\n", stored.SongCount, stored.ID, stored.Name)
		return nil
	},
}

var playlistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List playlists stored in Postgres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Postgres.URL == "" {
			return errors.New("no database configured: set DATABASE_URL or [postgres] url")
		}

		ctx := cmd.Context()
		database, err := db.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		playlists, err := database.Playlists().List(ctx)
		if err != nil {
			return err
		}
		if len(playlists) == 0 {
			fmt.Println("No playlists imported")
			return nil
		}
		for _, p := range playlists {
			fmt.Printf("%-20s %-32s %4d songs  %s\n", p.ID, p.Name, p.SongCount, p.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "Playlist name (defaults to the file name)")
	rootCmd.AddCommand(importCmd, playlistsCmd)
}
