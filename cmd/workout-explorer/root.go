package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justestif/go-workout-music-explorer/internal/auth"
	"github.com/justestif/go-workout-music-explorer/internal/clustering"
	"github.com/justestif/go-workout-music-explorer/internal/config"
	"github.com/justestif/go-workout-music-explorer/internal/dataset"
	"github.com/justestif/go-workout-music-explorer/internal/db"
	"github.com/justestif/go-workout-music-explorer/internal/explorer"
	"github.com/justestif/go-workout-music-explorer/internal/lastfm"
	"github.com/justestif/go-workout-music-explorer/internal/metrics"
	"github.com/justestif/go-workout-music-explorer/internal/spotify"
	"github.com/justestif/go-workout-music-explorer/internal/tags"
)

var (
	dataDir    string
	verbose    bool
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "workout-explorer",
	Short:         "Explore workout playlists by mood, genre, texture, danceability and tempo",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !cmd.Flags().Changed("data-dir") {
			dataDir = cfg.Data.Dir
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory holding the dataset CSV files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// deps is everything a command needs to reach the datasets.
type deps struct {
	explorer *explorer.Service
	metrics  *metrics.Registry
	close    func()
}

// setup wires the configured dataset sources into an explorer service.
// Postgres and Spotify sources are registered only when configured; a
// dataset that needs a missing source fails when it is loaded.
func setup(ctx context.Context) (*deps, error) {
	opts := []dataset.CatalogOption{
		dataset.WithSource(dataset.KindCSV, dataset.CSVSource{FS: os.DirFS(dataDir)}),
	}
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Postgres.URL != "" {
		database, err := db.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		closers = append(closers, database.Close)
		opts = append(opts, dataset.WithSource(dataset.KindPostgres, dataset.PostgresSource{Store: database.Songs()}))
		logVerbose("Postgres source enabled")
	}

	if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
		client, err := spotifyClient(ctx)
		if err != nil {
			closeAll()
			return nil, err
		}
		opts = append(opts, dataset.WithSource(dataset.KindSpotify, dataset.SpotifySource{Client: client}))
		logVerbose("Spotify source enabled")
	}

	if cfg.LastFM.Enrich {
		lfmCfg, err := lastfm.NewConfig(cfg.LastFM.APIKey, cfg.LastFM.RateLimit)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("genre enrichment: %w", err)
		}
		enricher := tags.NewEnricher(lastfm.NewClient(lfmCfg), tags.WithConcurrency(cfg.LastFM.Concurrency))
		opts = append(opts, dataset.WithGenreFiller(enricher))
		logVerbose("Last.fm genre enrichment enabled")
	}

	reg := metrics.NewRegistry()
	svc := explorer.New(
		dataset.NewCatalog(cfg.Datasets, opts...),
		explorer.WithMetrics(reg),
		explorer.WithClusterConfig(clustering.Config{
			NumClusters:    cfg.Explore.Clusters,
			MinClusterSize: cfg.Explore.MinClusterSize,
		}),
	)

	return &deps{
		explorer: svc,
		metrics:  reg,
		close:    closeAll,
	}, nil
}

func spotifyClient(ctx context.Context) (*spotify.Client, error) {
	var opts []auth.Option
	if cache, err := auth.DefaultTokenCache(); err == nil {
		opts = append(opts, auth.WithTokenCache(cache))
	} else {
		logVerbose("Token cache unavailable: %v", err)
	}

	authenticator, err := auth.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, opts...)
	if err != nil {
		return nil, err
	}
	api, err := authenticator.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("authenticating with spotify: %w", err)
	}
	return spotify.New(api), nil
}

// loadSnapshot sets up the explorer and loads one dataset.
func loadSnapshot(ctx context.Context, id string) (*deps, *explorer.Snapshot, error) {
	d, err := setup(ctx)
	if err != nil {
		return nil, nil, err
	}
	snap, err := d.explorer.Load(ctx, id)
	if err != nil {
		d.close()
		return nil, nil, err
	}
	logVerbose("Loaded %d songs from %q (%d rows skipped)", len(snap.Songs), id, snap.Skipped)
	return d, snap, nil
}
