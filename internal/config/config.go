// Package config loads the explorer's TOML configuration.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds all user-facing configuration for the explorer.
type Config struct {
	Data     DataConfig      `toml:"data"`
	Server   ServerConfig    `toml:"server"`
	Explore  ExploreConfig   `toml:"explore"`
	Postgres PostgresConfig  `toml:"postgres"`
	Spotify  SpotifyConfig   `toml:"spotify"`
	LastFM   LastFMConfig    `toml:"lastfm"`
	Datasets []DatasetConfig `toml:"datasets" validate:"dive"`
}

type DataConfig struct {
	Dir string `toml:"dir" validate:"required"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port" validate:"min=1,max=65535"`
}

type ExploreConfig struct {
	DefaultDataset string `toml:"default_dataset" validate:"required"`
	ResultLimit    int    `toml:"result_limit" validate:"min=1"`
	Clusters       int    `toml:"clusters" validate:"min=1"`
	MinClusterSize int    `toml:"min_cluster_size" validate:"min=1"`
}

type PostgresConfig struct {
	URL string `toml:"url"`
}

// SpotifyConfig carries app credentials. They are normally supplied through
// SPOTIFY_ID and SPOTIFY_SECRET rather than the file.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

type LastFMConfig struct {
	APIKey      string  `toml:"api_key"`
	RateLimit   float64 `toml:"rate_limit" validate:"gt=0"`
	Concurrency int     `toml:"concurrency" validate:"min=1"`
	Enrich      bool    `toml:"enrich"`
}

// DatasetConfig describes one selectable dataset.
type DatasetConfig struct {
	ID       string `toml:"id" validate:"required"`
	Label    string `toml:"label" validate:"required"`
	Source   string `toml:"source" validate:"oneof=csv postgres spotify"`
	Location string `toml:"location" validate:"required"`
}

// DefaultDatasets mirrors the three workout playlists plus the full
// dataset behind the vibe, zone and workout type views.
func DefaultDatasets() []DatasetConfig {
	return []DatasetConfig{
		{ID: "low", Label: "Low Intensity Workout", Source: "csv", Location: "playlist 1.csv"},
		{ID: "medium", Label: "Medium Intensity Workout", Source: "csv", Location: "playlist 2.csv"},
		{ID: "high", Label: "High Intensity Workout", Source: "csv", Location: "playlist 3.csv"},
		{ID: "all", Label: "All Songs", Source: "csv", Location: "spotify_data.csv"},
	}
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:     DataConfig{Dir: "data"},
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8080},
		Explore:  ExploreConfig{DefaultDataset: "low", ResultLimit: 20, Clusters: 3, MinClusterSize: 3},
		LastFM:   LastFMConfig{RateLimit: 5.0, Concurrency: 5},
		Datasets: DefaultDatasets(),
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error. Secrets in the environment override
// the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}

	// A [[datasets]] table in the file replaces the defaults.
	cfg.Datasets = nil
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if !md.IsDefined("datasets") {
		cfg.Datasets = DefaultDatasets()
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SPOTIFY_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		c.LastFM.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Postgres.URL = v
	}
}

// Validate checks field constraints and that the default dataset exists.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := make(map[string]bool, len(c.Datasets))
	for _, d := range c.Datasets {
		if seen[d.ID] {
			return fmt.Errorf("invalid config: duplicate dataset %q", d.ID)
		}
		seen[d.ID] = true
	}
	if !seen[c.Explore.DefaultDataset] {
		return fmt.Errorf("invalid config: default dataset %q is not configured", c.Explore.DefaultDataset)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
