// Package lastfm looks up Last.fm tags for tracks that arrive without a genre.
package lastfm

import "errors"

// ErrMissingAPIKey is returned when no Last.fm API key is configured.
var ErrMissingAPIKey = errors.New("missing LASTFM_API_KEY")

// DefaultRateLimit is Last.fm's documented ceiling of five requests per second.
const DefaultRateLimit = 5.0

// Config holds Last.fm API configuration.
type Config struct {
	APIKey    string
	RateLimit float64 // requests per second
}

// NewConfig validates the key and fills in the default rate limit.
func NewConfig(apiKey string, rateLimit float64) (*Config, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}
	return &Config{APIKey: apiKey, RateLimit: rateLimit}, nil
}
