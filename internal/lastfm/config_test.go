package lastfm

import (
	"errors"
	"testing"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		rateLimit float64
		wantRate  float64
		wantErr   error
	}{
		{"valid key and rate", "abc123", 2, 2, nil},
		{"default rate", "abc123", 0, DefaultRateLimit, nil},
		{"missing key", "", 5, 0, ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.key, tt.rateLimit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewConfig() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if cfg.APIKey != tt.key {
				t.Errorf("APIKey = %q, want %q", cfg.APIKey, tt.key)
			}
			if cfg.RateLimit != tt.wantRate {
				t.Errorf("RateLimit = %v, want %v", cfg.RateLimit, tt.wantRate)
			}
		})
	}
}
