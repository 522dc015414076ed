// Package auth provides app-only Spotify authentication using the OAuth2
// client credentials flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrMissingCredentials is returned when the Spotify client ID or secret is empty.
var ErrMissingCredentials = errors.New("missing SPOTIFY_ID or SPOTIFY_SECRET")

// Authenticator obtains app access tokens for reading public playlists.
type Authenticator struct {
	config *clientcredentials.Config
	cache  *TokenCache
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithTokenURL overrides the Spotify token endpoint.
func WithTokenURL(url string) Option {
	return func(a *Authenticator) {
		a.config.TokenURL = url
	}
}

// WithTokenCache reuses tokens stored in cache.
func WithTokenCache(cache *TokenCache) Option {
	return func(a *Authenticator) {
		a.cache = cache
	}
}

// New creates an Authenticator. Returns ErrMissingCredentials if either
// credential is empty.
func New(clientID, clientSecret string, opts ...Option) (*Authenticator, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	a := &Authenticator{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyauth.TokenURL,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Token returns a valid app token, from the cache when possible.
func (a *Authenticator) Token(ctx context.Context) (*oauth2.Token, error) {
	if a.cache != nil {
		cached, err := a.cache.Load()
		if err != nil {
			log.Printf("Warning: ignoring token cache: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	token, err := a.config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("requesting app token: %w", err)
	}

	if a.cache != nil {
		if err := a.cache.Save(token); err != nil {
			log.Printf("Warning: failed to cache token: %v", err)
		}
	}
	return token, nil
}

// Client returns a Spotify client that renews its token as it expires.
func (a *Authenticator) Client(ctx context.Context, opts ...spotify.ClientOption) (*spotify.Client, error) {
	token, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}

	src := oauth2.ReuseTokenSource(token, a.config.TokenSource(ctx))
	opts = append([]spotify.ClientOption{spotify.WithRetry(true)}, opts...)
	return spotify.New(oauth2.NewClient(ctx, src), opts...), nil
}
