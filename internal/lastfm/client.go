package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	baseURL   = "http://ws.audioscrobbler.com/2.0/"
	userAgent = "workout-music-explorer/1.0"
)

// Last.fm API error codes.
const (
	errCodeInvalidParams = 6
	errCodeInvalidAPIKey = 10
	errCodeRateLimited   = 29
)

// Sentinel errors.
var (
	// ErrRateLimited is returned when the API rate limit is exceeded after retries.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidAPIKey is returned when the API key is invalid.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// errNotFound marks a track or artist Last.fm does not know.
	errNotFound = errors.New("not found")
)

// Client is a Last.fm API client with caching and rate limiting.
// It is safe for concurrent use.
type Client struct {
	apiKey      string
	httpClient  *http.Client
	baseURL     string
	limiter     *rate.Limiter
	retryDelays []time.Duration

	// key = "track:{artist}:{track}" or "artist:{artist}"
	cache   map[string][]Tag
	cacheMu sync.RWMutex
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryDelays sets the backoff between rate-limited attempts.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(c *Client) { c.retryDelays = delays }
}

// NewClient creates a new Last.fm API client from the provided configuration.
func NewClient(cfg *Config, opts ...Option) *Client {
	c := &Client{
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		retryDelays: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		cache:       make(map[string][]Tag),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTags fetches tags for a track, falling back to artist tags if the track
// has none or is unknown. Returns an empty slice (not nil) if no tags are found.
func (c *Client) GetTags(ctx context.Context, artist, track string) ([]Tag, error) {
	tags, err := c.cached(ctx, "track:"+artist+":"+track, url.Values{
		"method": {"track.getTopTags"},
		"artist": {artist},
		"track":  {track},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching track tags: %w", err)
	}
	if len(tags) > 0 {
		return tags, nil
	}

	tags, err = c.cached(ctx, "artist:"+artist, url.Values{
		"method": {"artist.getTopTags"},
		"artist": {artist},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching artist tags: %w", err)
	}
	return tags, nil
}

// TopTag returns the most popular tag for a track, lower-cased.
// ok is false when Last.fm knows no tags for the track or its artist.
func (c *Client) TopTag(ctx context.Context, artist, track string) (tag string, ok bool, err error) {
	tags, err := c.GetTags(ctx, artist, track)
	if err != nil {
		return "", false, err
	}
	for _, t := range tags {
		if name := strings.ToLower(strings.TrimSpace(t.Name)); name != "" {
			return name, true, nil
		}
	}
	return "", false, nil
}

func (c *Client) cached(ctx context.Context, key string, params url.Values) ([]Tag, error) {
	c.cacheMu.RLock()
	tags, ok := c.cache[key]
	c.cacheMu.RUnlock()
	if ok {
		return tags, nil
	}

	params.Set("autocorrect", "1")
	params.Set("format", "json")
	params.Set("api_key", c.apiKey)

	body, err := c.doRequest(ctx, params)
	switch {
	case errors.Is(err, errNotFound):
		// An unknown track or artist has no tags.
		tags = []Tag{}
	case err != nil:
		return nil, err
	default:
		var resp topTagsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("parsing tags response: %w", err)
		}
		tags = resp.TopTags.Tag
		if tags == nil {
			tags = []Tag{}
		}
	}

	c.cacheMu.Lock()
	c.cache[key] = tags
	c.cacheMu.Unlock()

	return tags, nil
}

// doRequest performs a rate-limited GET, retrying with backoff while
// Last.fm reports the rate limit.
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= len(c.retryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelays[attempt-1]):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.doSingleRequest(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func (c *Client) doSingleRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != 0 {
		switch apiErr.Error {
		case errCodeRateLimited:
			return nil, ErrRateLimited
		case errCodeInvalidAPIKey:
			return nil, ErrInvalidAPIKey
		case errCodeInvalidParams:
			return nil, fmt.Errorf("%w: %s", errNotFound, apiErr.Message)
		default:
			return nil, fmt.Errorf("API error %d: %s", apiErr.Error, apiErr.Message)
		}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return body, nil
}
