package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Searcher runs title searches.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// MovieFetcher loads a single movie by IMDb id.
type MovieFetcher interface {
	Movie(ctx context.Context, id string) (Movie, error)
}

// API is implemented by *Client and can be faked in tests.
type API interface {
	Searcher
	MovieFetcher
}

var _ API = (*Client)(nil)

// Client talks to the OMDb HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string

	details  *lru.Cache[string, Movie]
	searches *cache.Cache
	inflight singleflight.Group
}

const (
	DefaultBaseURL        = "https://www.omdbapi.com/"
	DefaultRequestTimeout = 10 * time.Second
	defaultUserAgent      = "popcorn/0.1"
)

// Options configures NewClient. Zero values pick the defaults; a zero
// DetailCacheSize or SearchCacheTTL disables that cache.
type Options struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	DetailCacheSize int
	SearchCacheTTL  time.Duration
	HTTPClient      *http.Client
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	c := &Client{
		baseURL:   base,
		apiKey:    strings.TrimSpace(opts.APIKey),
		http:      httpClient,
		userAgent: defaultUserAgent,
	}
	if opts.DetailCacheSize > 0 {
		details, err := lru.New[string, Movie](opts.DetailCacheSize)
		if err != nil {
			return nil, fmt.Errorf("detail cache: %w", err)
		}
		c.details = details
	}
	if opts.SearchCacheTTL > 0 {
		c.searches = cache.New(opts.SearchCacheTTL, 2*opts.SearchCacheTTL)
	}
	return c, nil
}

// Search returns the movies matching query. An API "False" response is
// returned as *APIError, which matches ErrNotFound.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	cacheKey := strings.ToLower(query)
	if c.searches != nil {
		if cached, ok := c.searches.Get(cacheKey); ok {
			return cloneResults(cached.([]SearchResult)), nil
		}
	}

	values := url.Values{}
	values.Set("s", query)
	var payload searchResponse
	if err := c.get(ctx, values, &payload); err != nil {
		return nil, err
	}
	if isFalse(payload.Response) {
		return nil, &APIError{Message: payload.Error}
	}
	if c.searches != nil {
		c.searches.SetDefault(cacheKey, cloneResults(payload.Search))
	}
	return payload.Search, nil
}

// Movie returns the full record for id. Concurrent lookups of the same id
// share one request; successful lookups are cached when enabled.
func (c *Client) Movie(ctx context.Context, id string) (Movie, error) {
	if c == nil {
		return Movie{}, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Movie{}, fmt.Errorf("movie id required")
	}
	if c.details != nil {
		if movie, ok := c.details.Get(id); ok {
			return movie, nil
		}
	}

	// The shared request outlives any one caller; each caller stops waiting
	// when its own context ends.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(id, func() (any, error) {
		values := url.Values{}
		values.Set("i", id)
		var movie Movie
		if err := c.get(flightCtx, values, &movie); err != nil {
			return Movie{}, err
		}
		if isFalse(movie.Response) {
			return Movie{}, &APIError{Message: movie.Error}
		}
		if c.details != nil {
			c.details.Add(id, movie)
		}
		return movie, nil
	})
	select {
	case <-ctx.Done():
		return Movie{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Movie{}, res.Err
		}
		return res.Val.(Movie), nil
	}
}

func (c *Client) get(ctx context.Context, values url.Values, dest any) error {
	if c.apiKey != "" {
		values.Set("apikey", c.apiKey)
	}
	reqURL := *c.baseURL
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("omdb returned status %d", e.Code)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", raw)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func cloneResults(in []SearchResult) []SearchResult {
	if in == nil {
		return nil
	}
	out := make([]SearchResult, len(in))
	copy(out, in)
	return out
}
