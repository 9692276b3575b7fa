package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("expected error for missing host")
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts.BaseURL = server.URL
	c, err := NewClient(opts)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestClient_SearchEncodesQueryAndDecodes(t *testing.T) {
	t.Parallel()

	var gotQuery, gotKey, gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("s")
		gotKey = r.URL.Query().Get("apikey")
		gotUserAgent = r.Header.Get("User-Agent")
		_ = json.NewEncoder(w).Encode(searchResponse{
			Response: "True",
			Search:   []SearchResult{{ImdbID: "tt0172495", Title: "Gladiator", Year: "2000", Poster: "N/A"}},
		})
	}, Options{APIKey: "secret"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	results, err := c.Search(ctx, "  gla ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Gladiator" {
		t.Fatalf("results = %#v, want one Gladiator", results)
	}
	if results[0].Poster != "N/A" {
		t.Fatalf("Poster = %q, want N/A", results[0].Poster)
	}
	if gotQuery != "gla" {
		t.Fatalf("s = %q, want gla", gotQuery)
	}
	if gotKey != "secret" {
		t.Fatalf("apikey = %q, want secret", gotKey)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
}

func TestClient_SearchNotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}, Options{})

	_, err := c.Search(context.Background(), "zzzzzz")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err.Error() != "Movie not found!" {
		t.Fatalf("message = %q, want API text", err.Error())
	}
}

func TestClient_HTTPFailure(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{})

	_, err := c.Search(context.Background(), "gladiator")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("err = %v, want StatusError 500", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("HTTP failure must not match ErrNotFound")
	}
}

func TestClient_SearchCancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, Options{})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Search(ctx, "gladiator")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestClient_MovieCachesSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("i") != "tt1" {
			t.Errorf("i = %q, want tt1", r.URL.Query().Get("i"))
		}
		_, _ = w.Write([]byte(`{"Response":"True","imdbID":"tt1","Title":"X","Runtime":"155 min","imdbRating":"8.5"}`))
	}, Options{DetailCacheSize: 4})

	for i := 0; i < 3; i++ {
		movie, err := c.Movie(context.Background(), "tt1")
		if err != nil {
			t.Fatalf("Movie returned error: %v", err)
		}
		if movie.RuntimeMinutes() != 155 || movie.Rating() != 8.5 {
			t.Fatalf("movie = %#v, want runtime 155 rating 8.5", movie)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
}

func TestClient_MovieSharedRequestOutlivesCancelledCaller(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 4)
	gate := make(chan struct{})
	var once sync.Once
	release := func() { once.Do(func() { close(gate) }) }
	defer release()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-gate
		_ = json.NewEncoder(w).Encode(Movie{Response: "True", ImdbID: "tt1", Title: "Gladiator"})
	}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Movie(ctx, "tt1")
		firstErr <- err
	}()
	<-started
	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller err = %v, want context.Canceled", err)
	}

	type result struct {
		movie Movie
		err   error
	}
	second := make(chan result, 1)
	go func() {
		movie, err := c.Movie(context.Background(), "tt1")
		second <- result{movie, err}
	}()
	release()

	select {
	case res := <-second:
		if res.err != nil || res.movie.Title != "Gladiator" {
			t.Fatalf("second caller = %#v, %v; want Gladiator", res.movie, res.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("second caller never returned")
	}
}

func TestClient_MovieWithoutCacheRefetches(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"Response":"True","imdbID":"tt1","Title":"X"}`))
	}, Options{})

	for i := 0; i < 2; i++ {
		if _, err := c.Movie(context.Background(), "tt1"); err != nil {
			t.Fatalf("Movie returned error: %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("requests = %d, want 2", got)
	}
}

func TestClient_MovieNotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	}, Options{DetailCacheSize: 4})

	for i := 0; i < 2; i++ {
		if _, err := c.Movie(context.Background(), "bogus"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("requests = %d, want 2", got)
	}
}

func TestClient_SearchCacheTTL(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"Response":"True","Search":[{"imdbID":"tt1","Title":"X"}]}`))
	}, Options{SearchCacheTTL: time.Minute})

	first, err := c.Search(context.Background(), "Matrix")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	first[0].Title = "mutated"
	second, err := c.Search(context.Background(), "matrix")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if second[0].Title != "X" {
		t.Fatalf("cached result mutated: %q", second[0].Title)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
}
