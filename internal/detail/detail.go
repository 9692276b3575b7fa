package detail

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/popcorn/internal/omdb"
)

// DefaultTitle is the window title when no detail view is open.
const DefaultTitle = "popcorn"

const genericError = "Something went wrong. Please try again..."

// MovieFetcher is the remote detail endpoint.
type MovieFetcher interface {
	Movie(ctx context.Context, id string) (omdb.Movie, error)
}

// Config toggles behaviour that is off by default. With CancelSuperseded
// off, a slow response for a previously selected id may still overwrite the
// view. With SurfaceErrors off, failures are only logged.
type Config struct {
	CancelSuperseded bool
	SurfaceErrors    bool
}

// State is the detail view's data.
type State struct {
	ID      string
	Movie   omdb.Movie
	Loading bool
	Loaded  bool
	Err     string
}

// Open reports whether a movie is selected.
func (s State) Open() bool {
	return s.ID != ""
}

// Title is the window title for s.
func (s State) Title() string {
	title := strings.TrimSpace(s.Movie.Title)
	if !s.Open() || title == "" {
		return DefaultTitle
	}
	return "Movie | " + title
}

// Result is produced by a Job and handed back to Apply.
type Result struct {
	gen       uint64
	id        string
	requestID string
	movie     omdb.Movie
	err       error
	elapsed   time.Duration
}

// ID is the movie id the result was requested for.
func (r Result) ID() string {
	return r.id
}

// Job performs one detail request.
type Job func() Result

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Fetcher tracks the selected id and its record.
type Fetcher struct {
	api    MovieFetcher
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	gen       uint64
	closedGen uint64 // requests at or below this generation predate the last Close
	cancel    context.CancelFunc
	state     State
}

// New builds a Fetcher.
func New(api MovieFetcher, cfg Config, opts ...Option) *Fetcher {
	f := &Fetcher{
		api:    api,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current state.
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Select makes id current and returns the job that loads it. Selecting the
// id that is already current returns a nil Job.
func (f *Fetcher) Select(parent context.Context, id string) (State, Job) {
	id = strings.TrimSpace(id)

	f.mu.Lock()
	defer f.mu.Unlock()

	if id == "" {
		f.closeLocked()
		return f.state, nil
	}
	if id == f.state.ID {
		return f.state, nil
	}

	if f.cfg.CancelSuperseded {
		f.cancelLocked()
	}
	f.gen++
	gen := f.gen

	ctx, cancel := context.WithCancel(parent)
	f.cancel = cancel
	f.state = State{ID: id, Loading: true}

	requestID := uuid.NewString()
	f.logger.Debug("detail requested", "id", id, "request_id", requestID)

	api := f.api
	job := func() Result {
		defer cancel()
		start := time.Now()
		movie, err := api.Movie(ctx, id)
		return Result{
			gen:       gen,
			id:        id,
			requestID: requestID,
			movie:     movie,
			err:       err,
			elapsed:   time.Since(start),
		}
	}
	return f.state, job
}

// Apply commits r and returns the resulting state.
func (f *Fetcher) Apply(r Result) State {
	f.mu.Lock()
	defer f.mu.Unlock()

	logger := f.logger.With("id", r.id, "request_id", r.requestID)
	if !f.state.Open() || r.gen <= f.closedGen {
		logger.Debug("detail result dropped after close")
		return f.state
	}
	stale := r.gen != f.gen
	if stale && f.cfg.CancelSuperseded {
		logger.Debug("stale detail result dropped")
		return f.state
	}
	if !stale {
		f.cancel = nil
	}

	f.state.Loading = false
	switch {
	case r.err == nil:
		f.state.Movie = r.movie
		f.state.Loaded = true
		f.state.Err = ""
		logger.Info("detail loaded", "title", r.movie.Title, "elapsed", r.elapsed, "stale", stale)
	case errors.Is(r.err, context.Canceled):
		logger.Debug("detail request cancelled")
	default:
		logger.Warn("detail request failed", "error", r.err)
		if f.cfg.SurfaceErrors {
			f.state.Err = errorMessage(r.err)
		}
	}
	return f.state
}

// Close clears the selection. In-flight requests are cancelled when
// CancelSuperseded is set; their results are dropped either way.
func (f *Fetcher) Close() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeLocked()
	return f.state
}

func (f *Fetcher) closeLocked() {
	if f.cfg.CancelSuperseded {
		f.cancelLocked()
	}
	f.cancel = nil
	f.gen++
	f.closedGen = f.gen
	f.state = State{}
}

func (f *Fetcher) cancelLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func errorMessage(err error) string {
	if errors.Is(err, omdb.ErrNotFound) {
		return err.Error()
	}
	return genericError
}
