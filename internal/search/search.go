package search

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

// GenericError is shown for any failure other than an empty result set.
const GenericError = "Something went wrong. Please try again..."

// DefaultMinLength is the shortest trimmed query that triggers a request.
const DefaultMinLength = 3

// Searcher is the remote search endpoint.
type Searcher interface {
	Search(ctx context.Context, query string) ([]omdb.SearchResult, error)
}

// Status is the lifecycle of the current search cycle.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// State is what the view renders.
type State struct {
	Query   string
	Status  Status
	Results []omdb.SearchResult
	Err     string
}

// Loading reports whether a request is in flight.
func (s State) Loading() bool {
	return s.Status == Loading
}

// Result is produced by a Job and handed back to Apply.
type Result struct {
	gen       uint64
	requestID string
	query     string
	results   []omdb.SearchResult
	err       error
	elapsed   time.Duration
}

// Job performs the request for one cycle. It blocks and is meant to run
// off the UI goroutine.
type Job func() Result

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMinLength overrides DefaultMinLength.
func WithMinLength(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.minLength = n
		}
	}
}

// WithOnNewSearch registers a callback run at the start of every cycle.
func WithOnNewSearch(fn func()) Option {
	return func(f *Fetcher) { f.onNewSearch = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Fetcher owns the search cycle. Only the latest cycle's result is ever
// committed.
type Fetcher struct {
	searcher    Searcher
	minLength   int
	onNewSearch func()
	logger      *slog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
}

// New builds a Fetcher around searcher.
func New(searcher Searcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		searcher:  searcher,
		minLength: DefaultMinLength,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
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

// SetQuery starts a new cycle for q. The previous cycle is cancelled. A
// query shorter than the minimum clears results and returns a nil Job.
func (f *Fetcher) SetQuery(parent context.Context, q string) (State, Job) {
	if f.onNewSearch != nil {
		f.onNewSearch()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelLocked()
	f.gen++
	gen := f.gen

	trimmed := strings.TrimSpace(q)
	if len([]rune(trimmed)) < f.minLength {
		f.state = State{Query: q, Status: Success}
		return f.state, nil
	}

	ctx, cancel := context.WithCancel(parent)
	f.cancel = cancel
	f.state = State{Query: q, Status: Loading, Results: f.state.Results}

	requestID := uuid.NewString()
	logger := f.logger.With("request_id", requestID, "query", trimmed)
	logger.Debug("search started")

	searcher := f.searcher
	job := func() Result {
		defer cancel()
		start := time.Now()
		results, err := searcher.Search(ctx, trimmed)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		return Result{
			gen:       gen,
			requestID: requestID,
			query:     trimmed,
			results:   results,
			err:       err,
			elapsed:   time.Since(start),
		}
	}
	return f.state, job
}

// Apply commits r if it belongs to the current cycle and returns the
// resulting state. Stale and cancelled results leave no error behind.
func (f *Fetcher) Apply(r Result) State {
	f.mu.Lock()
	defer f.mu.Unlock()

	logger := f.logger.With("request_id", r.requestID, "query", r.query)
	if r.gen != f.gen {
		logger.Debug("stale search result dropped")
		return f.state
	}
	f.cancel = nil

	switch {
	case r.err == nil:
		f.state.Status = Success
		f.state.Results = r.results
		f.state.Err = ""
		logger.Info("search finished", "results", len(r.results), "elapsed", r.elapsed)
	case errors.Is(r.err, context.Canceled):
		f.state.Status = Idle
		f.state.Err = ""
		logger.Debug("search cancelled")
	case errors.Is(r.err, omdb.ErrNotFound):
		f.state.Status = Error
		f.state.Results = nil
		f.state.Err = r.err.Error()
		logger.Info("search found nothing", "message", r.err.Error())
	default:
		f.state.Status = Error
		f.state.Results = nil
		f.state.Err = GenericError
		logger.Warn("search failed", "error", r.err)
	}
	return f.state
}

// Cancel aborts the in-flight cycle, if any.
func (f *Fetcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel == nil {
		return
	}
	f.cancelLocked()
	f.gen++
	if f.state.Status == Loading {
		f.state.Status = Idle
	}
}

func (f *Fetcher) cancelLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
