// Package search runs title searches as the query changes, cancelling
// whatever request the previous query started.
//
// # Overview
//
// Every change of the query text starts a new search cycle. A cycle owns a
// cancellable context and a generation number. Starting the next cycle
// cancels the previous context and bumps the generation, so at most one
// result can ever be committed: the one belonging to the newest query.
//
// The Fetcher does not block. SetQuery returns the new State at once together
// with a Job; the caller runs the Job wherever blocking is allowed (in the
// TUI that is a tea.Cmd) and feeds the Result back through Apply.
//
//	SetQuery("gla")
//	    │  cancel previous ctx, gen++
//	    ├─> State{Status: Loading}
//	    └─> Job ──(goroutine)──> Searcher.Search(ctx, "gla")
//	                                   │
//	Apply(Result) <────────────────────┘
//	    │  gen matches? ctx not cancelled?
//	    └─> State{Status: Success, Results: ...}
//
// # Query Gate
//
// Queries shorter than the minimum length (three runes after trimming by
// default, see WithMinLength) never reach the network. SetQuery returns a
// Success state with no results and a nil Job. The previous cycle is still
// cancelled, so a slow response for "glad" cannot land after the user has
// deleted back to "gl".
//
// # State Machine
//
//	Idle ──SetQuery(long)──> Loading ──Apply(ok)────────> Success
//	                            │    ──Apply(not found)─> Error (API text)
//	                            │    ──Apply(failure)───> Error (generic text)
//	                            └────Apply(cancelled)───> Idle
//	any ──SetQuery(short)──> Success (empty)
//	Loading ──Cancel()──> Idle
//
// Loading is cleared on every terminal path. Results from the previous query
// stay visible while the next one loads and are cleared on error.
//
// # Errors
//
// Cancellation is not an error: a Result whose error matches
// context.Canceled never sets the error state. An application-level miss
// (omdb.ErrNotFound) shows the API's message; any other failure shows
// "Something went wrong. Please try again...". The underlying error is logged
// with the cycle's request id.
//
// # New-Search Callback
//
// WithOnNewSearch registers a function that runs synchronously at the start
// of every cycle, short ones included. The TUI uses it to close the open
// movie whenever the query changes.
//
// # Thread Safety
//
// Fetcher methods may be called from any goroutine. Jobs capture everything
// they need and never touch Fetcher state; only Apply commits.
//
// # Usage Example
//
//	f := search.New(client, search.WithLogger(logger))
//	st, job := f.SetQuery(ctx, "gladiator")
//	render(st) // Loading
//	if job != nil {
//		st = f.Apply(job())
//		render(st) // Success or Error
//	}
package search
