// Package detail loads the full record for the selected movie and tracks the
// rating the user is giving it.
//
// # Overview
//
// A Fetcher holds at most one selected movie id. Select makes an id current
// and returns a Job that loads it; Apply commits the Job's Result; Close
// clears the selection. Like internal/search, the Fetcher never blocks: the
// caller decides where Jobs run.
//
//	Select("tt1") ──> State{ID: tt1, Loading: true} + Job
//	Apply(Result) ──> State{ID: tt1, Movie: ..., Loaded: true}
//	Close()       ──> State{} (view closed, title restored)
//
// Selecting the id that is already current returns a nil Job, so the record
// is fetched once per selection rather than once per render.
//
// # Configuration
//
// Config carries two switches, both off by default:
//
//   - CancelSuperseded: selecting a new id cancels the request for the old
//     one, and a late result for the old id is dropped.
//   - SurfaceErrors: failed loads set State.Err instead of only being logged.
//
// With CancelSuperseded off, a result for a previous id that arrives while
// the view is still open is committed under the current id. Results for
// requests started before a Close are always dropped, whichever way the
// switch is set: a closed and reopened view only ever shows its own data.
//
// # Window Title
//
// State.Title returns "Movie | <title>" once a movie is loaded and
// DefaultTitle otherwise. The TUI forwards it with tea.SetWindowTitle after
// every change, which restores the default title when the view closes.
//
// # Rating
//
// Rating is the value of the star control shown for a movie that is not yet
// on the watched list. Set ignores values outside 0..10 and unchanged values.
// Every change to a nonzero value counts as one decision; the count is stored
// with the watched entry. CanConfirm reports whether the rating is high
// enough to add the movie.
//
//	var r detail.Rating
//	r.Set(5)   // decisions 1
//	r.Step(1)  // 6, decisions 2
//	r.Set(6)   // unchanged, still 2
//
// # Errors
//
// Cancelled loads are logged at debug level and leave the state alone. With
// SurfaceErrors on, a not-found miss shows the API's message and every other
// failure shows the same generic text as the search box.
//
// # Thread Safety
//
// Fetcher methods are guarded by a mutex. Rating is a plain value owned by
// the caller.
package detail
