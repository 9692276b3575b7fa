// Package omdb provides an HTTP client for the OMDb movie database API.
//
// # Overview
//
// The package covers the two read-only queries popcorn needs and the types
// they decode into:
//
//   - client.go: Client, Options, request handling and caches
//   - types.go: SearchResult, Movie and the error types
//
// # Client Usage
//
//	client, err := omdb.NewClient(omdb.Options{APIKey: key})
//	if err != nil {
//		return err
//	}
//
//	results, err := client.Search(ctx, "gladiator")
//	movie, err := client.Movie(ctx, results[0].ImdbID)
//
// # Endpoints
//
// Both queries go to the configured base URL:
//
//   - GET <base>?apikey=<key>&s=<query>: title search, decoded into []SearchResult
//   - GET <base>?apikey=<key>&i=<imdb id>: full record, decoded into Movie
//
// Search trims the query before sending it. Every request sets
// Accept: application/json and User-Agent: popcorn/0.1 and is bounded by the
// http.Client timeout (Options.Timeout, default 10 seconds).
//
// # Errors
//
// The client distinguishes three failure kinds:
//
//   - Transport errors: wrapped with "execute request: ..."; context
//     cancellation is returned unwrapped so callers can ignore it.
//   - HTTP errors: *StatusError for any 4xx/5xx response.
//   - Application errors: the API answers 200 with Response "False". These
//     come back as *APIError carrying the API's message and match ErrNotFound.
//
// Check them with errors.Is and errors.As:
//
//	switch {
//	case errors.Is(err, context.Canceled):
//		// superseded, ignore
//	case errors.Is(err, omdb.ErrNotFound):
//		show(err.Error()) // "Movie not found!"
//	default:
//		show("Something went wrong. Please try again...")
//	}
//
// # Caching
//
// Two optional caches, both off unless Options enables them:
//
//   - DetailCacheSize > 0: Movie results are kept in a fixed-size LRU.
//   - SearchCacheTTL > 0: Search results are kept per lowercased query for
//     the TTL.
//
// Failures are never cached, and cached slices are cloned on the way out.
//
// # Shared Requests
//
// Concurrent Movie lookups of the same id share one HTTP request. The shared
// request does not inherit any single caller's cancellation; each caller
// stops waiting when its own context ends, and the others still receive the
// record. A caller that gave up therefore never poisons a later lookup of
// the same id.
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package omdb
