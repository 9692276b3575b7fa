// Package config loads popcorn's configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. TOML file at the given path, or ~/.config/popcorn/config.toml
//  3. OMDB_API_KEY and OMDB_API_BASE from the environment
//
// A missing file is not an error. Empty or whitespace-only string values in
// the file fall back to the default. Paths accept a leading ~ and are made
// absolute.
//
// LoadDotEnv can be called first to populate the environment from a .env
// file; it never overrides variables that are already set.
//
// # File Format
//
//	api_base = "https://www.omdbapi.com/"
//	api_key = "..."
//	data_dir = "~/.local/share/popcorn"
//	log_dir = "~/.local/state/popcorn"
//	log_level = "info"
//	min_query_length = 3
//	request_timeout_seconds = 10
//	detail_cache_size = 0
//	search_cache_ttl_seconds = 0
//
//	[detail]
//	cancel_superseded = false
//	surface_errors = false
//
// # Validation
//
// The resolved Config is checked with struct tags; Load returns an
// "invalid config" error listing every failing field.
package config
