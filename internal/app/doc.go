// Package app is the composition root for popcorn.
//
// # Overview
//
// This package wires configuration, logging, storage, the OMDb client and
// the UI together. The CLI subcommands use the same wiring without starting
// the TUI.
//
// # Startup Sequence
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       ├─────> config.LoadDotEnv()  .env into the environment
//	       ├─────> config.Load()        TOML file + env overrides + validation
//	       ├─────> logging.Open()       <log_dir>/popcorn.log
//	       ├─────> omdb.NewClient()     HTTP client, optional caches
//	       ├─────> kv.OpenSQLite()      <data_dir>/popcorn.db (kv.Memory with Ephemeral)
//	       ├─────> state.Open()         watched list
//	       └─────> persist.Load()       theme name under ThemeKey
//
//	┌──────────────┐
//	│   Run()      │ Open, then
//	└──────┬───────┘
//	       ├─────> StartFlusher()       retry failed saves in the background
//	       └─────> ui.Run()             TUI (blocks until quit or ctx done)
//
// # Services
//
// Open returns Services, which the caller must Close. Close makes one last
// attempt to save a degraded watched list, then closes the database and the
// log file.
//
// # Background Flusher
//
// StartFlusher runs a ticker goroutine (default every 30 seconds). On each
// tick it checks the store's snapshot and, if the last save failed, calls
// Store.Flush. The goroutine exits when the context is cancelled.
//
// # Error Handling
//
// Fatal errors (returned from Open and Run):
//   - .env file present but unreadable
//   - config file unreadable or invalid
//   - log directory or data directory not writable
//   - SQLite schema initialization failure
//
// Recoverable errors (logged, session continues):
//   - OMDb request failures (shown in the UI)
//   - watched list save failures (nav bar shows "unsaved", flusher retries)
//   - theme save failures
//
// A missing API key is not fatal; it is logged and OMDb answers with its own
// error message.
//
// # Configuration
//
// Options selects the config file, the .env file, a log level override and
// Ephemeral mode, which keeps the watched list and theme in memory only.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("popcorn: %v", err)
//	}
//
// # Dependencies
//
//   - config: configuration file, .env and environment
//   - logging: file logger shared by every component
//   - omdb: HTTP client for the movie database
//   - kv, persist, state: durable watched list and theme
//   - ui: Bubble Tea interface
package app
