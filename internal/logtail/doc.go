// Package logtail reads the tail of the application log for the in-app log
// view.
//
// # Overview
//
// popcorn owns the terminal, so logs go to <log_dir>/popcorn.log. The TUI's
// log view (L) calls Tail every couple of seconds and renders the records.
//
// # Reading
//
// Read keeps a ring buffer of the last N lines so large files are scanned
// once without holding them in memory. A missing file yields no lines and no
// error, since nothing may have been logged yet.
//
// # Parsing
//
// Parse understands the key=value layout written by slog's text handler:
//
//	time=2026-01-02T15:04:05.000Z level=WARN msg="search failed" component=search query="the matrix" status=500
//
// It pulls out time, level, msg and component; every other pair is kept as an
// ordered Attr. Quoted values are unquoted with strconv. A line that does not
// parse becomes an info-level Record whose Message is the whole line.
//
// # Filtering
//
// Tail combines both steps and drops records below a minimum slog.Level.
//
//	records, err := logtail.Tail(path, 500, slog.LevelInfo)
package logtail
