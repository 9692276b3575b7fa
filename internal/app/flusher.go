package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/popcorn/internal/state"
)

const defaultFlushInterval = 30 * time.Second

// StartFlusher launches a background goroutine that retries failed saves of
// the watched list at a fixed cadence. It returns immediately.
func StartFlusher(ctx context.Context, store *state.Store, logger *slog.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			flush(store, logger)
		}
	}()
}

func flush(store *state.Store, logger *slog.Logger) {
	if !store.Snapshot().Degraded() {
		return
	}
	if err := store.Flush(); err != nil {
		logger.Warn("watched list still unsaved", "error", err)
		return
	}
	logger.Info("watched list saved after retry")
}
