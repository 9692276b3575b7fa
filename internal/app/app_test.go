package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/popcorn/internal/kv"
	"github.com/five82/popcorn/internal/state"
	"github.com/five82/popcorn/internal/ui"
	"github.com/five82/popcorn/internal/watched"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	body := "data_dir = \"" + filepath.Join(dir, "data") + "\"\n" +
		"log_dir = \"" + filepath.Join(dir, "logs") + "\"\n" +
		"api_key = \"from-file\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestOpen_PersistsAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OMDB_API_KEY", "")
	opts := Options{
		ConfigPath: writeConfig(t, dir),
		EnvFile:    filepath.Join(dir, "missing.env"),
	}

	svc, err := Open(opts)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if svc.Config.APIKey != "from-file" {
		t.Fatalf("APIKey = %q, want from-file", svc.Config.APIKey)
	}
	if got := svc.Theme.Get(); got != ui.DefaultThemeName {
		t.Fatalf("theme = %q, want %q", got, ui.DefaultThemeName)
	}
	if err := svc.Store.Add(watched.Entry{ImdbID: "tt1", UserRating: 9}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := svc.Theme.Set("Paper"); err != nil {
		t.Fatalf("Theme.Set returned error: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "logs", "popcorn.log")); err != nil {
		t.Fatalf("log file missing: %v", err)
	}

	again, err := Open(opts)
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}
	defer func() { _ = again.Close() }()
	if !again.Store.Contains("tt1") {
		t.Fatalf("watched entry lost between sessions")
	}
	if got := again.Theme.Get(); got != "Paper" {
		t.Fatalf("theme = %q, want Paper", got)
	}
}

func TestOpen_EphemeralSkipsDatabase(t *testing.T) {
	dir := t.TempDir()
	svc, err := Open(Options{
		ConfigPath: writeConfig(t, dir),
		EnvFile:    filepath.Join(dir, "missing.env"),
		Ephemeral:  true,
	})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if _, err := os.Stat(svc.Config.DatabasePath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("database created in ephemeral mode: %v", err)
	}
}

func TestOpen_EnvFileSuppliesKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OMDB_API_KEY", "")
	os.Unsetenv("OMDB_API_KEY")
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("OMDB_API_KEY=from-env\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	svc, err := Open(Options{ConfigPath: writeConfig(t, dir), EnvFile: envFile, Ephemeral: true})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer func() { _ = svc.Close() }()
	if svc.Config.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", svc.Config.APIKey)
	}
}

func TestOpen_RejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(Options{
		ConfigPath: writeConfig(t, dir),
		EnvFile:    filepath.Join(dir, "missing.env"),
		LogLevel:   "loud",
		Ephemeral:  true,
	})
	if err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

type flakyStore struct {
	kv.Memory
	fail bool
}

func (f *flakyStore) Set(key string, value []byte) error {
	if f.fail {
		return errors.New("read-only")
	}
	return f.Memory.Set(key, value)
}

func TestFlush_RetriesDegradedStore(t *testing.T) {
	backing := &flakyStore{fail: true}
	store := state.Open(backing)
	_ = store.Add(watched.Entry{ImdbID: "a", UserRating: 4})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	flush(store, logger)
	if !store.Snapshot().Degraded() {
		t.Fatalf("store recovered while backing still fails")
	}

	backing.fail = false
	flush(store, logger)
	if store.Snapshot().Degraded() {
		t.Fatalf("store still degraded after flush")
	}
}

func TestStartFlusher_StopsWithContext(t *testing.T) {
	backing := &flakyStore{fail: true}
	store := state.Open(backing)
	_ = store.Add(watched.Entry{ImdbID: "a", UserRating: 4})
	backing.fail = false

	ctx, cancel := context.WithCancel(context.Background())
	StartFlusher(ctx, store, slog.New(slog.NewTextHandler(io.Discard, nil)), 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for store.Snapshot().Degraded() {
		if time.Now().After(deadline) {
			t.Fatalf("flusher never saved the list")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}
