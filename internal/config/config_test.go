package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIBase, "")
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.MinQueryLength != 3 || cfg.RequestTimeout != 10*time.Second || cfg.DetailCacheSize != 0 {
		t.Fatalf("cfg = %#v, want numeric defaults", cfg)
	}
	if cfg.SearchCacheTTL != 0 || cfg.Detail.CancelSuperseded || cfg.Detail.SurfaceErrors {
		t.Fatalf("cfg = %#v, want optional features off", cfg)
	}

	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if cfg.DatabasePath() != filepath.Join(wantDataDir, "popcorn.db") {
		t.Fatalf("DatabasePath = %q", cfg.DatabasePath())
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  http://localhost:8080/omdb  "
api_key = " abc123 "
data_dir = "  ~/.popcorn  "
log_level = "DEBUG"
min_query_length = 4
request_timeout_seconds = 3
detail_cache_size = 32
search_cache_ttl_seconds = 60

[detail]
cancel_superseded = true
surface_errors = true
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://localhost:8080/omdb" || cfg.APIKey != "abc123" {
		t.Fatalf("api = %q/%q", cfg.APIBase, cfg.APIKey)
	}
	if !strings.HasPrefix(cfg.DataDir, home) {
		t.Fatalf("DataDir = %q, want it under HOME %q", cfg.DataDir, home)
	}
	if cfg.LogLevel != "debug" || cfg.MinQueryLength != 4 || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("cfg = %#v", cfg)
	}
	if cfg.DetailCacheSize != 32 || cfg.SearchCacheTTL != time.Minute {
		t.Fatalf("caches = %d/%v, want 32/1m", cfg.DetailCacheSize, cfg.SearchCacheTTL)
	}
	if !cfg.Detail.CancelSuperseded || !cfg.Detail.SurfaceErrors {
		t.Fatalf("Detail = %#v, want both on", cfg.Detail)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvAPIBase, "http://127.0.0.1:9999/")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = "from-file"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" || cfg.APIBase != "http://127.0.0.1:9999/" {
		t.Fatalf("cfg = %q/%q, want env values", cfg.APIKey, cfg.APIBase)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidValuesFailValidation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cases := map[string]string{
		"negative min length": `min_query_length = -1`,
		"negative timeout":    `request_timeout_seconds = -5`,
		"bad url":             `api_base = "not a url"`,
		"bad level":           `log_level = "chatty"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), "invalid config") {
				t.Fatalf("Load error = %v, want invalid config", err)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	if err := os.Unsetenv(EnvAPIKey); err != nil {
		t.Fatalf("Unsetenv: %v", err)
	}
	t.Setenv(EnvAPIBase, "http://already-set/")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("OMDB_API_KEY=dotenv-key\nOMDB_API_BASE=http://ignored/\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv(EnvAPIKey); got != "dotenv-key" {
		t.Fatalf("%s = %q, want dotenv-key", EnvAPIKey, got)
	}
	if got := os.Getenv(EnvAPIBase); got != "http://already-set/" {
		t.Fatalf("%s = %q, existing value must win", EnvAPIBase, got)
	}
	t.Cleanup(func() { _ = os.Unsetenv(EnvAPIKey) })

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing .env returned error: %v", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
