package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved runtime configuration.
type Config struct {
	APIBase         string `validate:"required,url"`
	APIKey          string
	DataDir         string        `validate:"required"`
	LogDir          string        `validate:"required"`
	LogLevel        string        `validate:"omitempty,oneof=debug info warn warning error"`
	MinQueryLength  int           `validate:"min=1"`
	RequestTimeout  time.Duration `validate:"gt=0"`
	DetailCacheSize int           `validate:"min=0"`
	SearchCacheTTL  time.Duration `validate:"min=0"`
	Detail          Detail
}

// Detail holds the detail fetcher toggles.
type Detail struct {
	CancelSuperseded bool
	SurfaceErrors    bool
}

const (
	defaultConfigPath     = "~/.config/popcorn/config.toml"
	defaultDataDir        = "~/.local/share/popcorn"
	defaultLogDir         = "~/.local/state/popcorn"
	defaultAPIBase        = "https://www.omdbapi.com/"
	defaultMinQueryLength = 3
	defaultTimeout        = 10 * time.Second

	// EnvAPIKey and EnvAPIBase override the file when set.
	EnvAPIKey  = "OMDB_API_KEY"
	EnvAPIBase = "OMDB_API_BASE"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		DataDir:        mustExpand(defaultDataDir),
		LogDir:         mustExpand(defaultLogDir),
		LogLevel:       "info",
		MinQueryLength: defaultMinQueryLength,
		RequestTimeout: defaultTimeout,
	}
}

// Load reads the TOML file at path (or the default location), applies
// environment overrides and validates the result. A missing file is not an
// error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		if err := decodeFile(file, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		cfg.APIKey = key
	}
	if base := strings.TrimSpace(os.Getenv(EnvAPIBase)); base != "" {
		cfg.APIBase = base
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return fmt.Errorf("invalid config: %w", err)
}

// DatabasePath is the SQLite file holding persisted state.
func (c Config) DatabasePath() string {
	dir := strings.TrimSpace(c.DataDir)
	if dir == "" {
		dir = mustExpand(defaultDataDir)
	}
	return filepath.Join(dir, "popcorn.db")
}

type rawConfig struct {
	APIBase               string `toml:"api_base"`
	APIKey                string `toml:"api_key"`
	DataDir               string `toml:"data_dir"`
	LogDir                string `toml:"log_dir"`
	LogLevel              string `toml:"log_level"`
	MinQueryLength        int    `toml:"min_query_length"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	DetailCacheSize       *int   `toml:"detail_cache_size"`
	SearchCacheTTLSeconds int    `toml:"search_cache_ttl_seconds"`
	Detail                struct {
		CancelSuperseded bool `toml:"cancel_superseded"`
		SurfaceErrors    bool `toml:"surface_errors"`
	} `toml:"detail"`
}

func decodeFile(r io.Reader, cfg *Config) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.MinQueryLength != 0 {
		cfg.MinQueryLength = raw.MinQueryLength
	}
	if raw.RequestTimeoutSeconds != 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.DetailCacheSize != nil {
		cfg.DetailCacheSize = *raw.DetailCacheSize
	}
	cfg.SearchCacheTTL = time.Duration(raw.SearchCacheTTLSeconds) * time.Second
	cfg.Detail = Detail{
		CancelSuperseded: raw.Detail.CancelSuperseded,
		SurfaceErrors:    raw.Detail.SurfaceErrors,
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
