package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/popcorn/internal/config"
	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/kv"
	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/persist"
	"github.com/five82/popcorn/internal/shortcut"
	"github.com/five82/popcorn/internal/state"
	"github.com/five82/popcorn/internal/ui"
)

// ThemeKey is the storage key holding the selected theme name.
const ThemeKey = "theme"

// Options configure a popcorn session.
type Options struct {
	ConfigPath string
	EnvFile    string // empty uses .env in the working directory
	LogLevel   string // overrides the config file when set
	Ephemeral  bool   // keep the watched list in memory only
}

// Services are the wired dependencies shared by the TUI and the CLI.
type Services struct {
	Config config.Config
	Logger *logging.Logger
	Client *omdb.Client
	Store  *state.Store
	Theme  *persist.Value[string]

	kv kv.Store
}

// Open loads configuration and opens logging, storage and the API client.
// Callers must Close the returned Services.
func Open(opts Options) (*Services, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.Open(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := omdb.NewClient(omdb.Options{
		BaseURL:         cfg.APIBase,
		APIKey:          cfg.APIKey,
		Timeout:         cfg.RequestTimeout,
		DetailCacheSize: cfg.DetailCacheSize,
		SearchCacheTTL:  cfg.SearchCacheTTL,
	})
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("init omdb client: %w", err)
	}
	if cfg.APIKey == "" {
		logger.Warn("no API key configured", "env", config.EnvAPIKey)
	}

	var store kv.Store
	if opts.Ephemeral {
		store = kv.NewMemory()
	} else {
		store, err = kv.OpenSQLite(cfg.DatabasePath())
		if err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
	}

	persistLog := persist.WithLogger(logger.Logger)
	logger.Info("session opened",
		"database", cfg.DatabasePath(),
		"ephemeral", opts.Ephemeral,
		"api_base", cfg.APIBase,
	)
	return &Services{
		Config: cfg,
		Logger: logger,
		Client: client,
		Store:  state.Open(store, persistLog),
		Theme:  persist.Load(store, ThemeKey, ui.DefaultThemeName, persistLog),
		kv:     store,
	}, nil
}

// Close releases storage and the log file.
func (s *Services) Close() error {
	if err := s.Store.Flush(); err != nil {
		s.Logger.Error("final save failed", "error", err)
	}
	return errors.Join(s.kv.Close(), s.Logger.Close())
}

// Run boots the popcorn TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	svc, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	// Retry failed write-backs in the background.
	StartFlusher(ctx, svc.Store, svc.Logger.Logger, defaultFlushInterval)

	return ui.Run(ui.Options{
		Context:        ctx,
		API:            svc.Client,
		Store:          svc.Store,
		ThemePref:      svc.Theme,
		Binder:         &shortcut.Binder{},
		Logger:         svc.Logger.Logger,
		LogPath:        svc.Logger.Path(),
		MinQueryLength: svc.Config.MinQueryLength,
		Detail: detail.Config{
			CancelSuperseded: svc.Config.Detail.CancelSuperseded,
			SurfaceErrors:    svc.Config.Detail.SurfaceErrors,
		},
	})
}
