package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/HerbHall/stinger/internal/catalog"
	"github.com/HerbHall/stinger/internal/config"
	"github.com/HerbHall/stinger/internal/server"
	"github.com/HerbHall/stinger/internal/store"
	"github.com/HerbHall/stinger/internal/trailer"
	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

// deps holds what a command needs after configuration is resolved.
type deps struct {
	settings config.Settings
	logger   *zap.Logger
	catalog  *pkgcatalog.Catalog
	engine   *catalog.Engine
}

// withDeps loads settings, the logger and the catalog, then calls fn.
func withDeps(ctx context.Context, opts *rootOptions, fn func(*deps) error) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(settings.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := openCatalog(ctx, settings.Catalog.Path)
	if err != nil {
		return err
	}
	logger.Debug("catalog loaded",
		zap.String("source", catalogSource(settings.Catalog.Path)),
		zap.Int("items", cat.Len()),
	)

	return fn(&deps{
		settings: settings,
		logger:   logger,
		catalog:  cat,
		engine:   catalog.NewEngine(cat),
	})
}

// loadSettings resolves configuration and applies flag overrides.
func loadSettings(opts *rootOptions) (config.Settings, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Settings{}, fmt.Errorf("loading config: %w", err)
	}
	s, err := cfg.Settings()
	if err != nil {
		return config.Settings{}, err
	}
	if opts.catalogPath != "" {
		s.Catalog.Path = opts.catalogPath
	}
	if opts.logLevel != "" {
		s.Log.Level = opts.logLevel
	}
	return s, nil
}

func newLogger(s config.LogSettings) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(s.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", s.Level, err)
	}
	zc := zap.NewProductionConfig()
	if s.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// openCatalog loads the catalog from path: the embedded sample when empty,
// a SQLite database for .db and .sqlite files, otherwise a JSON or YAML file.
func openCatalog(ctx context.Context, path string) (*pkgcatalog.Catalog, error) {
	switch {
	case path == "":
		return pkgcatalog.Embedded()
	case isDatabasePath(path):
		if _, err := os.Stat(path); err != nil {
			return nil, &pkgcatalog.LoadError{Source: path, Err: err}
		}
		db, err := store.OpenReadOnly(path)
		if err != nil {
			return nil, &pkgcatalog.LoadError{Source: path, Err: err}
		}
		defer db.Close()
		cat, err := db.LoadCatalog(ctx)
		if err != nil {
			return nil, &pkgcatalog.LoadError{Source: path, Err: err}
		}
		return cat, nil
	default:
		return pkgcatalog.LoadFile(path)
	}
}

func isDatabasePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func serverOptions(s config.Settings) server.Options {
	return server.Options{
		Addr:               s.Server.Addr(),
		ReadTimeout:        s.Server.ReadTimeout,
		WriteTimeout:       s.Server.WriteTimeout,
		IdleTimeout:        s.Server.IdleTimeout,
		CORSAllowedOrigins: s.CORS.AllowedOrigins,
		CORSAllowedMethods: s.CORS.AllowedMethods,
		RateLimitEnabled:   s.RateLimit.Enabled,
		RateLimitRequests:  s.RateLimit.Requests,
		RateLimitWindow:    s.RateLimit.Window,
	}
}

func newTrailerService(items trailer.ItemGetter, s config.TrailerSettings, logger *zap.Logger) (*trailer.Service, error) {
	opts := trailer.DefaultOptions()
	opts.SearchURL = s.SearchURL
	opts.Client = trailer.NewHTTPClient(s.Timeout, s.Retries)
	opts.Rate = s.Rate
	opts.Burst = s.Burst
	opts.CacheTTL = s.CacheTTL
	return trailer.NewService(items, opts, logger)
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
