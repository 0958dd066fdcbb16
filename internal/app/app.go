package app

import (
	"io"
	"log/slog"

	"github.com/vk/wpreg/internal/config"
	"github.com/vk/wpreg/internal/registry"
)

// App encapsulates one configuration-build run: where configuration comes
// from, which registry it publishes into, and how it logs.
type App struct {
	config    *Config
	logger    *slog.Logger
	loader    config.Loader
	fragments []config.Fragment
	registry  *registry.Registry
}

// Option customizes an App.
type Option func(*App)

// WithRegistry publishes into r instead of the process-wide registry.
func WithRegistry(r *registry.Registry) Option {
	return func(a *App) { a.registry = r }
}

// WithFragments replaces the compiled-in fragments used when
// Config.IncludeBuiltins is set.
func WithFragments(fragments ...config.Fragment) Option {
	return func(a *App) { a.fragments = fragments }
}

// NewApp is the constructor for the application. Logging goes to outW.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		config:    cfg,
		logger:    newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		loader:    loader,
		fragments: coreFragments,
		registry:  registry.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug("App configured.", "paths", cfg.Paths, "builtins", cfg.IncludeBuiltins)
	return a
}

// Registry returns the registry this App publishes into.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
