// Package app provides the application context for lpf.
// It allows dependency injection for testing.
package app

import (
	"context"

	"lpf/internal/config"
	"lpf/internal/errors"
	"lpf/internal/journal"
	"lpf/internal/launcher"
	"lpf/internal/logging"
	"lpf/internal/proc"
	"lpf/internal/registry"
	"lpf/internal/store"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured file locations
	Paths *config.Paths

	// Settings is the loaded user configuration
	Settings *config.Settings

	// Store persists the tunnel registry file
	Store *store.Store

	// Registry orchestrates tunnel operations
	Registry *registry.Registry

	// Journal records tunnel events. Nil when the journal could not be
	// opened; recording is skipped in that case.
	Journal *journal.Journal
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithSettings sets custom settings
func WithSettings(settings *config.Settings) Option {
	return func(a *App) {
		a.Settings = settings
	}
}

// WithRegistry sets a custom registry
func WithRegistry(reg *registry.Registry) Option {
	return func(a *App) {
		a.Registry = reg
	}
}

// WithJournal sets a custom journal
func WithJournal(j *journal.Journal) Option {
	return func(a *App) {
		a.Journal = j
	}
}

// New creates a new App with the given options. Components not provided
// via options are built from the resolved paths and settings. A missing
// journal is tolerated; anything else that fails to load is a
// configuration error.
func New(opts ...Option) (*App, error) {
	a := &App{}

	for _, opt := range opts {
		opt(a)
	}

	if a.Paths == nil {
		paths, err := config.DefaultPaths()
		if err != nil {
			return nil, errors.ConfigError("failed to resolve config directory", err)
		}
		a.Paths = paths
	}
	if err := a.Paths.Ensure(); err != nil {
		return nil, errors.ConfigError("failed to create config directories", err)
	}

	if a.Settings == nil {
		settings, err := config.LoadSettings(a.Paths.SettingsFile)
		if err != nil {
			return nil, errors.ConfigError("failed to load settings", err)
		}
		a.Settings = &settings
	}

	if a.Store == nil {
		a.Store = store.New(a.Paths.StateFile, a.Paths.LockFile)
	}

	if a.Journal == nil {
		j, err := journal.Open(context.Background(), a.Paths.JournalFile)
		if err != nil {
			logging.Debug("journal unavailable", "path", a.Paths.JournalFile, "error", err)
		} else {
			a.Journal = j
		}
	}

	if a.Registry == nil {
		launch, err := launcher.New(*a.Settings, a.Paths.PidDir)
		if err != nil {
			return nil, errors.ConfigError("invalid supervisor settings", err)
		}
		check := proc.NewChecker(a.Settings.Supervisor, a.Settings.VerifyCommand)

		var regOpts []registry.Option
		if a.Journal != nil {
			regOpts = append(regOpts, registry.WithJournal(a.Journal))
		}
		a.Registry = registry.New(a.Store, launch, check, regOpts...)
	}

	return a, nil
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.Journal == nil {
		return nil
	}
	return a.Journal.Close()
}

var defaultApp *App

// Default returns the shared application instance, building it on first
// use.
func Default() (*App, error) {
	if defaultApp != nil {
		return defaultApp, nil
	}
	a, err := New()
	if err != nil {
		return nil, err
	}
	defaultApp = a
	return defaultApp, nil
}

// SetDefault sets the shared application instance (used for testing)
func SetDefault(a *App) {
	defaultApp = a
}

// ResetDefault clears the shared instance; the next Default call
// rebuilds it.
func ResetDefault() {
	defaultApp = nil
}

// CloseDefault closes the shared instance if one was built.
func CloseDefault() {
	if defaultApp == nil {
		return
	}
	if err := defaultApp.Close(); err != nil {
		logging.Debug("failed to close app", "error", err)
	}
}
