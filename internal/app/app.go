package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/accelgo/internal/ctxlog"
	"github.com/vk/accelgo/internal/profiles"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: an isolated logger, the selected launch profile (if any), and
// the run entry point.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	profile *profiles.Profile
}

// NewApp constructs the application. A profile path that cannot be loaded
// is a fatal startup error and panics; the CLI entrypoint recovers it into
// a clean exit message.
func NewApp(outW io.Writer, config *Config, loader *profiles.Loader) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("logger configured")

	a := &App{outW: outW, logger: logger, config: config}

	if config.ProfilePath != "" {
		if loader == nil {
			loader = profiles.NewLoader(nil)
		}
		profile, err := loader.LoadProfile(a.loggerContext(), config.ProfilePath, config.ProfileName)
		if err != nil {
			panic(fmt.Errorf("failed to load launch profile: %w", err))
		}
		a.profile = profile
		logger.Debug("launch profile loaded",
			"name", profile.Name,
			"mixed_precision", profile.MixedPrecision,
			"handlers", len(profile.Handlers()))
	}

	return a
}

// Profile returns the loaded launch profile, nil when none was requested.
// This is primarily for testing.
func (a *App) Profile() *profiles.Profile { return a.profile }

// loggerContext returns a background context carrying the App's logger.
func (a *App) loggerContext() context.Context {
	return ctxlog.WithLogger(context.Background(), a.logger)
}
