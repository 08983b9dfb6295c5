package app

import (
	"context"
	"fmt"

	"github.com/vk/accelgo/internal/ctxlog"
	"github.com/vk/accelgo/internal/device"
	"github.com/vk/accelgo/internal/launch"
)

// Run executes the configured action: the host environment report, or a
// multi-process launch of the training command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("app run started")

	if a.config.EnvReport {
		fmt.Fprint(a.outW, device.Snapshot(ctx).String())
		return nil
	}

	launcher, err := launch.NewLauncher(a.launchConfig(ctx))
	if err != nil {
		return err
	}
	if err := launcher.Run(ctx); err != nil {
		return fmt.Errorf("launch failed: %w", err)
	}

	a.logger.Info("launch finished", "command", a.config.Command)
	return nil
}

// launchConfig resolves the effective launch settings: CLI flags win over
// the profile, and the host report fills the process count when neither
// sets one.
func (a *App) launchConfig(ctx context.Context) launch.Config {
	cfg := launch.Config{
		NumProcesses:   a.config.NumProcesses,
		MainAddr:       a.config.MainAddr,
		MainPort:       a.config.MainPort,
		MixedPrecision: a.config.MixedPrecision,
		DynamoBackend:  a.config.DynamoBackend,
		Command:        a.config.Command,
	}

	if a.profile != nil {
		if cfg.NumProcesses == 0 {
			cfg.NumProcesses = a.profile.NumProcesses
		}
		if cfg.MixedPrecision == "" {
			cfg.MixedPrecision = string(a.profile.MixedPrecision)
		}
		if cfg.DynamoBackend == "" {
			cfg.DynamoBackend = a.profile.DynamoBackend
		}
	}
	if cfg.NumProcesses == 0 {
		report := device.Snapshot(ctx)
		cfg.NumProcesses = report.DefaultNumProcesses()
		a.logger.Debug("num_processes defaulted from host",
			"num_processes", cfg.NumProcesses)
	}
	return cfg
}
