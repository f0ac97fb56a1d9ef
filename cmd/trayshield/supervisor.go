package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codeGROOVE-dev/trayshield/pkg/appsettings"
	"github.com/codeGROOVE-dev/trayshield/pkg/icon"
	"github.com/codeGROOVE-dev/trayshield/pkg/launcher"
	"github.com/codeGROOVE-dev/trayshield/pkg/lifecycle"
	"github.com/codeGROOVE-dev/trayshield/pkg/tray"
	"github.com/codeGROOVE-dev/trayshield/pkg/winbridge"
	"github.com/gen2brain/beeep"
)

// supervisorConfig is everything the supervisor derives from argv and settings.
type supervisorConfig struct {
	lifecycle.Config

	handle winbridge.Handle
	notify bool
}

// newSupervisorConfig decodes the detached-role arguments and applies settings.
func newSupervisorConfig(args []string, s appsettings.Settings, logger *slog.Logger) (supervisorConfig, error) {
	h, name, err := launcher.ParseChildArgs(args)
	if err != nil {
		return supervisorConfig{}, fmt.Errorf("parse arguments: %w", err)
	}

	s = s.Normalize()
	if name == "" {
		name = s.Labels.FallbackName
	}
	return supervisorConfig{
		Config: lifecycle.Config{
			Name:         name,
			Icon:         icon.ForTray(s.IconPath, name, logger),
			Labels:       s.Labels,
			PollInterval: s.PollInterval(),
			About:        func() { showAbout(logger) },
			Logger:       logger,
		},
		handle: h,
		notify: s.NotifyOnStart,
	}, nil
}

// runSupervisor supervises the console window named in args until it closes
// or the user picks Exit.
func runSupervisor(ctx context.Context, args []string, s appsettings.Settings, logger *slog.Logger) error {
	cfg, err := newSupervisorConfig(args, s, logger)
	if err != nil {
		return err
	}

	win, err := winbridge.Open(cfg.handle)
	if err != nil {
		return fmt.Errorf("open console %s: %w", cfg.handle, err)
	}

	if cfg.notify {
		notifyStarted(cfg.Name, logger)
	}

	return lifecycle.New(win, &tray.RealSystray{}, cfg.Config).Run(ctx)
}

func notifyStarted(name string, logger *slog.Logger) {
	if err := beeep.Notify(name, "Running in the system tray", ""); err != nil {
		logger.Debug("[NOTIFY] Failed to send start notification", "error", err)
	}
}
