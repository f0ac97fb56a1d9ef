// Package main implements trayshield, which moves the console it is started
// from into the system tray.
//
// Run from a console as `trayshield [display name...]`. The first process
// captures the console window, starts a detached copy of itself to supervise
// it, and exits. The supervisor shows a tray icon with Show/Hide, About and
// Exit, hides the console whenever it is minimized, and goes away when the
// console does.
//
// Build with -ldflags "-H=windowsgui" so the supervisor never opens a console
// of its own.
package main

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"github.com/codeGROOVE-dev/trayshield/pkg/appsettings"
	"github.com/codeGROOVE-dev/trayshield/pkg/launcher"
	"github.com/codeGROOVE-dev/trayshield/pkg/logging"
)

// Version information - set during build with -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const appName = "trayshield"

func init() {
	// The tray's message loop must run on the thread that created its window.
	runtime.LockOSThread()
}

func main() {
	enableDPIAwareness()

	settings, found, settingsErr := appsettings.NewManager(appName).Load()

	role := "launcher"
	if launcher.IsDetached(os.Args) {
		role = "supervisor"
	}

	logDir, dirErr := logging.DefaultDir()
	logger := logging.Setup(logging.Options{
		Dir:   logDir,
		Role:  role,
		Debug: settings.Debug,
	})
	defer logger.Close() //nolint:errcheck // best effort on exit
	defer func() {
		if muted := logger.Muted(); len(muted) > 0 {
			logger.Debug("[LOG] Destinations muted after write errors", "sinks", muted)
		}
	}()
	slog.SetDefault(logger.Logger)

	logger.Info("Starting trayshield", "version", version, "commit", commit, "date", date, "args", os.Args[1:])
	if dirErr != nil {
		logger.Warn("[LOG] No log directory, logging to stderr only", "error", dirErr)
	}
	switch {
	case settingsErr != nil:
		logger.Warn("[SETTINGS] Failed to load settings, using defaults", "error", settingsErr)
	case found:
		logger.Debug("[SETTINGS] Loaded settings", "icon_path", settings.IconPath, "poll_interval_ms", settings.PollIntervalMS)
	}

	if role == "launcher" {
		launcher.NewSystem(logger.Logger).Launch(os.Args)
		return
	}

	if err := runSupervisor(context.Background(), os.Args, settings, logger.Logger); err != nil {
		logger.Error("[SUPERVISOR] Exiting", "error", err)
	}
}
