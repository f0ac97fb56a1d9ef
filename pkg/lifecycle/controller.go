// Package lifecycle wires the tray session and the visibility reconciler
// around one console window and sequences their shutdown.
//
// Two goroutines run for the life of the supervisor: the tray loop, which is
// the only one allowed to touch tray and menu objects, and the reconciler,
// which only reads console state and posts close requests. They coordinate
// through Shared and a one-shot Signal.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codeGROOVE-dev/trayshield/pkg/menu"
	"github.com/codeGROOVE-dev/trayshield/pkg/reconcile"
	"github.com/codeGROOVE-dev/trayshield/pkg/tray"
	"github.com/codeGROOVE-dev/trayshield/pkg/winbridge"
)

// Config holds what the controller needs besides the console and the tray.
type Config struct {
	// About shows the about dialog. It may block until dismissed.
	About        func()
	Logger       *slog.Logger
	Name         string
	Icon         []byte
	Labels       menu.Labels
	PollInterval time.Duration
	// ReadyTimeout bounds how long shutdown waits for a tray icon that never
	// registered. Zero keeps tray.DefaultReadyTimeout.
	ReadyTimeout time.Duration
}

// Controller is the top-level orchestrator of one supervisor process.
type Controller struct {
	shared   *Shared
	sys      tray.SystrayInterface
	shutdown *Signal
	about    func()
	logger   *slog.Logger
	icon     []byte
	labels   menu.Labels
	interval time.Duration
	readyTTL time.Duration
	exitOnce sync.Once
	exited   atomic.Bool
}

var _ tray.Handler = (*Controller)(nil)

// New creates a controller for console. An empty cfg.Name is replaced by the
// fallback name from cfg.Labels.
func New(console winbridge.Window, sys tray.SystrayInterface, cfg Config) *Controller {
	labels := cfg.Labels.WithDefaults()
	name := cfg.Name
	if name == "" {
		name = labels.FallbackName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		shared:   NewShared(console, name),
		sys:      sys,
		shutdown: NewSignal(),
		about:    cfg.About,
		logger:   logger,
		icon:     cfg.Icon,
		labels:   labels,
		interval: cfg.PollInterval,
		readyTTL: cfg.ReadyTimeout,
	}
}

// Shared returns the context shared by the tray loop and the reconciler.
func (c *Controller) Shared() *Shared {
	return c.shared
}

// Shutdown returns the process-wide shutdown signal.
func (c *Controller) Shutdown() *Signal {
	return c.shutdown
}

// Run disables the console's close affordance, starts the reconciler and runs
// the tray loop on the calling goroutine until shutdown.
func (c *Controller) Run(ctx context.Context) error {
	console := c.shared.Console()
	if !console.IsAlive() {
		return fmt.Errorf("console %s: %w", console.Handle(), winbridge.ErrNotAlive)
	}
	if err := console.SetCloseEnabled(false); err != nil {
		c.logger.Warn("[LIFECYCLE] Failed to disable console close button", "error", err)
	}

	name := c.shared.Name()
	session := tray.New(c.sys, c.icon, name, menu.Build(name, c.labels), c, c.logger)
	session.SetReadyTimeout(c.readyTTL)
	c.shared.SetTray(session)

	r := reconcile.New(console, c.interval, c.parentGone, c.logger)
	go r.Run(ctx, c.shutdown.Done())

	go func() {
		select {
		case <-c.shutdown.Done():
		case <-ctx.Done():
			c.logger.Info("[LIFECYCLE] Context cancelled, closing tray")
		}
		session.RequestClose()
	}()

	c.logger.Info("[LIFECYCLE] Supervising console", "hwnd", console.Handle().String(), "name", name, "interval", r.Interval())
	session.Run()
	session.Destroy()
	c.shutdown.Fire()

	if !c.exited.Load() {
		c.releaseConsole(console)
	}
	c.logger.Info("[LIFECYCLE] Supervisor finished")
	return nil
}

// Toggle hides a visible console, or restores and foregrounds a hidden one.
// The decision is made from live window state every time.
func (c *Controller) Toggle() {
	w := c.shared.Console()
	if !w.IsAlive() {
		c.logger.Debug("[LIFECYCLE] Toggle ignored, console is gone")
		return
	}
	if w.IsVisible() {
		if err := w.Hide(); err != nil {
			c.logger.Debug("[LIFECYCLE] Hide failed", "error", err)
		}
		return
	}
	if err := w.Restore(); err != nil {
		c.logger.Debug("[LIFECYCLE] Restore failed", "error", err)
	}
}

// Exit restores the console's close affordance, closes the console through
// its normal close path and shuts the tray down. Only the first call acts.
func (c *Controller) Exit() {
	c.exitOnce.Do(func() {
		c.exited.Store(true)
		c.logger.Info("[LIFECYCLE] Exit requested")
		w := c.shared.Console()
		if w.IsAlive() {
			if err := w.SetCloseEnabled(true); err != nil {
				c.logger.Debug("[LIFECYCLE] Failed to restore console close button", "error", err)
			}
			if err := w.RequestClose(); err != nil {
				c.logger.Debug("[LIFECYCLE] Close request failed", "error", err)
			}
		}
		c.shutdown.Fire()
	})
}

// About shows the about dialog, if one is configured.
func (c *Controller) About() {
	if c.about == nil {
		return
	}
	c.about()
}

// Destroyed records that the tray's message target is gone.
func (c *Controller) Destroyed() {
	if c.shutdown.Fire() {
		c.logger.Debug("[LIFECYCLE] Tray destroyed, shutdown fired")
	}
}

// parentGone runs on the reconciler goroutine. The tray is only ever told to
// close through its message target, never mutated directly.
func (c *Controller) parentGone() {
	if t := c.shared.Tray(); t != nil {
		t.RequestClose()
	}
	c.shutdown.Fire()
}

// releaseConsole leaves a console that outlives its tray usable: the close
// button comes back and a hidden console is shown again.
func (c *Controller) releaseConsole(w winbridge.Window) {
	if !w.IsAlive() {
		return
	}
	if err := w.SetCloseEnabled(true); err != nil {
		c.logger.Debug("[LIFECYCLE] Failed to restore console close button", "error", err)
	}
	if !w.IsVisible() {
		if err := w.Restore(); err != nil {
			c.logger.Debug("[LIFECYCLE] Restore failed", "error", err)
		}
	}
}
