// Package reconcile keeps the console window's visibility in line with the
// tray policy: a minimized console is sent to the tray, and a destroyed
// console shuts the tray down.
package reconcile

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is the poll period of the reconciler.
const DefaultInterval = 200 * time.Millisecond

// Watched is the subset of the console window the reconciler needs.
// Implementations must query live state on every call.
type Watched interface {
	IsAlive() bool
	IsVisible() bool
	IsMinimized() bool
	Hide() error
}

// Outcome is the result of a single reconciliation tick.
type Outcome int

const (
	// Idle means nothing needed to change.
	Idle Outcome = iota
	// Hidden means a visible, minimized console was hidden.
	Hidden
	// Gone means the console no longer exists; the loop is finished.
	Gone
)

func (o Outcome) String() string {
	switch o {
	case Hidden:
		return "hidden"
	case Gone:
		return "gone"
	default:
		return "idle"
	}
}

// Reconciler polls a console window at a fixed interval.
// It never touches tray or menu state; when the console is gone it calls
// onGone exactly once and stops.
type Reconciler struct {
	window   Watched
	onGone   func()
	logger   *slog.Logger
	interval time.Duration
}

// New creates a reconciler. A non-positive interval selects DefaultInterval.
func New(window Watched, interval time.Duration, onGone func(), logger *slog.Logger) *Reconciler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	if onGone == nil {
		onGone = func() {}
	}
	return &Reconciler{
		window:   window,
		interval: interval,
		onGone:   onGone,
		logger:   logger,
	}
}

// Interval returns the poll period.
func (r *Reconciler) Interval() time.Duration {
	return r.interval
}

// Step performs one reconciliation pass against live window state.
func (r *Reconciler) Step() Outcome {
	if !r.window.IsAlive() {
		return Gone
	}
	if r.window.IsVisible() && r.window.IsMinimized() {
		if err := r.window.Hide(); err != nil {
			// The window may have died between the checks; the next tick sees it.
			r.logger.Debug("[RECONCILE] Hide failed", "error", err)
			return Idle
		}
		return Hidden
	}
	return Idle
}

// Run polls until the console is gone, ctx is cancelled, or stop is closed.
// It holds no resources, so callers may leave it running without joining it.
func (r *Reconciler) Run(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	r.logger.Debug("[RECONCILE] Loop started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("[RECONCILE] Loop stopping due to context cancellation")
			return
		case <-stop:
			r.logger.Debug("[RECONCILE] Loop stopping on shutdown")
			return
		case <-ticker.C:
		}

		switch r.Step() {
		case Gone:
			r.logger.Info("[RECONCILE] Console window is gone, closing tray")
			r.onGone()
			return
		case Hidden:
			r.logger.Debug("[RECONCILE] Minimized console sent to tray")
		case Idle:
		}
	}
}
