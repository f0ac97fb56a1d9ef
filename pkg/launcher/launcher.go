// Package launcher implements the first-run half of trayshield: it captures
// the invoking console window and hands it to a detached copy of the same
// executable, which supervises it from then on.
//
// The two processes talk only through argv:
//
//	<exe> --detached-child <0xHANDLE> <display name words...>
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/codeGROOVE-dev/trayshield/pkg/winbridge"
)

// RoleMarker is argv[1] of a detached supervisor process.
const RoleMarker = "--detached-child"

var (
	// ErrNoConsole means the invoking process has no console window to capture.
	ErrNoConsole = errors.New("no console window")
	// ErrNotDetached means argv does not carry the detached-role protocol.
	ErrNotDetached = errors.New("not a detached child invocation")
)

// Console is the console of the process that invoked the launcher.
type Console interface {
	// Attach attaches to the parent's console and returns its window.
	Attach() (winbridge.Handle, error)
	// Free releases this process's reference to the console.
	Free() error
}

// Spawner starts a process that is not tied to the caller's console or lifetime.
type Spawner interface {
	Spawn(exe string, args []string) error
}

// IsDetached reports whether args (os.Args) belong to a detached supervisor.
func IsDetached(args []string) bool {
	return len(args) > 1 && args[1] == RoleMarker
}

// DisplayName joins the user's words (everything after argv[0]) with spaces.
func DisplayName(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return strings.Join(args[1:], " ")
}

// ChildArgs returns the arguments, after the executable, of the supervisor
// process for console window h.
func ChildArgs(h winbridge.Handle, name string) []string {
	return []string{RoleMarker, h.String(), name}
}

// ParseChildArgs decodes the supervisor's os.Args. The display name may be
// empty; the caller decides what to show instead.
func ParseChildArgs(args []string) (winbridge.Handle, string, error) {
	if !IsDetached(args) {
		return 0, "", ErrNotDetached
	}
	if len(args) < 3 {
		return 0, "", fmt.Errorf("missing window handle: %w", ErrNotDetached)
	}
	h, err := winbridge.ParseHandle(args[2])
	if err != nil {
		return 0, "", err
	}
	return h, strings.Join(args[3:], " "), nil
}

// Launcher performs the first-run delegation.
type Launcher struct {
	console Console
	spawner Spawner
	exe     func() (string, error)
	logger  *slog.Logger
}

// New creates a launcher over the given console and spawner.
func New(console Console, spawner Spawner, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		console: console,
		spawner: spawner,
		exe:     os.Executable,
		logger:  logger,
	}
}

// Launch captures the invoking console and spawns the supervisor for it.
// Every failure is logged and swallowed; the caller exits either way.
// It reports whether a supervisor was started.
func (l *Launcher) Launch(args []string) bool {
	h, err := l.console.Attach()
	if err != nil {
		l.logger.Info("[LAUNCH] Not started from a console, nothing to do", "error", err)
		return false
	}
	defer func() {
		if err := l.console.Free(); err != nil {
			l.logger.Debug("[LAUNCH] FreeConsole failed", "error", err)
		}
	}()

	exe, err := l.exe()
	if err != nil {
		l.logger.Warn("[LAUNCH] Cannot locate own executable", "error", err)
		return false
	}

	name := DisplayName(args)
	if err := l.spawner.Spawn(exe, ChildArgs(h, name)); err != nil {
		l.logger.Warn("[LAUNCH] Failed to spawn supervisor", "exe", exe, "error", err)
		return false
	}
	l.logger.Info("[LAUNCH] Supervisor spawned", "hwnd", h.String(), "name", name)
	return true
}
