package lifecycle

import (
	"sync"

	"github.com/codeGROOVE-dev/trayshield/pkg/winbridge"
)

// TrayTarget is the tray's message target as seen from other goroutines.
type TrayTarget interface {
	RequestClose()
}

// Shared is the state the tray loop and the reconciler coordinate over.
// Every field is set once and read afterwards; the lock only provides
// cross-goroutine visibility.
type Shared struct {
	console winbridge.Window
	tray    TrayTarget
	name    string
	mu      sync.Mutex
}

// NewShared captures the console window and display name for the process.
func NewShared(console winbridge.Window, name string) *Shared {
	return &Shared{console: console, name: name}
}

// Console returns the supervised console window.
func (s *Shared) Console() winbridge.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.console
}

// Name returns the display name.
func (s *Shared) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetTray records the tray's message target. Later calls are ignored.
func (s *Shared) SetTray(t TrayTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tray == nil {
		s.tray = t
	}
}

// Tray returns the tray's message target, or nil before it is created.
func (s *Shared) Tray() TrayTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tray
}
