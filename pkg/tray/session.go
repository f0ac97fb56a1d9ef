// Package tray owns the notification-area icon for one console window: its
// registration, its message loop and its teardown. Native callbacks are turned
// into Event values and routed through Dispatch, so the whole state machine
// runs against MockSystray in tests.
package tray

import (
	"log/slog"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/codeGROOVE-dev/trayshield/pkg/menu"
	"github.com/energye/systray"
)

// MaxTooltipUnits is the number of UTF-16 code units the Windows shell keeps
// in a tray tooltip (a 128-unit buffer including the terminator).
const MaxTooltipUnits = 127

// DefaultReadyTimeout bounds how long a close requested before registration
// waits for the icon to appear before the loop is told to quit anyway.
const DefaultReadyTimeout = 5 * time.Second

// Handler carries out the intents the session cannot handle itself.
// Methods are called from the tray's event loop and must not block for long.
type Handler interface {
	Toggle()
	About()
	Exit()
	// Destroyed is called once when the message-target window goes away.
	Destroyed()
}

// Session is a registered tray icon plus its context menu.
type Session struct {
	sys         SystrayInterface
	handler     Handler
	logger      *slog.Logger
	ready       chan struct{}
	name        string
	icon        []byte
	items       []menu.Item
	mu           sync.Mutex
	closeOnce    sync.Once
	destroyOnce  sync.Once
	waitOnce     sync.Once
	readyTimeout time.Duration
	running      bool
	closing      bool
}

// New prepares a session. The icon is registered when Run starts the loop.
// An empty icon leaves the library's default icon in place.
func New(sys SystrayInterface, icon []byte, name string, items []menu.Item, handler Handler, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		sys:          sys,
		handler:      handler,
		logger:       logger,
		ready:        make(chan struct{}),
		name:         name,
		icon:         icon,
		items:        items,
		readyTimeout: DefaultReadyTimeout,
	}
}

// SetReadyTimeout changes how long RequestClose waits for registration before
// quitting the loop regardless. Non-positive values are ignored.
func (s *Session) SetReadyTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readyTimeout = d
}

// Ready is closed once the icon is registered and events are being delivered.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Run registers the icon and pumps tray events until the session is closed.
// It must be called from the goroutine that owns the tray UI.
func (s *Session) Run() {
	s.logger.Info("[TRAY] Starting tray loop", "name", s.name)
	s.sys.Run(s.onReady, s.onExit)
	s.logger.Info("[TRAY] Tray loop finished")
}

// RequestClose asks the tray loop to shut down. It is safe from any goroutine
// and may be called before the loop is ready; the close then happens as soon
// as it is. If registration never completes, the loop is told to quit once
// the ready timeout passes.
func (s *Session) RequestClose() {
	s.mu.Lock()
	s.closing = true
	running := s.running
	timeout := s.readyTimeout
	s.mu.Unlock()

	if running {
		s.quit()
		return
	}
	s.waitOnce.Do(func() { go s.quitIfNeverReady(timeout) })
}

// quitIfNeverReady quits a loop whose registration failed and so never ran
// onReady.
func (s *Session) quitIfNeverReady(timeout time.Duration) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-s.ready:
		// onReady saw closing and quit.
	case <-t.C:
		s.logger.Warn("[TRAY] Tray never became ready, quitting loop", "waited", timeout)
		s.quit()
	}
}

// Destroy posts a quit to the tray loop. The library removes the icon and
// destroys the message window when the loop handles it, so teardown completes
// only once Run returns. Calling it more than once, or after the loop already
// closed, is harmless.
func (s *Session) Destroy() {
	s.destroyOnce.Do(func() {
		s.quit()
		s.logger.Debug("[TRAY] Session destroyed")
	})
}

func (s *Session) quit() {
	s.closeOnce.Do(s.sys.Quit)
}

func (s *Session) onReady() {
	if len(s.icon) > 0 {
		s.sys.SetIcon(s.icon)
	} else {
		s.logger.Debug("[TRAY] No icon supplied, using default")
	}
	s.sys.SetTooltip(TruncateTooltip(s.name, MaxTooltipUnits))
	s.renderMenu()

	s.sys.SetOnClick(func(m systray.IMenu) {
		s.handle(TrayInput(ButtonLeft, m))
	})
	s.sys.SetOnRClick(func(m systray.IMenu) {
		s.handle(TrayInput(ButtonRight, m))
	})

	s.mu.Lock()
	s.running = true
	closing := s.closing
	s.mu.Unlock()
	close(s.ready)

	s.logger.Info("[TRAY] Tray ready")
	if closing {
		s.logger.Info("[TRAY] Close was requested before the tray was ready")
		s.quit()
	}
}

func (s *Session) onExit() {
	s.handle(Destroy())
}

func (s *Session) renderMenu() {
	s.sys.ResetMenu()
	for _, it := range s.items {
		if it.Separator {
			s.sys.AddSeparator()
			continue
		}
		mi := s.sys.AddMenuItem(it.Title, it.Tooltip)
		if it.Disabled {
			mi.Disable()
			continue
		}
		id := it.ID
		mi.Click(func() {
			s.handle(Command(id))
		})
	}
}

func (s *Session) handle(ev Event) {
	intent := Dispatch(ev)
	s.logger.Debug("[TRAY] Event", "kind", ev.Kind, "intent", intent.String())

	switch intent {
	case IntentOpenMenu:
		if ev.Menu == nil {
			return
		}
		if err := ev.Menu.ShowMenu(); err != nil {
			s.logger.Debug("[TRAY] Failed to show menu", "error", err)
		}
	case IntentToggle:
		s.handler.Toggle()
	case IntentAbout:
		s.handler.About()
	case IntentExit:
		s.handler.Exit()
	case IntentQuit:
		s.handler.Destroyed()
	case IntentNone:
	}
}

// TruncateTooltip shortens s so that it fits in maxUnits UTF-16 code units
// without splitting a surrogate pair.
func TruncateTooltip(s string, maxUnits int) string {
	units := 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1 // invalid runes are encoded as U+FFFD
		}
		if units+n > maxUnits {
			return s[:i]
		}
		units += n
	}
	return s
}
