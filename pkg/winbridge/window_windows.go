//go:build windows

package winbridge

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows"
)

const (
	swHide      = 0
	swRestore   = 9
	wmClose     = 0x0010
	scClose     = 0xF060
	mfByCommand = 0x00000000
	win32True   = 1
	win32False  = 0
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procIsWindow            = user32.NewProc("IsWindow")
	procIsWindowVisible     = user32.NewProc("IsWindowVisible")
	procIsIconic            = user32.NewProc("IsIconic")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procGetSystemMenu       = user32.NewProc("GetSystemMenu")
	procDeleteMenu          = user32.NewProc("DeleteMenu")
	procSendMessageW        = user32.NewProc("SendMessageW")
)

// Win32Window implements Window on top of user32.
type Win32Window struct {
	hwnd Handle
}

var _ Window = (*Win32Window)(nil)

// Open validates the handle and returns a Window for it.
func Open(h Handle) (*Win32Window, error) {
	if h == 0 {
		return nil, ErrInvalidHandle
	}
	w := &Win32Window{hwnd: h}
	if !w.IsAlive() {
		return nil, fmt.Errorf("open %s: %w", h, ErrNotAlive)
	}
	return w, nil
}

// Handle returns the underlying window handle.
func (w *Win32Window) Handle() Handle {
	return w.hwnd
}

// IsAlive reports whether the handle still names an existing window.
func (w *Win32Window) IsAlive() bool {
	return call(procIsWindow, uintptr(w.hwnd)) != 0
}

// IsVisible reports the WS_VISIBLE state of the window.
func (w *Win32Window) IsVisible() bool {
	return w.IsAlive() && call(procIsWindowVisible, uintptr(w.hwnd)) != 0
}

// IsMinimized reports whether the window is iconic.
func (w *Win32Window) IsMinimized() bool {
	return w.IsAlive() && call(procIsIconic, uintptr(w.hwnd)) != 0
}

func (w *Win32Window) Hide() error {
	if !w.IsAlive() {
		return ErrNotAlive
	}
	call(procShowWindow, uintptr(w.hwnd), swHide)
	return nil
}

func (w *Win32Window) Restore() error {
	if !w.IsAlive() {
		return ErrNotAlive
	}
	call(procShowWindow, uintptr(w.hwnd), swRestore)
	if call(procSetForegroundWindow, uintptr(w.hwnd)) == 0 {
		// Windows refuses foreground changes from background processes at times.
		slog.Debug("[WINBRIDGE] SetForegroundWindow refused", "hwnd", w.hwnd.String())
	}
	return nil
}

// SetCloseEnabled removes SC_CLOSE from the system menu, or reverts the
// system menu to its default (which restores it).
func (w *Win32Window) SetCloseEnabled(enabled bool) error {
	if !w.IsAlive() {
		return ErrNotAlive
	}
	if enabled {
		call(procGetSystemMenu, uintptr(w.hwnd), win32True)
		return nil
	}
	menu := call(procGetSystemMenu, uintptr(w.hwnd), win32False)
	if menu == 0 {
		return fmt.Errorf("get system menu for %s: no menu", w.hwnd)
	}
	if r1, _, err := procDeleteMenu.Call(menu, scClose, mfByCommand); r1 == 0 {
		return fmt.Errorf("delete close item: %w", err)
	}
	return nil
}

// RequestClose sends WM_CLOSE and waits for the console to process it.
func (w *Win32Window) RequestClose() error {
	if !w.IsAlive() {
		return ErrNotAlive
	}
	call(procSendMessageW, uintptr(w.hwnd), wmClose, 0, 0)
	return nil
}

// call invokes a user32 procedure whose failure is reported only through r1.
func call(p *windows.LazyProc, args ...uintptr) uintptr {
	if err := p.Find(); err != nil {
		return 0
	}
	r1, _, _ := p.Call(args...) //nolint:errcheck // r1 carries the result
	return r1
}
