package winbridge

// Window is the console window as seen from the supervisor process.
//
// Every method re-queries the live OS state. Nothing is cached, so callers
// must not assume a window that was alive a moment ago still exists.
// Operations on a dead window return ErrNotAlive instead of touching it.
type Window interface {
	Handle() Handle
	IsAlive() bool
	IsVisible() bool
	IsMinimized() bool
	// Hide removes the window from the screen and the taskbar.
	Hide() error
	// Restore shows the window in its normal state and brings it to the foreground.
	Restore() error
	// SetCloseEnabled adds or removes the close entry from the window's system menu.
	SetCloseEnabled(enabled bool) error
	// RequestClose sends a close request through the normal close pathway.
	RequestClose() error
}
