//go:build windows

package main

import (
	"log/slog"

	"github.com/gen2brain/beeep"
	"golang.org/x/sys/windows"
)

// showAbout blocks in a modal message box until it is dismissed.
func showAbout(logger *slog.Logger) {
	text, err := windows.UTF16PtrFromString(aboutMessage())
	if err != nil {
		logger.Debug("[ABOUT] Invalid about text", "error", err)
		return
	}
	caption, err := windows.UTF16PtrFromString(aboutTitle)
	if err != nil {
		return
	}
	const flags = windows.MB_OK | windows.MB_ICONINFORMATION | windows.MB_SETFOREGROUND
	if _, err := windows.MessageBox(0, text, caption, flags); err != nil {
		logger.Debug("[ABOUT] MessageBox failed, falling back to alert", "error", err)
		if err := beeep.Alert(aboutTitle, aboutMessage(), ""); err != nil {
			logger.Debug("[ABOUT] Alert failed", "error", err)
		}
	}
}
