//go:build !windows

package main

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

func showAbout(logger *slog.Logger) {
	if err := beeep.Alert(aboutTitle, aboutMessage(), ""); err != nil {
		logger.Debug("[ABOUT] Alert failed", "error", err)
	}
}
