package main

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed about.txt
var aboutText string

const aboutTitle = "About trayshield"

// aboutMessage is the body of the About dialog. It is the same for every
// tray; the display name is never part of it.
func aboutMessage() string {
	return fmt.Sprintf("%s\n\nVersion: %s (%s, %s)",
		strings.TrimSpace(aboutText), version, commit, date)
}
