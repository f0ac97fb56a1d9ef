//go:build windows

package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"

	"github.com/codeGROOVE-dev/trayshield/pkg/winbridge"
	"golang.org/x/sys/windows"
)

// attachParentProcess is ATTACH_PARENT_PROCESS, (DWORD)-1.
const attachParentProcess = 0xFFFFFFFF

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procAttachConsole    = kernel32.NewProc("AttachConsole")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
	procFreeConsole      = kernel32.NewProc("FreeConsole")
)

// NewSystem returns a launcher for the real parent console.
func NewSystem(logger *slog.Logger) *Launcher {
	return New(parentConsole{}, detachedSpawner{}, logger)
}

type parentConsole struct{}

func (parentConsole) Attach() (winbridge.Handle, error) {
	if r, _, err := procAttachConsole.Call(attachParentProcess); r == 0 {
		// A console-subsystem build already owns its parent's console.
		if !errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return 0, fmt.Errorf("AttachConsole: %w", err)
		}
	}
	hwnd, _, _ := procGetConsoleWindow.Call() //nolint:errcheck // zero return is the failure signal
	if hwnd == 0 {
		_, _, _ = procFreeConsole.Call() //nolint:errcheck // nothing to do on failure
		return 0, ErrNoConsole
	}
	return winbridge.Handle(hwnd), nil
}

func (parentConsole) Free() error {
	if r, _, err := procFreeConsole.Call(); r == 0 {
		return fmt.Errorf("FreeConsole: %w", err)
	}
	return nil
}

type detachedSpawner struct{}

// Spawn starts exe with no console and in its own process group, so neither
// closing the parent console nor Ctrl+C in it reaches the child.
func (detachedSpawner) Spawn(exe string, args []string) error {
	cmd := exec.Command(exe, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", exe, err)
	}
	return cmd.Process.Release()
}
