//go:build !windows

package launcher

import (
	"log/slog"

	"github.com/codeGROOVE-dev/trayshield/pkg/winbridge"
)

// NewSystem returns a launcher that never finds a console: only Windows
// console windows can be supervised.
func NewSystem(logger *slog.Logger) *Launcher {
	return New(noConsole{}, noSpawner{}, logger)
}

type noConsole struct{}

func (noConsole) Attach() (winbridge.Handle, error) { return 0, winbridge.ErrUnsupported }
func (noConsole) Free() error { return nil }

type noSpawner struct{}

func (noSpawner) Spawn(string, []string) error { return winbridge.ErrUnsupported }
