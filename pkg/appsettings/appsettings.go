// Package appsettings loads the optional per-user settings file.
//
// The running tool only reads settings; a missing file means defaults.
package appsettings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/codeGROOVE-dev/trayshield/pkg/menu"
)

const (
	// DefaultPollIntervalMS is the reconciler poll period when none is configured.
	DefaultPollIntervalMS = 200
	// MinPollIntervalMS is the shortest poll period accepted.
	MinPollIntervalMS = 50
)

// Settings is the content of settings.json.
type Settings struct {
	Labels         menu.Labels `json:"labels"`
	IconPath       string      `json:"icon_path,omitempty"`
	PollIntervalMS int         `json:"poll_interval_ms"`
	NotifyOnStart  bool        `json:"notify_on_start"`
	Debug          bool        `json:"debug"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		Labels:         menu.DefaultLabels(),
		PollIntervalMS: DefaultPollIntervalMS,
	}
}

// Normalize fills unset fields and clamps out-of-range values.
func (s Settings) Normalize() Settings {
	switch {
	case s.PollIntervalMS <= 0:
		s.PollIntervalMS = DefaultPollIntervalMS
	case s.PollIntervalMS < MinPollIntervalMS:
		s.PollIntervalMS = MinPollIntervalMS
	}
	s.Labels = s.Labels.WithDefaults()
	return s
}

// PollInterval returns the poll period as a duration.
func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.Normalize().PollIntervalMS) * time.Millisecond
}

// Manager handles loading and saving settings to disk.
type Manager struct {
	appName string
}

// NewManager creates a new settings manager for the given application name.
func NewManager(appName string) *Manager {
	return &Manager{appName: appName}
}

// Path returns the path to the settings file.
func (m *Manager) Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(configDir, m.appName, "settings.json"), nil
}

// Load reads the settings file. It reports false when the file does not exist,
// which is not an error. On any error the returned settings are the defaults.
func (m *Manager) Load() (Settings, bool, error) {
	path, err := m.Path()
	if err != nil {
		return Defaults(), false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults(), false, nil
		}
		return Defaults(), false, fmt.Errorf("read settings file: %w", err)
	}

	s := Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		return Defaults(), false, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s.Normalize(), true, nil
}

// Save writes settings to disk. The tool never calls it at runtime.
func (m *Manager) Save(s Settings) error {
	path, err := m.Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
