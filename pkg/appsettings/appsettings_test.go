package appsettings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codeGROOVE-dev/trayshield/pkg/menu"
)

// isolate points the user config directory at a temp dir.
func isolate(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir) // Linux
	t.Setenv("HOME", tmpDir)            // macOS fallback
	t.Setenv("APPDATA", tmpDir)         // Windows
}

func writeRaw(t *testing.T, m *Manager, content string) {
	t.Helper()
	path, err := m.Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}
}

func TestPath(t *testing.T) {
	m := NewManager("trayshield")
	path, err := m.Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("Path is not absolute: %q", path)
	}
	expectedSuffix := filepath.Join("trayshield", "settings.json")
	if !strings.HasSuffix(path, expectedSuffix) {
		t.Errorf("Path should end with %q, got %q", expectedSuffix, path)
	}
}

func TestLoad_FileNotExists(t *testing.T) {
	isolate(t)

	s, found, err := NewManager("nonexistent").Load()
	if err != nil {
		t.Errorf("Load() error = %v, want nil for nonexistent file", err)
	}
	if found {
		t.Error("Load() returned found=true for nonexistent file, want false")
	}
	if s != Defaults() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	m := NewManager("trayshield")
	writeRaw(t, m, `{"icon_path": "C:\\icons\\app.ico", "labels": {"exit": "退出"}}`)

	s, found, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() returned found=false")
	}
	if s.IconPath != `C:\icons\app.ico` {
		t.Errorf("IconPath = %q", s.IconPath)
	}
	if s.PollIntervalMS != DefaultPollIntervalMS {
		t.Errorf("PollIntervalMS = %d, want %d", s.PollIntervalMS, DefaultPollIntervalMS)
	}
	want := menu.DefaultLabels()
	want.Exit = "退出"
	if s.Labels != want {
		t.Errorf("Labels = %+v, want %+v", s.Labels, want)
	}
}

func TestLoad_BadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "corrupted", content: "not valid json {{{"},
		{name: "empty", content: ""},
		{name: "wrong type", content: `{"poll_interval_ms": "fast"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			m := NewManager("trayshield")
			writeRaw(t, m, tt.content)

			s, found, err := m.Load()
			if err == nil {
				t.Error("Load() should return error")
			}
			if found {
				t.Error("Load() returned found=true")
			}
			if s != Defaults() {
				t.Errorf("Load() = %+v, want defaults on error", s)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "unset", in: 0, want: DefaultPollIntervalMS},
		{name: "negative", in: -5, want: DefaultPollIntervalMS},
		{name: "too fast", in: 10, want: MinPollIntervalMS},
		{name: "minimum", in: MinPollIntervalMS, want: MinPollIntervalMS},
		{name: "slow", in: 1000, want: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settings{PollIntervalMS: tt.in}.Normalize()
			if got.PollIntervalMS != tt.want {
				t.Errorf("PollIntervalMS = %d, want %d", got.PollIntervalMS, tt.want)
			}
			if got.Labels != menu.DefaultLabels() {
				t.Errorf("Labels = %+v, want defaults", got.Labels)
			}
		})
	}
}

func TestPollInterval(t *testing.T) {
	if got := Defaults().PollInterval(); got != 200*time.Millisecond {
		t.Errorf("PollInterval() = %v, want 200ms", got)
	}
	if got := (Settings{PollIntervalMS: 1}).PollInterval(); got != 50*time.Millisecond {
		t.Errorf("PollInterval() = %v, want 50ms", got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)
	m := NewManager("trayshield")

	original := Settings{
		Labels:         menu.Labels{About: "关于", Toggle: "显示/隐藏", Exit: "退出", FallbackName: "控制台"},
		IconPath:       "app.png",
		PollIntervalMS: 500,
		NotifyOnStart:  true,
		Debug:          true,
	}
	if err := m.Save(original); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, found, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() returned found=false, expected true")
	}
	if loaded != original {
		t.Errorf("Load() = %+v, want %+v", loaded, original)
	}

	path, err := m.Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if mode := info.Mode(); mode.Perm() != 0o600 {
		t.Logf("Warning: File permissions are %o, expected 0o600", mode.Perm())
	}
}
