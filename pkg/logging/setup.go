package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the name of the log file inside the log directory.
const FileName = "trayshield.log"

// Options configures Setup.
type Options struct {
	// Stderr receives a copy of every record. A detached process has no
	// usable stderr; the first write error there mutes it.
	Stderr io.Writer
	// Dir is the log directory. Empty disables file logging.
	Dir string
	// Role is attached to every record ("launcher" or "supervisor").
	Role  string
	Debug bool
}

// Logger is a configured process logger and the file backing it, if any.
type Logger struct {
	*slog.Logger
	fan  *FanOut
	file *os.File
	path string
}

// Path returns the log file path, or "" when logging to stderr only.
func (l *Logger) Path() string {
	return l.path
}

// Muted returns the destinations that stopped receiving records because
// writing to them failed.
func (l *Logger) Muted() []string {
	return l.fan.Muted()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// DefaultDir returns the per-user log directory.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache directory: %w", err)
	}
	return filepath.Join(dir, "trayshield"), nil
}

// Setup builds the process logger. Failure to open the log file is not fatal:
// the logger falls back to stderr and the failure is logged there.
func Setup(opts Options) *Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{
		AddSource: opts.Debug,
		Level:     level,
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	sinks := []Sink{{Name: "stderr", Handler: slog.NewTextHandler(stderr, hopts)}}

	l := &Logger{}
	var openErr error
	if opts.Dir != "" {
		f, path, err := openLogFile(opts.Dir)
		if err != nil {
			openErr = err
		} else {
			l.file = f
			l.path = path
			sinks = append(sinks, Sink{Name: "file", Handler: slog.NewTextHandler(f, hopts)})
		}
	}

	l.fan = NewFanOut(sinks...)
	l.Logger = slog.New(l.fan).With("role", opts.Role, "pid", os.Getpid())
	if openErr != nil {
		l.Warn("[LOG] File logging disabled", "error", openErr)
	}
	return l
}

func openLogFile(dir string) (*os.File, string, error) {
	const dirPerm = 0o700
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, "", fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, "", fmt.Errorf("open log file: %w", err)
	}
	return f, path, nil
}
