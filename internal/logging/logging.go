// Package logging builds the charmbracelet/log loggers used by the CLI,
// the SSH server and game sessions.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// LogFile is the session log written while the alt screen owns the terminal.
const LogFile = "nestmaze.log"

// ParseLevel converts a --log-level value into a log.Level.
// An empty string means info.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: unknown level %q (expected debug, info, warn or error)", s)
	}
	return lvl, nil
}

// New returns a logger writing to w with timestamps and the given prefix.
func New(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenFile returns a logger appending to dir/nestmaze.log, creating dir if
// needed. The returned closer must be closed when the session ends.
func OpenFile(dir, prefix string, level log.Level) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: cannot create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, LogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: cannot open %s: %w", path, err)
	}

	return New(f, prefix, level), f, nil
}
