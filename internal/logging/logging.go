// Package logging builds the structured loggers shared by all frontends.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/savetheearth/internal/config"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "LOG_LEVEL"

// New returns a timestamped logger writing to w. The level is read from
// LOG_LEVEL and defaults to info.
func New(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           ParseLevel(config.GetEnv(LevelEnv, "info")),
	})
}

// OpenFile returns a logger appending to path, for frontends that own the
// terminal. An empty path yields a discarding logger. The returned func
// closes the file.
func OpenFile(path, prefix string) (*log.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, prefix), f.Close, nil
}

// Discard returns a logger that drops everything. Used by tests and
// components constructed without a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel maps a level name to a log level, falling back to info.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
