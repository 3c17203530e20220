// Package debug provides logging and timing for the plugin.
//
// AviUtl has no console, so the default logger writes to stderr only for
// development hosts; a file sink is configured at init when requested.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Name is the logger name stamped on every line.
const Name = "autosaver"

var (
	defaultLogger hclog.Logger = New(os.Stderr, "info")
	defaultMu     sync.RWMutex
)

// New creates a logger writing to output at the given level name
// (trace, debug, info, warn, error, off). Unknown names mean info.
func New(output io.Writer, level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  parseLevel(level),
		Output: output,
	})
}

// NewFileLogger creates a logger that appends to filename. The returned
// closer releases the file.
func NewFileLogger(filename, level string) (hclog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(file, level), file, nil
}

func parseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(level)
	if l == hclog.NoLevel {
		return hclog.Info
	}
	return l
}

// Default returns the process-wide logger.
func Default() hclog.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l hclog.Logger) {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// SetLevel changes the level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

// Debug logs to the default logger.
func Debug(msg string, args ...interface{}) {
	Default().Debug(msg, args...)
}

// Info logs to the default logger.
func Info(msg string, args ...interface{}) {
	Default().Info(msg, args...)
}

// Warn logs to the default logger.
func Warn(msg string, args ...interface{}) {
	Default().Warn(msg, args...)
}

// Error logs to the default logger.
func Error(msg string, args ...interface{}) {
	Default().Error(msg, args...)
}
