// Package logging builds the application's slog logger. Output goes to a file
// because the terminal belongs to the TUI; without a path nothing is written.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel parses a log level string into slog.Level. Unknown values map to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Open returns a text logger appending to path and a func closing the file.
// An empty path yields a discarding logger and a no-op close.
func Open(path string, level slog.Level) (*slog.Logger, func() error, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("app", "taskfocus"), f.Close, nil
}
