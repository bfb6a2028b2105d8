package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "adler",
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file, creating its
// directory if needed
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// ParseLevel converts a level name, defaulting to info for unknown names
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// LoadFailed logs a storage read that fell back to an empty collection
func (l *Logger) LoadFailed(key string, err error) {
	l.Warn("load books failed, starting empty",
		"key", key,
		"error", err)
}

// Saved logs a completed snapshot write
func (l *Logger) Saved(key string, books int, bytes int) {
	l.Debug("books saved",
		"key", key,
		"books", books,
		"bytes", bytes)
}

// SaveFailed logs a snapshot write that did not reach the store
func (l *Logger) SaveFailed(key string, err error) {
	l.Error("save books failed",
		"key", key,
		"error", err)
}

// RenderFallback logs a render failure that degraded to the textual tree
func (l *Logger) RenderFallback(err error) {
	l.Warn("outline render failed, using fallback tree",
		"error", err)
}

// Exported logs a finished export
func (l *Logger) Exported(bookID, path string) {
	l.Info("book exported",
		"book", bookID,
		"path", path)
}

// ExportFailed logs an export error
func (l *Logger) ExportFailed(bookID string, err error) {
	l.Error("export failed",
		"book", bookID,
		"error", err)
}
