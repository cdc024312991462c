package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// ParseLevel maps a config level name to a log level, defaulting to info
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

// OrDiscard returns l, or a discarding logger when l is nil
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// BuildStarted logs the start of a share manifest build
func (l *Logger) BuildStarted(runID, contentDir string) {
	l.Info("build started",
		"run", runID,
		"content_dir", contentDir)
}

// BuildCompleted logs the completion of a build
func (l *Logger) BuildCompleted(runID string, encoded, reused, errors int, duration time.Duration) {
	l.Info("build completed",
		"run", runID,
		"cards_encoded", encoded,
		"cards_reused", reused,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// CardEncoded logs a freshly encoded card
func (l *Logger) CardEncoded(file string, size int) {
	l.Info("card encoded",
		"file", file,
		"pako_bytes", size)
}

// EncodeFailed logs a failure of the share encoding pipeline
func (l *Logger) EncodeFailed(step string, err error) {
	l.Error("share encoding failed",
		"step", step,
		"error", err)
}

// AssetMissing logs a background image that has no inlinable asset
func (l *Logger) AssetMissing(path string) {
	l.Warn("image not found",
		"path", path)
}

// AssetFailed logs an error while reading a background image
func (l *Logger) AssetFailed(path string, err error) {
	l.Error("error reading background image",
		"path", path,
		"error", err)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(contentDir, outputDir string, interval time.Duration) {
	l.Debug("config loaded",
		"content_dir", contentDir,
		"output_dir", outputDir,
		"interval", interval)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
