package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"npisearch/internal/config"
)

// Setup redirects the standard logger to a rotating file.
// The TUI owns the terminal, so nothing may be logged to stdout or stderr.
// The returned closer flushes and closes the file.
func Setup(settings config.LogSettings) io.Closer {
	w := NewRotatingWriter(settings)
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return w
}

// NewRotatingWriter returns a lumberjack writer for the configured log file
func NewRotatingWriter(settings config.LogSettings) *lumberjack.Logger {
	file := settings.File
	if file == "" {
		file = filepath.Join(os.TempDir(), "npisearch.log")
	}
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    settings.MaxSizeMB, // megabytes
		MaxBackups: settings.MaxBackups,
		MaxAge:     28, // days
	}
}

// NewRequestLogger returns the structured logger used by the proxy
func NewRequestLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
