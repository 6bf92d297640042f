package config

import (
	"io"
	"log/slog"
	"os"

	"vidgrab/internal/dirs"
)

// NewLogger returns a text logger on w; debug level when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// OpenLogFile opens the TUI log in the state directory for appending.
func OpenLogFile() (*os.File, error) {
	p, err := dirs.LogFile()
	if err != nil {
		return nil, err
	}
	if err := dirs.EnsureAll(); err != nil {
		return nil, err
	}
	return os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
