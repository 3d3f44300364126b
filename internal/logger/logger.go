// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/talgya/hexboard/internal/config"
)

// Init installs the default logger. Output is text on a terminal and JSON
// otherwise, unless JSON is forced by the config.
func Init(cfg config.LoggingConfig) *slog.Logger {
	asJSON := cfg.JSON || !isatty.IsTerminal(os.Stdout.Fd())
	l := New(os.Stdout, cfg.Level, asJSON)
	slog.SetDefault(l)
	l.With("component", "logger").Debug("logger initialized", "level", cfg.Level, "json", asJSON)
	return l
}

// New builds a logger writing to w.
func New(w io.Writer, level string, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a config level name to a slog level. Unknown names log
// at info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
