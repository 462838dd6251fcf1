package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the process logger. prod logs JSON; everything else logs text.
// level overrides the env default when it names a slog level.
func New(env, level string) *slog.Logger {
	return newTo(os.Stdout, env, level)
}

func newTo(w io.Writer, env, level string) *slog.Logger {
	lvl := slog.LevelDebug
	if env == "prod" {
		lvl = slog.LevelInfo
	}
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(strings.ToUpper(level))); err == nil {
			lvl = parsed
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", "cat-tracker", "env", env)
}
