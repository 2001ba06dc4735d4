package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so handlers and the chat hub share one
// structured logger without importing slog everywhere.
type Logger struct {
	*slog.Logger
}

// New returns a JSON logger. Debug level is enabled outside production.
func New(environment string) *Logger {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return &Logger{Logger: slog.New(handler)}
}

// Fatal logs at error level and exits.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}

// With returns a logger with the given attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}
