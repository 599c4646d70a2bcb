package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the application logger.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to stdout at the given slog level.
// Format "json" selects the JSON handler, anything else the text handler.
func New(level int, format ...string) *Logger {
	return NewWithWriter(os.Stdout, level, format...)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level int, format ...string) *Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(level)}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if len(format) > 0 && strings.EqualFold(format[0], "json") {
		h = slog.NewJSONHandler(w, opts)
	}

	return &Logger{Logger: slog.New(h)}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
