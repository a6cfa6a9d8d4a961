package logger

import (
	"io"
	"log/slog"
	"os"

	ports "blog-service/internal/domain/ports/output"
)

const (
	envDev  = "dev"
	envTest = "test"
	envProd = "prod"
)

type Logger struct {
	*slog.Logger
}

// New picks the handler by environment: readable text while developing,
// JSON in production, nothing below warn in tests.
func New(env string) *Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *Logger {
	var handler slog.Handler
	switch env {
	case envProd:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case envTest:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return &Logger{Logger: slog.New(handler)}
}

func (l *Logger) With(args ...any) ports.Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}
