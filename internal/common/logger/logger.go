package logger

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger is a thin wrapper around slog's JSON handler that stamps every
// entry with the service name and hostname.
type Logger struct {
	sl *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{
		sl: slog.New(h).With(
			slog.String("service", service),
			slog.String("hostname", hostname),
		),
	}
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.sl.Info(action, attrs(fields)...)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.sl.Debug(action, attrs(fields)...)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	args := attrs(fields)
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	l.sl.Error(action, args...)
}

func attrs(fields map[string]any) []any {
	out := make([]any, 0, len(fields))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}

// GenerateRequestID returns a fresh correlation id for one request or
// consumed message.
func GenerateRequestID() string { return uuid.NewString() }
