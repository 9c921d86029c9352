package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey type for context values to avoid collisions.
type ContextKey string

// Context keys lifted into every log entry when present.
const (
	RequestIDKey ContextKey = "request_id"
	MeetingKey   ContextKey = "meeting"
)

// Config holds logger configuration.
type Config struct {
	Level  string
	Format string // "json" or "text"
	Output io.Writer
}

type implLogger struct {
	zl zerolog.Logger
}

// New creates a new Logger instance writing human-readable output to stdout
func New(level string) Logger {
	return NewWithConfig(Config{Level: level, Format: "text"})
}

// NewWithConfig creates a Logger from cfg. Unknown levels fall back to info.
func NewWithConfig(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return &implLogger{
		zl: zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Str("service", "meetflow").Logger(),
	}
}

// WithRequestID returns a context whose log entries carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithMeeting returns a context whose log entries carry the meeting source name.
func WithMeeting(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, MeetingKey, name)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.emit(ctx, l.zl.Debug(), msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.emit(ctx, l.zl.Info(), msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.emit(ctx, l.zl.Warn(), msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.emit(ctx, l.zl.Error(), msg, args)
}

func (l *implLogger) emit(ctx context.Context, event *zerolog.Event, msg string, args []interface{}) {
	if event == nil {
		return
	}
	if ctx != nil {
		if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
			event = event.Str(string(RequestIDKey), id)
		}
		if m, ok := ctx.Value(MeetingKey).(string); ok && m != "" {
			event = event.Str(string(MeetingKey), m)
		}
	}
	event.Msgf(msg, args...)
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...interface{}) {}
func (nopLogger) Info(context.Context, string, ...interface{})  {}
func (nopLogger) Warn(context.Context, string, ...interface{})  {}
func (nopLogger) Error(context.Context, string, ...interface{}) {}

// NewNop returns a logger that discards all output. Useful in tests.
func NewNop() Logger {
	return nopLogger{}
}
