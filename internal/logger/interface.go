package logger

import "context"

// Logger is the pipeline-wide logging contract. Messages are printf-style;
// request and meeting identifiers stored in ctx are attached as fields.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}
