package executor

import "context"

// Executor runs the external binaries the pipeline depends on
// (whisper.cpp for transcription, ffmpeg for audio extraction).
type Executor interface {
	// Execute runs name with args and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir is Execute with the working directory set to dir.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// Available reports whether name resolves to an executable.
	Available(name string) bool
}
