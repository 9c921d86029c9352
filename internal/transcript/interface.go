package transcript

import (
	"context"
	"io"
)

// Transcriber turns a media or transcript file into a Result.
//
// A wholly failed transcription returns a Result whose text starts with
// FailurePrefix together with an error wrapping errors.ErrTranscriptFailed.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*Result, error)
}

// Loader parses an already transcribed file.
type Loader func(r io.Reader) (*Result, error)
