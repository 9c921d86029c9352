package transcript

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

var mediaExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true, ".m4v": true, ".flv": true,
	".wav": true, ".mp3": true, ".m4a": true, ".flac": true, ".ogg": true,
}

// IsMedia reports whether path has an audio or video extension.
func IsMedia(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsTranscript reports whether path has a transcript file extension.
func IsTranscript(path string) bool {
	_, ok := loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Supported reports whether the pipeline can ingest path.
func Supported(path string) bool {
	return IsMedia(path) || IsTranscript(path)
}

func (r *implRouter) Transcribe(ctx context.Context, path string) (*Result, error) {
	switch {
	case IsTranscript(path):
		r.logger.Debug(ctx, "Loading transcript file: %s", path)
		return Load(path)
	case IsMedia(path) && r.media != nil:
		return r.media.Transcribe(ctx, path)
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), mferrors.ErrUnsupported)
}
