// Package errors classifies failures of the meeting pipeline and its external
// collaborators (transcription, summarization, translation).
//
// Collaborators return plain (T, error) pairs. The orchestration layer runs the
// error through ClassifyError and decides whether to degrade to a local
// fallback or to surface the failure:
//
//	import mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
//
//	summary, err := model.Summarize(ctx, text)
//	if err != nil {
//	    pe := mferrors.ClassifyError(err, "summarize")
//	    log.Warn(ctx, "summarizer unavailable (%s), using rules", pe.Code)
//	}
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a classified pipeline error.
type ErrorCode string

const (
	ErrTimeout             ErrorCode = "timeout"
	ErrContextCancelled    ErrorCode = "context_cancelled"
	ErrRateLimit           ErrorCode = "rate_limit"
	ErrModelUnavailable    ErrorCode = "model_unavailable"
	ErrTranscriptionFailed ErrorCode = "transcription_failed"
	ErrSourceMissing       ErrorCode = "source_missing"
	ErrUnsupportedFormat   ErrorCode = "unsupported_format"
	ErrParseError          ErrorCode = "parse_error"
	ErrEmptyContent        ErrorCode = "empty_content"
	ErrProcessingError     ErrorCode = "processing_error"
)

// Sentinel errors for conditions detected inside the pipeline itself.
var (
	// ErrTranscriptFailed marks a transcript whose text carries the "Error:" sentinel.
	ErrTranscriptFailed = errors.New("transcription failed")

	// ErrUnsupported marks a source file the pipeline has no loader for.
	ErrUnsupported = errors.New("unsupported format")

	// ErrNoModel is returned by collaborators that were constructed without credentials.
	ErrNoModel = errors.New("model not configured")
)

// PipelineError is a structured error for pipeline failures.
type PipelineError struct {
	Code    ErrorCode
	Stage   string
	Message string
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// New creates a PipelineError with an explicit code.
func New(code ErrorCode, stage string, cause error) *PipelineError {
	msg := string(code)
	if cause != nil {
		msg = cause.Error()
	}
	return &PipelineError{Code: code, Stage: stage, Message: msg, Cause: cause}
}

// ClassifyError inspects an error and returns a *PipelineError with the appropriate code.
// An error that is already a *PipelineError keeps its code. Unknown errors map to ErrProcessingError.
func ClassifyError(err error, stage string) *PipelineError {
	if err == nil {
		return nil
	}

	var existing *PipelineError
	if errors.As(err, &existing) {
		return existing
	}

	pe := &PipelineError{
		Stage:   stage,
		Message: err.Error(),
		Cause:   err,
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		pe.Code = ErrTimeout
		pe.Message = "operation timed out"
		return pe
	case errors.Is(err, context.Canceled):
		pe.Code = ErrContextCancelled
		pe.Message = "operation cancelled"
		return pe
	case errors.Is(err, ErrTranscriptFailed):
		pe.Code = ErrTranscriptionFailed
		return pe
	case errors.Is(err, ErrUnsupported):
		pe.Code = ErrUnsupportedFormat
		return pe
	case errors.Is(err, ErrNoModel):
		pe.Code = ErrModelUnavailable
		return pe
	}

	lower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(lower, "no such file") || strings.Contains(lower, "not found"):
		pe.Code = ErrSourceMissing
	case strings.Contains(lower, "empty content") || strings.Contains(lower, "content is empty"):
		pe.Code = ErrEmptyContent
	case strings.Contains(lower, "rate limit") || strings.Contains(lower, "429") ||
		strings.Contains(lower, "too many requests") || strings.Contains(lower, "quota") ||
		strings.Contains(lower, "resource_exhausted"):
		pe.Code = ErrRateLimit
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "unavailable") ||
		strings.Contains(lower, "503") || strings.Contains(lower, "no such host"):
		pe.Code = ErrModelUnavailable
	case strings.Contains(lower, "unmarshal") || strings.Contains(lower, "parse") ||
		strings.Contains(lower, "invalid character"):
		pe.Code = ErrParseError
	default:
		pe.Code = ErrProcessingError
	}
	return pe
}

// CodeOf returns the classified code of err, or "" for nil.
func CodeOf(err error) ErrorCode {
	if pe := ClassifyError(err, ""); pe != nil {
		return pe.Code
	}
	return ""
}

// IsRateLimit reports whether err classifies as a rate limit or quota error.
func IsRateLimit(err error) bool {
	return CodeOf(err) == ErrRateLimit
}

// IsTerminal reports whether err must be surfaced to the caller instead of
// being replaced by a local fallback.
func IsTerminal(err error) bool {
	switch CodeOf(err) {
	case ErrTranscriptionFailed, ErrSourceMissing, ErrUnsupportedFormat, ErrContextCancelled:
		return true
	}
	return false
}
