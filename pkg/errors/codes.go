package errors

// ErrorCodeInfo contains metadata about an error code.
type ErrorCodeInfo struct {
	Code            ErrorCode
	Retryable       bool
	Description     string
	SuggestedAction string
}

// ErrorCodeRegistry maps error codes to their metadata.
var ErrorCodeRegistry = map[ErrorCode]ErrorCodeInfo{
	ErrTimeout: {
		Code:            ErrTimeout,
		Retryable:       true,
		Description:     "Operation exceeded time limit",
		SuggestedAction: "Raise gemini.timeout or check collaborator latency",
	},
	ErrContextCancelled: {
		Code:            ErrContextCancelled,
		Retryable:       false,
		Description:     "Operation cancelled by user or system",
		SuggestedAction: "Check if cancellation was intentional",
	},
	ErrRateLimit: {
		Code:            ErrRateLimit,
		Retryable:       true,
		Description:     "API rate limit or quota exceeded",
		SuggestedAction: "Add more keys to gemini.api_keys or wait for the quota to reset",
	},
	ErrModelUnavailable: {
		Code:            ErrModelUnavailable,
		Retryable:       true,
		Description:     "Summarization or translation model unavailable",
		SuggestedAction: "Verify gemini.api_keys and network access; rule-based fallbacks are used meanwhile",
	},
	ErrTranscriptionFailed: {
		Code:            ErrTranscriptionFailed,
		Retryable:       false,
		Description:     "Transcription wholly failed",
		SuggestedAction: "Check whisper.binary_path and whisper.model_path, then re-drop the file",
	},
	ErrSourceMissing: {
		Code:            ErrSourceMissing,
		Retryable:       false,
		Description:     "Source file missing or unreadable",
		SuggestedAction: "Verify the path and file permissions",
	},
	ErrUnsupportedFormat: {
		Code:            ErrUnsupportedFormat,
		Retryable:       false,
		Description:     "No loader for this file type",
		SuggestedAction: "Use a media file or a .vtt/.srt/.txt/.json transcript",
	},
	ErrParseError: {
		Code:            ErrParseError,
		Retryable:       false,
		Description:     "Collaborator output could not be parsed",
		SuggestedAction: "Inspect the raw transcript output",
	},
	ErrEmptyContent: {
		Code:            ErrEmptyContent,
		Retryable:       false,
		Description:     "Content is empty or missing",
		SuggestedAction: "Verify the source contains speech or text",
	},
	ErrProcessingError: {
		Code:            ErrProcessingError,
		Retryable:       false,
		Description:     "Unclassified processing error",
		SuggestedAction: "Check logs for more details",
	},
}

// IsRetryable returns true if the given error code represents a transient, retryable error.
func IsRetryable(code ErrorCode) bool {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Retryable
	}
	return false
}

// GetSuggestedAction returns the suggested action for the given error code.
func GetSuggestedAction(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.SuggestedAction
	}
	return "Check logs for more details"
}

// GetDescription returns the human-readable description for the given error code.
func GetDescription(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Description
	}
	return "Unknown error"
}
