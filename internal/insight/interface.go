package insight

import (
	"context"

	"github.com/nguyentantai21042004/meetflow/internal/summary"
)

// Summarizer produces a meeting summary. It returns a usable Result even
// when it also returns an error; the error reports a degraded fallback.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (summary.Result, error)
}

// Translator translates a speaker-labelled transcript. On failure it returns
// the original text together with the error.
type Translator interface {
	PreservingSpeakers(ctx context.Context, transcript, lang string) (string, error)
}

// Observer receives pipeline measurements. *metrics.Metrics implements it.
type Observer interface {
	RecordFallback(collaborator, code string)
	RecordRisk(priority string, urgency int)
	RecordStage(stage string, seconds float64)
}
