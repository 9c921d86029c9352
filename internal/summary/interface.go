package summary

import "context"

// Model produces an abstractive summary of a transcript.
type Model interface {
	Summarize(ctx context.Context, text string) (string, error)
}
