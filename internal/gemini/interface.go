package gemini

import "context"

// Generator sends a prompt to a hosted model and returns the response text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
