// Package gemini is the shared Gemini API client behind the summarization
// and translation collaborators.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

// Generate sends prompt to Gemini. Rate limited keys are rotated out until
// every key has been tried once.
func (g *implGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", mferrors.ErrNoModel
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx, client, err := g.acquire(ctx)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if mferrors.IsRateLimit(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		text := responseText(result)
		if text == "" {
			return "", fmt.Errorf("gemini returned empty content")
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// acquire returns the current key index and its client, creating the client
// on first use.
func (g *implGenerator) acquire(ctx context.Context) (int, *genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := g.currentKey
	if c, ok := g.clients[idx]; ok {
		return idx, c, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKeys[idx],
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return idx, nil, err
	}
	g.clients[idx] = c
	return idx, c, nil
}

// rotateKey moves past idx unless another caller already did.
func (g *implGenerator) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
