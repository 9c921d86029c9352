// Package summary is the summarization collaborator: a hosted model with a
// rule-based extractive fallback, plus action item and decision extraction.
package summary

import (
	"context"
	"fmt"
	"strings"

	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

// Summary sources.
const (
	SourceModel = "model"
	SourceRules = "rules"
)

// Result is a meeting summary with its extracted action items and decisions.
type Result struct {
	Summary      string   `json:"summary"`
	ActionItems  []string `json:"action_items"`
	KeyDecisions []string `json:"key_decisions"`
	Source       string   `json:"source"`
}

const summaryPrompt = `You are an assistant that summarizes business meeting transcripts.
Write a concise summary in English of at most five sentences covering the main topics,
the decisions taken and any open issues. Reply with plain text only, no markdown.

Transcript:
---
%s
---`

func (m *geminiModel) Summarize(ctx context.Context, text string) (string, error) {
	out, err := m.gen.Generate(ctx, fmt.Sprintf(summaryPrompt, text))
	if err != nil {
		return "", fmt.Errorf("gemini summarize: %w", err)
	}
	return out, nil
}

// Summarize never fails to produce a Result. When the model is missing or
// returns an error the rule-based summary is used and the classified model
// error is returned alongside it.
func (s *Service) Summarize(ctx context.Context, text string) (Result, error) {
	res := Result{
		ActionItems:  ActionItems(text),
		KeyDecisions: KeyDecisions(text),
	}

	if s.model == nil {
		res.Summary, res.Source = RuleBased(text), SourceRules
		return res, nil
	}

	out, err := s.model.Summarize(ctx, text)
	if err == nil && strings.TrimSpace(out) == "" {
		err = mferrors.New(mferrors.ErrEmptyContent, "summarize", fmt.Errorf("empty summary"))
	}
	if err != nil {
		pe := mferrors.ClassifyError(err, "summarize")
		s.logger.Warn(ctx, "Summarizer unavailable (%s), using rule-based summary: %v", pe.Code, err)
		res.Summary, res.Source = RuleBased(text), SourceRules
		return res, pe
	}

	res.Summary, res.Source = strings.TrimSpace(out), SourceModel
	return res, nil
}
