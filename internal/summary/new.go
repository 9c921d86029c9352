package summary

import (
	"github.com/nguyentantai21042004/meetflow/internal/gemini"
	"github.com/nguyentantai21042004/meetflow/internal/logger"
)

// Service summarizes transcripts with a Model and falls back to the local
// extractive summary when the model is missing or fails.
type Service struct {
	model  Model
	logger logger.Logger
}

// New creates a Service. model may be nil.
func New(model Model, log logger.Logger) *Service {
	return &Service{model: model, logger: log}
}

type geminiModel struct {
	gen gemini.Generator
}

// NewGemini creates a Model backed by Gemini.
func NewGemini(gen gemini.Generator) Model {
	return &geminiModel{gen: gen}
}
