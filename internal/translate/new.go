package translate

import (
	"github.com/nguyentantai21042004/meetflow/internal/gemini"
	"github.com/nguyentantai21042004/meetflow/internal/logger"
)

const (
	// DefaultChunkSize is the largest piece of text sent in one request.
	DefaultChunkSize = 4000

	maxInFlight = 4
)

// Service translates transcripts chunk by chunk with a Model. Pieces that
// fail to translate keep their original text.
type Service struct {
	model     Model
	logger    logger.Logger
	chunkSize int
}

// New creates a Service. model may be nil, in which case every call returns
// the original text together with an error.
func New(model Model, log logger.Logger) *Service {
	return &Service{model: model, logger: log, chunkSize: DefaultChunkSize}
}

type geminiModel struct {
	gen gemini.Generator
}

// NewGemini creates a Model backed by Gemini.
func NewGemini(gen gemini.Generator) Model {
	return &geminiModel{gen: gen}
}
