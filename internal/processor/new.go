package processor

import (
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/meetflow/internal/archive"
	"github.com/nguyentantai21042004/meetflow/internal/config"
	"github.com/nguyentantai21042004/meetflow/internal/insight"
	"github.com/nguyentantai21042004/meetflow/internal/logger"
	"github.com/nguyentantai21042004/meetflow/internal/metrics"
	"github.com/nguyentantai21042004/meetflow/internal/transcript"
)

type implProcessor struct {
	cfg         *config.Config
	transcriber transcript.Transcriber
	analyzer    *insight.Analyzer
	store       *archive.Store
	metrics     *metrics.Metrics
	logger      logger.Logger

	// whisper is CPU and memory heavy; media transcription gets its own limit.
	whisperSlots *semaphore.Weighted
}

// New creates a Processor. store and m may be nil.
func New(cfg *config.Config, tr transcript.Transcriber, an *insight.Analyzer, store *archive.Store, m *metrics.Metrics, log logger.Logger) Processor {
	slots := cfg.Whisper.MaxParallel
	if slots <= 0 {
		slots = 1
	}
	return &implProcessor{
		cfg:          cfg,
		transcriber:  tr,
		analyzer:     an,
		store:        store,
		metrics:      m,
		logger:       log,
		whisperSlots: semaphore.NewWeighted(int64(slots)),
	}
}
