package insight

import (
	"time"

	"github.com/nguyentantai21042004/meetflow/internal/logger"
	"github.com/nguyentantai21042004/meetflow/internal/speaker"
)

// MainSpeakerShare is the speaking share that makes a speaker a main speaker.
const MainSpeakerShare = 10.0

// Options tune a single analysis.
type Options struct {
	// MergeGap joins consecutive same-speaker segments closer than this many seconds.
	MergeGap float64
	// SpeakerPool is the number of speakers time-coded segments are spread over.
	SpeakerPool int
	// TranslateTo is an ISO 639-1 code; empty or "en" skips translation.
	TranslateTo string
	// SpeakerNames maps speaker labels ("Speaker 1") to display names. It is
	// applied to the labelled transcript and the participation summary.
	SpeakerNames map[string]string
}

// Analyzer runs the analysis core over one transcript. It holds only its
// collaborators; every call works on fresh values.
type Analyzer struct {
	opts       Options
	segmenter  *speaker.Segmenter
	summarizer Summarizer
	translator Translator
	observer   Observer
	logger     logger.Logger
	now        func() time.Time
}

// New creates an Analyzer. translator and observer may be nil.
func New(opts Options, sum Summarizer, tr Translator, obs Observer, log logger.Logger) *Analyzer {
	if opts.MergeGap <= 0 {
		opts.MergeGap = speaker.DefaultGap
	}
	if opts.SpeakerPool <= 0 {
		opts.SpeakerPool = speaker.DefaultPool
	}
	return &Analyzer{
		opts:       opts,
		segmenter:  speaker.New(speaker.RoundRobin{Pool: opts.SpeakerPool}),
		summarizer: sum,
		translator: tr,
		observer:   obs,
		logger:     log,
		now:        time.Now,
	}
}
