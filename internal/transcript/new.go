package transcript

import (
	"github.com/nguyentantai21042004/meetflow/internal/logger"
	"github.com/nguyentantai21042004/meetflow/pkg/executor"
)

// WhisperConfig configures the whisper.cpp transcriber.
type WhisperConfig struct {
	BinaryPath string
	ModelPath  string
	Language   string
	Prompt     string
	Threads    int
	UseGPU     bool

	FFmpegPath string
	SampleRate int
	TempDir    string
}

type implWhisper struct {
	cfg      WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a Transcriber backed by the whisper.cpp CLI.
func NewWhisper(cfg WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 4
	}
	return &implWhisper{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

type implRouter struct {
	media  Transcriber
	logger logger.Logger
}

// NewRouter creates a Transcriber that loads transcript files directly and
// hands media files to the media transcriber. media may be nil, in which
// case media files are rejected as unsupported.
func NewRouter(media Transcriber, log logger.Logger) Transcriber {
	return &implRouter{
		media:  media,
		logger: log,
	}
}
