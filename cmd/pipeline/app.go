package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentantai21042004/meetflow/internal/archive"
	"github.com/nguyentantai21042004/meetflow/internal/config"
	"github.com/nguyentantai21042004/meetflow/internal/gemini"
	"github.com/nguyentantai21042004/meetflow/internal/insight"
	"github.com/nguyentantai21042004/meetflow/internal/logger"
	"github.com/nguyentantai21042004/meetflow/internal/metrics"
	"github.com/nguyentantai21042004/meetflow/internal/processor"
	"github.com/nguyentantai21042004/meetflow/internal/summary"
	"github.com/nguyentantai21042004/meetflow/internal/transcript"
	"github.com/nguyentantai21042004/meetflow/internal/translate"
	"github.com/nguyentantai21042004/meetflow/pkg/executor"
)

// app holds the wired pipeline shared by every subcommand.
type app struct {
	cfg         *config.Config
	logger      logger.Logger
	transcriber transcript.Transcriber
	translator  *translate.Service
	analyzer    *insight.Analyzer
	store       *archive.Store
	metrics     *metrics.Metrics
	registry    *prometheus.Registry
	processor   processor.Processor
}

func loadApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.NewWithConfig(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	return newApp(cfg, log)
}

func newApp(cfg *config.Config, log logger.Logger) (*app, error) {
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()

	var media transcript.Transcriber
	if cfg.Whisper.BinaryPath != "" {
		media = transcript.NewWhisper(transcript.WhisperConfig{
			BinaryPath: cfg.Whisper.BinaryPath,
			ModelPath:  cfg.Whisper.ModelPath,
			Language:   cfg.Whisper.Language,
			Prompt:     cfg.Whisper.Prompt,
			Threads:    cfg.Whisper.Threads,
			UseGPU:     cfg.Whisper.UseGPU,
			FFmpegPath: cfg.FFmpeg.BinaryPath,
			SampleRate: cfg.FFmpeg.SampleRate,
			TempDir:    cfg.Paths.Temp,
		}, exec, log)
	}
	tr := transcript.NewRouter(media, log)

	var (
		sumModel   summary.Model
		translator *translate.Service
		insightTr  insight.Translator
	)
	if len(cfg.Gemini.APIKeys) > 0 {
		gen := gemini.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.Gemini.Timeout, log)
		sumModel = summary.NewGemini(gen)
		translator = translate.New(translate.NewGemini(gen), log)
		insightTr = translator
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	an := insight.New(insight.Options{
		MergeGap:     cfg.Analysis.MergeGapSeconds,
		SpeakerPool:  cfg.Analysis.SpeakerPool,
		TranslateTo:  cfg.Analysis.TranslateTo,
		SpeakerNames: cfg.Analysis.SpeakerNames,
	}, summary.New(sumModel, log), insightTr, m, log)

	store, err := archive.Open(cfg.Paths.Database)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	return &app{
		cfg:         cfg,
		logger:      log,
		transcriber: tr,
		translator:  translator,
		analyzer:    an,
		store:       store,
		metrics:     m,
		registry:    reg,
		processor:   processor.New(cfg, tr, an, store, m, log),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}
	if cfg.Paths.Database != "" && cfg.Paths.Database != ":memory:" {
		dirs = append(dirs, filepath.Dir(cfg.Paths.Database))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
