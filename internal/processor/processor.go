package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/nguyentantai21042004/meetflow/internal/archive"
	"github.com/nguyentantai21042004/meetflow/internal/export"
	"github.com/nguyentantai21042004/meetflow/internal/insight"
	"github.com/nguyentantai21042004/meetflow/internal/logger"
	"github.com/nguyentantai21042004/meetflow/internal/metrics"
	"github.com/nguyentantai21042004/meetflow/internal/transcript"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

// Process orchestrates the whole pipeline for one inbox file.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()
	ctx = logger.WithMeeting(ctx, filepath.Base(path))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting meeting processing: %s", path)
	p.logger.Info(ctx, "========================================")

	// Step 1: Transcribe and analyze (or reuse the archived report)
	report, cached, err := p.Analyze(ctx, path)
	if err != nil {
		p.metrics.RecordProcessed(metrics.StatusFailed)
		pe := mferrors.ClassifyError(err, "process")
		p.logger.Error(ctx, "Processing failed (%s): %s", pe.Code, mferrors.GetSuggestedAction(pe.Code))
		return fmt.Errorf("analyze: %w", err)
	}

	// Step 2: Write exports
	written, err := export.WriteAll(report, p.cfg.Paths.Output, baseName(path), p.formats())
	if err != nil {
		p.metrics.RecordProcessed(metrics.StatusFailed)
		return fmt.Errorf("export: %w", err)
	}

	// Step 3: Move the source out of the inbox
	if _, err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move source to archived folder: %v", err)
	}

	status := metrics.StatusSuccess
	if cached {
		status = metrics.StatusCached
	}
	p.metrics.RecordProcessed(status)

	duration := time.Since(startTime)
	p.metrics.RecordStage("process", duration.Seconds())

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed (%s): priority %s, %d agenda items", status, report.Priority, len(report.Agenda))
	for _, w := range written {
		p.logger.Info(ctx, "Output: %s", w)
	}
	for _, w := range report.Warnings {
		p.logger.Warn(ctx, "Degraded: %s", w)
	}
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")
	return nil
}

// Analyze transcribes and analyzes path. Reports are cached by content hash.
func (p *implProcessor) Analyze(ctx context.Context, path string) (*insight.Report, bool, error) {
	hash, err := archive.HashFile(path)
	if err != nil {
		return nil, false, mferrors.ClassifyError(err, "hash")
	}

	if p.store != nil {
		cached, err := p.store.Get(ctx, hash)
		switch {
		case err != nil:
			p.logger.Warn(ctx, "Archive lookup failed, analyzing again: %v", err)
		case cached != nil:
			p.logger.Info(ctx, "Unchanged source, reusing report %s", cached.ID)
			return cached, true, nil
		}
	}

	res, err := p.transcribe(ctx, path)
	if err != nil {
		return nil, false, err
	}

	report, err := p.analyzer.Analyze(ctx, res)
	if err != nil {
		return nil, false, err
	}
	report.Source = filepath.Base(path)

	if p.store != nil {
		if err := p.store.Put(ctx, hash, report); err != nil {
			p.logger.Warn(ctx, "Failed to archive report: %v", err)
		}
	}
	return report, false, nil
}

func (p *implProcessor) transcribe(ctx context.Context, path string) (*transcript.Result, error) {
	if transcript.IsMedia(path) {
		if err := p.whisperSlots.Acquire(ctx, 1); err != nil {
			return nil, mferrors.ClassifyError(err, "transcribe")
		}
		defer p.whisperSlots.Release(1)
	}

	start := time.Now()
	res, err := p.transcriber.Transcribe(ctx, path)
	p.metrics.RecordStage("transcribe", time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	return res, nil
}

// formats returns the configured export formats, plus captions when enabled.
func (p *implProcessor) formats() []string {
	formats := slices.Clone(p.cfg.Export.Formats)
	if p.cfg.Export.Captions && !slices.Contains(formats, export.FormatSRT) {
		formats = append(formats, export.FormatSRT)
	}
	return formats
}
