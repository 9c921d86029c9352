package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetflow/internal/watcher"
)

func newWatchCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process every meeting file dropped into the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.watch(cmd.Context())
		},
	}
}

func (a *app) watch(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log := a.cfg, a.logger

	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Intelligence Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	w, err := watcher.New(cfg.Paths.Input, a.processor.Process, log, watcher.Options{
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		SettleDelay:   cfg.Performance.SettleDelay,
	})
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		return err
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 2)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.metrics.Handler())
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Formats: %v", cfg.Export.Formats)
	if cfg.Whisper.BinaryPath == "" {
		log.Info(ctx, "  - Whisper: not configured, transcripts only")
	} else {
		log.Info(ctx, "  - Whisper: %d threads, %d parallel", cfg.Whisper.Threads, cfg.Whisper.MaxParallel)
	}
	if len(cfg.Gemini.APIKeys) == 0 {
		log.Info(ctx, "  - Summaries: rule-based (no gemini.api_keys)")
	} else {
		log.Info(ctx, "  - Summaries: %s with %d key(s)", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))
	}
	if srv != nil {
		log.Info(ctx, "  - Metrics: http://%s/metrics", cfg.Metrics.Addr)
	}
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	var runErr error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case <-ctx.Done():
	case runErr = <-errChan:
		log.Error(ctx, "Watcher error: %v", runErr)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}

	log.Info(ctx, "Pipeline stopped")
	return runErr
}
