package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/meetflow/internal/logger"
	"github.com/nguyentantai21042004/meetflow/internal/transcript"
)

// Options configures a Watcher.
type Options struct {
	// MaxConcurrent bounds files handled at the same time. Default 2.
	MaxConcurrent int
	// SettleDelay is waited after a CREATE event so the writer can finish.
	SettleDelay time.Duration
	// Accept filters paths; defaults to transcript.Supported.
	Accept func(path string) bool
}

// New creates a Watcher on inputDir with concurrency control.
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.Accept == nil {
		opts.Accept = transcript.Supported
	}

	return &implWatcher{
		inputDir:  inputDir,
		handler:   handler,
		logger:    log,
		watcher:   watcher,
		opts:      opts,
		semaphore: make(chan struct{}, opts.MaxConcurrent),
	}, nil
}
