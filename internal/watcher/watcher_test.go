package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetflow/internal/logger"
)

func TestWatcher_DispatchesSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 4)

	w, err := New(dir, func(_ context.Context, path string) error {
		got <- filepath.Base(path)
		return nil
	}, logger.NewNop(), Options{SettleDelay: 10 * time.Millisecond})
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	for _, name := range []string{"notes.pdf", ".standup.vtt", "standup.vtt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("WEBVTT"), 0o644))
	}

	select {
	case name := <-got:
		assert.Equal(t, "standup.vtt", name)
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Empty(t, got)
}

func TestWatcher_BoundsConcurrency(t *testing.T) {
	dir := t.TempDir()
	var running, peak atomic.Int32
	release := make(chan struct{})
	finished := make(chan struct{}, 3)

	w, err := New(dir, func(context.Context, string) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		running.Add(-1)
		finished <- struct{}{}
		return nil
	}, logger.NewNop(), Options{MaxConcurrent: 1, Accept: func(string) bool { return true }})
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	for i := 0; i < 3; i++ {
		select {
		case release <- struct{}{}:
		case <-time.After(5 * time.Second):
			t.Fatal("handler was not called")
		}
		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatal("handler did not finish")
		}
	}
	assert.Equal(t, int32(1), peak.Load())
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.NewNop(), Options{})
	assert.Error(t, err)
}

func TestAccept(t *testing.T) {
	w := &implWatcher{opts: Options{Accept: func(p string) bool { return filepath.Ext(p) == ".mp4" }}}
	assert.True(t, w.accept("/in/call.mp4"))
	assert.False(t, w.accept("/in/.call.mp4"))
	assert.False(t, w.accept("/in/call.mkv"))
}
