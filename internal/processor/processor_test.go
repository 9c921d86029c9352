package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetflow/internal/archive"
	"github.com/nguyentantai21042004/meetflow/internal/config"
	"github.com/nguyentantai21042004/meetflow/internal/insight"
	"github.com/nguyentantai21042004/meetflow/internal/logger"
	"github.com/nguyentantai21042004/meetflow/internal/metrics"
	"github.com/nguyentantai21042004/meetflow/internal/transcript"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

const meetingTXT = "0:05 : Alice : We are over budget and need the report by Friday.\n" +
	"0:12 : Bob : I will send the contract review tomorrow.\n"

type failingTranscriber struct{}

func (failingTranscriber) Transcribe(context.Context, string) (*transcript.Result, error) {
	cause := errors.New("whisper exited with status 1")
	return transcript.Failure(cause), errors.Join(mferrors.ErrTranscriptFailed, cause)
}

type fixture struct {
	cfg     *config.Config
	proc    Processor
	metrics *metrics.Metrics
	store   *archive.Store
}

func newFixture(t *testing.T, tr transcript.Transcriber) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Input:    filepath.Join(root, "input"),
			Output:   filepath.Join(root, "output"),
			Archived: filepath.Join(root, "archived"),
		},
		Export: config.ExportConfig{Formats: []string{"md", "json"}, Captions: true},
	}
	require.NoError(t, os.MkdirAll(cfg.Paths.Input, 0o755))

	store, err := archive.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if tr == nil {
		tr = transcript.NewRouter(nil, logger.NewNop())
	}
	m := metrics.New(prometheus.NewRegistry())
	an := insight.New(insight.Options{}, nil, nil, m, logger.NewNop())

	return &fixture{
		cfg:     cfg,
		proc:    New(cfg, tr, an, store, m, logger.NewNop()),
		metrics: m,
		store:   store,
	}
}

func (f *fixture) drop(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(f.cfg.Paths.Input, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func (f *fixture) processed(status string) float64 {
	return testutil.ToFloat64(f.metrics.MeetingsProcessedTotal.WithLabelValues(status))
}

func TestProcess(t *testing.T) {
	f := newFixture(t, nil)
	src := f.drop(t, "standup.txt", meetingTXT)

	require.NoError(t, f.proc.Process(context.Background(), src))

	for _, name := range []string{"standup.md", "standup.json", "standup.srt"} {
		_, err := os.Stat(filepath.Join(f.cfg.Paths.Output, name))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(f.cfg.Paths.Archived, "standup.txt"))
	assert.NoError(t, err)

	assert.Equal(t, 1.0, f.processed(metrics.StatusSuccess))

	entries, err := f.store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "standup.txt", entries[0].Source)
}

func TestProcess_CachedSecondDrop(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.proc.Process(ctx, f.drop(t, "monday.txt", meetingTXT)))
	require.NoError(t, f.proc.Process(ctx, f.drop(t, "monday.txt", meetingTXT)))

	assert.Equal(t, 1.0, f.processed(metrics.StatusSuccess))
	assert.Equal(t, 1.0, f.processed(metrics.StatusCached))

	// The second copy is archived next to the first one, not over it.
	files, err := os.ReadDir(f.cfg.Paths.Archived)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestProcess_Failures(t *testing.T) {
	tests := []struct {
		name     string
		tr       transcript.Transcriber
		file     string
		wantCode mferrors.ErrorCode
	}{
		{"unsupported", nil, "slides.pptx", mferrors.ErrUnsupportedFormat},
		{"transcription failed", failingTranscriber{}, "call.mp4", mferrors.ErrTranscriptionFailed},
		{"empty transcript", nil, "empty.txt", mferrors.ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.tr)
			body := "content"
			if tt.name == "empty transcript" {
				body = "  \n"
			}
			src := f.drop(t, tt.file, body)

			err := f.proc.Process(context.Background(), src)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, mferrors.CodeOf(err))
			assert.True(t, mferrors.IsTerminal(err) || tt.wantCode == mferrors.ErrEmptyContent)

			_, statErr := os.Stat(src)
			assert.NoError(t, statErr, "failed sources stay in the inbox")
			assert.Equal(t, 1.0, f.processed(metrics.StatusFailed))
		})
	}
}

func TestAnalyze_MissingSource(t *testing.T) {
	f := newFixture(t, nil)
	_, _, err := f.proc.Analyze(context.Background(), filepath.Join(f.cfg.Paths.Input, "gone.vtt"))
	assert.Equal(t, mferrors.ErrSourceMissing, mferrors.CodeOf(err))
}

func TestFormats(t *testing.T) {
	p := &implProcessor{cfg: &config.Config{Export: config.ExportConfig{Formats: []string{"md"}, Captions: true}}}
	assert.Equal(t, []string{"md", "srt"}, p.formats())

	p.cfg.Export.Formats = []string{"srt", "json"}
	assert.Equal(t, []string{"srt", "json"}, p.formats())

	p.cfg.Export.Captions = false
	p.cfg.Export.Formats = []string{"docx"}
	assert.Equal(t, []string{"docx"}, p.formats())
}

func TestTranscribe_WhisperSlotHonoursContext(t *testing.T) {
	p := New(&config.Config{}, transcript.NewRouter(nil, logger.NewNop()), nil, nil, nil, logger.NewNop()).(*implProcessor)
	require.True(t, p.whisperSlots.TryAcquire(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.transcribe(ctx, "call.mp4")
	require.Error(t, err)
	assert.Equal(t, mferrors.ErrContextCancelled, mferrors.CodeOf(err))

	// transcript files never wait for a slot
	_, err = p.transcribe(context.Background(), "missing.vtt")
	require.Error(t, err)
	assert.NotEqual(t, mferrors.ErrContextCancelled, mferrors.CodeOf(err))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "standup", baseName("in/standup.mp4"))
	assert.Equal(t, "weekly.sync", baseName("/x/weekly.sync.vtt"))
}
