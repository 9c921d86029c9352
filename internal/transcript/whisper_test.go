package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/meetflow/internal/logger"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records invocations and writes whisper output where asked.
type fakeExecutor struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	for i, a := range args {
		if a == "--output-file" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1]+".json", []byte(f.output), 0o644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, _ string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) Available(string) bool { return true }

func newTestWhisper(t *testing.T, exec *fakeExecutor) Transcriber {
	t.Helper()
	return NewWhisper(WhisperConfig{
		BinaryPath: "whisper-cli",
		ModelPath:  "ggml-base.bin",
		Language:   "en",
		Threads:    4,
		TempDir:    t.TempDir(),
	}, exec, logger.NewNop())
}

func touch(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("media"), 0o644))
	return p
}

func TestWhisper_Transcribe(t *testing.T) {
	exec := &fakeExecutor{output: cppJSON}
	w := newTestWhisper(t, exec)

	res, err := w.Transcribe(context.Background(), touch(t, "standup.mp4"))
	require.NoError(t, err)

	assert.Equal(t, "Hello everyone.", res.Text)
	assert.False(t, res.Failed())

	require.Len(t, exec.calls, 2)
	assert.Equal(t, "ffmpeg", exec.calls[0][0])
	assert.Contains(t, exec.calls[0], "16000")
	assert.Equal(t, "whisper-cli", exec.calls[1][0])
	assert.Contains(t, exec.calls[1], "-ojf")
	assert.Contains(t, exec.calls[1], "-ng")
	assert.NotContains(t, exec.calls[1], "--prompt")
}

func TestWhisper_WavSkipsExtraction(t *testing.T) {
	exec := &fakeExecutor{output: cppJSON}
	w := newTestWhisper(t, exec)

	_, err := w.Transcribe(context.Background(), touch(t, "call.wav"))
	require.NoError(t, err)
	require.Len(t, exec.calls, 1)
	assert.Equal(t, "whisper-cli", exec.calls[0][0])
}

func TestWhisper_Failures(t *testing.T) {
	tests := []struct {
		name string
		exec *fakeExecutor
	}{
		{"command fails", &fakeExecutor{err: errors.New("exit status 1")}},
		{"no speech", &fakeExecutor{output: `{"result":{"language":"en"},"transcription":[]}`}},
		{"bad output", &fakeExecutor{output: "garbage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWhisper(t, tt.exec)
			res, err := w.Transcribe(context.Background(), touch(t, "call.wav"))

			require.Error(t, err)
			assert.ErrorIs(t, err, mferrors.ErrTranscriptFailed)
			require.NotNil(t, res)
			assert.True(t, res.Failed())
			assert.Equal(t, "unknown", res.Language)
		})
	}
}

func TestWhisper_MissingSource(t *testing.T) {
	w := newTestWhisper(t, &fakeExecutor{})
	res, err := w.Transcribe(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"))

	assert.Nil(t, res)
	assert.Equal(t, mferrors.ErrSourceMissing, mferrors.CodeOf(err))
}

func TestRouter(t *testing.T) {
	exec := &fakeExecutor{output: cppJSON}
	r := NewRouter(newTestWhisper(t, exec), logger.NewNop())
	ctx := context.Background()

	dir := t.TempDir()
	vtt := filepath.Join(dir, "m.vtt")
	require.NoError(t, os.WriteFile(vtt, []byte("WEBVTT\n\n00:01.000 --> 00:02.000\nHi all.\n"), 0o644))

	res, err := r.Transcribe(ctx, vtt)
	require.NoError(t, err)
	assert.Equal(t, "Hi all.", res.Text)
	assert.Empty(t, exec.calls)

	res, err = r.Transcribe(ctx, touch(t, "m.wav"))
	require.NoError(t, err)
	assert.Equal(t, "Hello everyone.", res.Text)

	_, err = r.Transcribe(ctx, "slides.pptx")
	assert.ErrorIs(t, err, mferrors.ErrUnsupported)

	_, err = NewRouter(nil, logger.NewNop()).Transcribe(ctx, "m.mp4")
	assert.ErrorIs(t, err, mferrors.ErrUnsupported)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.MP4"))
	assert.True(t, Supported("a.vtt"))
	assert.True(t, IsMedia("a.m4a"))
	assert.False(t, IsMedia("a.vtt"))
	assert.True(t, IsTranscript("a.json"))
	assert.False(t, Supported("a.docx"))
}

func TestResult_Failed(t *testing.T) {
	assert.True(t, Failure(errors.New("boom")).Failed())
	assert.True(t, (*Result)(nil).Failed())
	assert.False(t, (&Result{Text: "All good"}).Failed())
}
