package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meetflow/internal/logger"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

// upperModel "translates" by upper-casing and fails on text containing "fail".
type upperModel struct {
	mu    sync.Mutex
	calls []string
}

func (m *upperModel) Translate(_ context.Context, text, lang string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()
	if strings.Contains(text, "fail") {
		return "", errors.New("503 service unavailable")
	}
	return strings.ToUpper(text), nil
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "English"},
		{"es", "Spanish"},
		{"hi", "Hindi"},
		{"fr", "French"},
		{"DE", "German"},
		{"ja", "English"},
		{"", "English"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LanguageName(tt.code), tt.code)
	}
}

func TestCode(t *testing.T) {
	code, ok := Code("Spanish")
	assert.True(t, ok)
	assert.Equal(t, "es", code)

	code, ok = Code("fr")
	assert.True(t, ok)
	assert.Equal(t, "fr", code)

	_, ok = Code("Klingon")
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	ctx := context.Background()
	m := &upperModel{}
	svc := New(m, logger.NewNop())

	out, err := svc.Text(ctx, "hello there", "es")
	require.NoError(t, err)
	assert.Equal(t, "HELLO THERE", out)

	out, err = svc.Text(ctx, "hello", English)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestText_ChunkFailureKeepsOriginal(t *testing.T) {
	svc := New(&upperModel{}, logger.NewNop())
	svc.chunkSize = 12

	out, err := svc.Text(context.Background(), "first part\n\nplease fail\n\nlast part", "de")
	assert.Equal(t, "FIRST PART\n\nplease fail\n\nLAST PART", out)
	assert.Equal(t, mferrors.ErrModelUnavailable, mferrors.CodeOf(err))
}

func TestText_NoModel(t *testing.T) {
	out, err := New(nil, logger.NewNop()).Text(context.Background(), "hola", "es")
	assert.Equal(t, "hola", out)
	assert.ErrorIs(t, err, mferrors.ErrNoModel)
}

func TestPreservingSpeakers(t *testing.T) {
	m := &upperModel{}
	svc := New(m, logger.NewNop())

	in := "Speaker 1: good morning\n\nAlice: hello all\nno label here\nBob:"
	out, err := svc.PreservingSpeakers(context.Background(), in, "fr")
	require.NoError(t, err)

	assert.Equal(t, "Speaker 1: GOOD MORNING\n\nAlice: HELLO ALL\n\nNO LABEL HERE\n\nBob:", out)
	assert.ElementsMatch(t, []string{"good morning", "hello all", "no label here"}, m.calls)
}

func TestBatch(t *testing.T) {
	svc := New(&upperModel{}, logger.NewNop())
	out, err := svc.Batch(context.Background(), []string{"a", "fail b", "c"}, "hi")

	assert.Equal(t, []string{"A", "fail b", "C"}, out)
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"short"}, Split("short", 100))

	paras := "aaaa\n\nbbbb\n\ncccc"
	assert.Equal(t, []string{"aaaa\n\nbbbb", "cccc"}, Split(paras, 10))

	long := "One two. Three four! Five six? Seven."
	assert.Equal(t, []string{"One two.\nThree four!", "Five six?\nSeven."}, Split(long, 21))

	for _, c := range Split(strings.Repeat("word. ", 2000), DefaultChunkSize) {
		assert.LessOrEqual(t, len(c), DefaultChunkSize)
	}
}
