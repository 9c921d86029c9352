package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meetflow/internal/logger"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

func TestGenerate_NoKeys(t *testing.T) {
	g := New(nil, "", 0, logger.NewNop())

	_, err := g.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, mferrors.ErrNoModel)
	assert.Equal(t, mferrors.ErrModelUnavailable, mferrors.CodeOf(err))
}

func TestNew_DefaultModel(t *testing.T) {
	g := New([]string{"k"}, "", 0, logger.NewNop()).(*implGenerator)
	assert.Equal(t, defaultModel, g.model)
}

func TestRotateKey(t *testing.T) {
	g := New([]string{"a", "b", "c"}, "m", 0, logger.NewNop()).(*implGenerator)

	g.rotateKey(0)
	assert.Equal(t, 1, g.currentKey)

	// stale index from a concurrent caller does not skip a key
	g.rotateKey(0)
	assert.Equal(t, 1, g.currentKey)

	g.rotateKey(1)
	g.rotateKey(2)
	assert.Equal(t, 0, g.currentKey)
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: " Hello "}, {Text: "world "}}},
		}},
	}
	assert.Equal(t, "Hello world", responseText(resp))
}
