package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	log := NewWithConfig(Config{Level: "info", Format: "json", Output: buf})

	log.Debug(ctx, "debug message")
	assert.Zero(t, buf.Len(), "debug must be filtered at info level")

	log.Info(ctx, "formatted message: %s %d", "test", 123)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "formatted message: test 123", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "meetflow", entry["service"])
}

func TestContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithConfig(Config{Level: "debug", Format: "json", Output: buf})

	ctx := WithMeeting(WithRequestID(context.Background(), "req-1"), "weekly.vtt")
	log.Warn(ctx, "summarizer fell back")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "weekly.vtt", entry["meeting"])
	assert.Equal(t, "warn", entry["level"])
}

func TestLevelFilter(t *testing.T) {
	emitters := map[string]func(Logger, context.Context){
		"debug": func(l Logger, ctx context.Context) { l.Debug(ctx, "m") },
		"info":  func(l Logger, ctx context.Context) { l.Info(ctx, "m") },
		"warn":  func(l Logger, ctx context.Context) { l.Warn(ctx, "m") },
		"error": func(l Logger, ctx context.Context) { l.Error(ctx, "m") },
	}

	tests := []struct {
		configured string
		emitted    string
		want       bool
	}{
		{"debug", "debug", true},
		{"info", "debug", false},
		{"warning", "info", false},
		{"warning", "warn", true},
		{"error", "warn", false},
		{"ERROR", "error", true},
		{"bogus", "info", true},
		{"bogus", "debug", false},
	}

	for _, tt := range tests {
		t.Run(tt.configured+"/"+tt.emitted, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := NewWithConfig(Config{Level: tt.configured, Format: "json", Output: buf})
			emitters[tt.emitted](log, context.Background())
			assert.Equal(t, tt.want, buf.Len() > 0)
		})
	}
}

func TestConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithConfig(Config{Level: "info", Format: "text", Output: buf})
	log.Info(context.Background(), "report written to %s", "out/standup.md")

	assert.Contains(t, buf.String(), "report written to out/standup.md")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.Error(context.Background(), "nothing %d", 1)
}
