package transcript

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVTT(t *testing.T) {
	input := `WEBVTT

NOTE exported by the meeting tool
spans two lines

1
00:00:01.000 --> 00:00:04.500
<v Alice>We need the budget by Friday.</v>

2
00:00:04.500 --> 00:00:07.000
<v Bob>Agreed.</v>
<v Bob>I will send it.</v>
`
	res, err := ParseVTT(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Segments, 2)
	assert.Equal(t, Segment{Start: 1, End: 4.5, Speaker: "Alice", Text: "We need the budget by Friday."}, res.Segments[0])
	assert.Equal(t, Segment{Start: 4.5, End: 7, Speaker: "Bob", Text: "Agreed. I will send it."}, res.Segments[1])
	assert.Equal(t, "Alice: We need the budget by Friday.\nBob: Agreed. I will send it.", res.Text)
	assert.Equal(t, "vtt", res.Format)
}

func TestParseVTT_HeaderSpeakers(t *testing.T) {
	input := "\ufeffWEBVTT\n\n1 \"Jane Smith\" (42)\n00:00:05.579 --> 00:00:06.858\nHello there.\n\n2\n00:07.000 --> 00:09.250\nSpeaker 2: Short timing form.\n"

	res, err := ParseVTT(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Segments, 2)
	assert.Equal(t, "Jane Smith", res.Segments[0].Speaker)
	assert.InDelta(t, 5.579, res.Segments[0].Start, 1e-9)
	assert.InDelta(t, 6.858, res.Segments[0].End, 1e-9)

	assert.Equal(t, "Speaker 2", res.Segments[1].Speaker)
	assert.Equal(t, "Short timing form.", res.Segments[1].Text)
	assert.InDelta(t, 7.0, res.Segments[1].Start, 1e-9)
	assert.InDelta(t, 9.25, res.Segments[1].End, 1e-9)
}

func TestParseSRT(t *testing.T) {
	input := `1
00:00:01,000 --> 00:00:03,000
Speaker 1: Let's start.

2
00:00:03,500 --> 00:00:06,000
Speaker 2: Budget is tight
this quarter.
`
	res, err := ParseSRT(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, res.Segments, 2)
	assert.Equal(t, Segment{Start: 1, End: 3, Speaker: "Speaker 1", Text: "Let's start."}, res.Segments[0])
	assert.Equal(t, Segment{Start: 3.5, End: 6, Speaker: "Speaker 2", Text: "Budget is tight this quarter."}, res.Segments[1])
	assert.Equal(t, "Speaker 1: Let's start.\nSpeaker 2: Budget is tight this quarter.", res.Text)
}

func TestParseTXT(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		wantSegs []Segment
	}{
		{
			name:     "timestamped",
			input:    "0:11 : Jane Smith : Welcome everyone.\n\n0:15 : Bob : Thanks for joining the call today.\n",
			wantText: "Jane Smith: Welcome everyone.\nBob: Thanks for joining the call today.",
			wantSegs: []Segment{
				{Start: 11, End: 15, Speaker: "Jane Smith", Text: "Welcome everyone."},
				{Start: 15, End: 17.4, Speaker: "Bob", Text: "Thanks for joining the call today."},
			},
		},
		{
			name:     "plain",
			input:    "Hello world.\nSecond line.\n",
			wantText: "Hello world.\nSecond line.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseTXT(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, res.Text)
			require.Len(t, res.Segments, len(tt.wantSegs))
			for i, want := range tt.wantSegs {
				got := res.Segments[i]
				assert.Equal(t, want.Speaker, got.Speaker)
				assert.Equal(t, want.Text, got.Text)
				assert.InDelta(t, want.Start, got.Start, 1e-9)
				assert.InDelta(t, want.End, got.End, 1e-9)
			}
		})
	}
}

func TestParseJSON_Whisper(t *testing.T) {
	input := `{"text":" Hello team.","language":"en","segments":[
		{"start":0,"end":1.5,"text":" Hello team.","avg_logprob":-0.2,
		 "words":[{"word":" Hello","start":0,"end":0.5,"probability":0.9}]}]}`

	res, err := ParseJSON(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Hello team.", res.Text)
	assert.Equal(t, "en", res.Language)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, "Hello team.", res.Segments[0].Text)
	assert.Equal(t, -0.2, res.Segments[0].AvgLogprob)
	assert.Equal(t, []Word{{Text: "Hello", Start: 0, End: 0.5, Probability: 0.9}}, res.Segments[0].Words)
}

const cppJSON = `{"result":{"language":"en"},"transcription":[
	{"offsets":{"from":0,"to":2000},"text":" Hello everyone.","tokens":[
		{"text":"[_BEG_]","offsets":{"from":0,"to":0},"p":0.9},
		{"text":" Hello","offsets":{"from":0,"to":800},"p":0.8},
		{"text":" every","offsets":{"from":800,"to":1400},"p":0.9},
		{"text":"one","offsets":{"from":1400,"to":1800},"p":0.7},
		{"text":".","offsets":{"from":1800,"to":2000},"p":0.95}]},
	{"offsets":{"from":2000,"to":2600},"text":" ","tokens":[]}]}`

func TestParseJSON_WhisperCPP(t *testing.T) {
	res, err := ParseJSON(strings.NewReader(cppJSON))
	require.NoError(t, err)

	assert.Equal(t, "whisper", res.Format)
	assert.Equal(t, "en", res.Language)
	assert.Equal(t, "Hello everyone.", res.Text)

	require.Len(t, res.Segments, 1)
	seg := res.Segments[0]
	assert.Equal(t, 0.0, seg.Start)
	assert.Equal(t, 2.0, seg.End)

	require.Len(t, seg.Words, 2)
	assert.Equal(t, "Hello", seg.Words[0].Text)
	assert.Equal(t, "everyone.", seg.Words[1].Text)
	assert.InDelta(t, 0.8, seg.Words[1].Start, 1e-9)
	assert.InDelta(t, 2.0, seg.Words[1].End, 1e-9)
	assert.InDelta(t, 0.7, seg.Words[1].Probability, 1e-9)

	want := (math.Log(0.8) + math.Log(0.9) + math.Log(0.7) + math.Log(0.95)) / 4
	assert.InDelta(t, want, seg.AvgLogprob, 1e-9)
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := ParseJSON(strings.NewReader("{not json"))
	require.Error(t, err)
	assert.Equal(t, mferrors.ErrParseError, mferrors.CodeOf(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	t.Run("ok", func(t *testing.T) {
		res, err := Load(write("m.SRT", "1\n00:00:00,000 --> 00:00:01,000\nHi.\n"))
		require.NoError(t, err)
		assert.Equal(t, "Hi.", res.Text)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Load(write("notes.pdf", "x"))
		assert.ErrorIs(t, err, mferrors.ErrUnsupported)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "gone.vtt"))
		assert.Equal(t, mferrors.ErrSourceMissing, mferrors.CodeOf(err))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Load(write("empty.vtt", "WEBVTT\n\n"))
		assert.Equal(t, mferrors.ErrEmptyContent, mferrors.CodeOf(err))
	})
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		sep  byte
		want float64
	}{
		{"00:00:05.579", '.', 5.579},
		{"01:02:03,500", ',', 3723.5},
		{"02:30.250", '.', 150.25},
		{"xx:00.000", '.', 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, parseClock(tt.in, tt.sep), 1e-9, tt.in)
	}
}
