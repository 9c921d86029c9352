package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

// Transcribe extracts 16 kHz mono audio when needed, runs whisper.cpp with
// full JSON output and parses the result.
func (w *implWhisper) Transcribe(ctx context.Context, path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}
	if w.cfg.ModelPath == "" || w.cfg.BinaryPath == "" {
		return w.fail(fmt.Errorf("whisper binary or model not configured"))
	}

	workDir, err := os.MkdirTemp(w.cfg.TempDir, "whisper-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	audioPath := path
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		audioPath, err = w.extractAudio(ctx, path, workDir)
		if err != nil {
			return w.fail(err)
		}
	}

	prefix := filepath.Join(workDir, "transcript")
	if err := w.run(ctx, audioPath, prefix); err != nil {
		return w.fail(err)
	}

	data, err := os.ReadFile(prefix + ".json")
	if err != nil {
		return w.fail(fmt.Errorf("read whisper output: %w", err))
	}

	res, err := parseWhisperCPP(data)
	if err != nil {
		return w.fail(err)
	}
	if strings.TrimSpace(res.Text) == "" {
		return w.fail(fmt.Errorf("no speech detected in %s", filepath.Base(path)))
	}

	w.logger.Info(ctx, "Transcription completed: %s (%d segments, language %s)",
		filepath.Base(path), len(res.Segments), res.Language)
	return res, nil
}

// extractAudio converts any media file to mono PCM WAV at the configured sample rate.
func (w *implWhisper) extractAudio(ctx context.Context, mediaPath, workDir string) (string, error) {
	audioPath := filepath.Join(workDir, uuid.NewString()+"_temp.wav")

	w.logger.Info(ctx, "Extracting audio: %s", mediaPath)

	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", strconv.Itoa(w.cfg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.FFmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return audioPath, nil
}

func (w *implWhisper) run(ctx context.Context, audioPath, prefix string) error {
	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Threads, audioPath)

	// -ojf writes segment offsets plus per-token probabilities.
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-ojf",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-bo", "5",
		"--output-file", prefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}
	if !w.cfg.UseGPU {
		args = append(args, "-ng")
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("whisper transcribe: %w", err)
	}
	return nil
}

func (w *implWhisper) fail(cause error) (*Result, error) {
	return Failure(cause), fmt.Errorf("%w: %v", mferrors.ErrTranscriptFailed, cause)
}

// Failure builds the sentinel Result of a failed transcription.
func Failure(cause error) *Result {
	return &Result{
		Text:     fmt.Sprintf("%s Could not transcribe the file. %v", FailurePrefix, cause),
		Language: "unknown",
	}
}

type cppOffsets struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

type cppOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets cppOffsets `json:"offsets"`
		Text    string     `json:"text"`
		Tokens  []struct {
			Text    string     `json:"text"`
			Offsets cppOffsets `json:"offsets"`
			P       float64    `json:"p"`
		} `json:"tokens"`
	} `json:"transcription"`
}

// parseWhisperCPP decodes the JSON written by whisper.cpp (-oj or -ojf).
// Offsets are milliseconds.
func parseWhisperCPP(data []byte) (*Result, error) {
	var out cppOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}

	res := &Result{
		Language: out.Result.Language,
		Format:   "whisper",
		Segments: make([]Segment, 0, len(out.Transcription)),
	}

	for _, t := range out.Transcription {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		seg := Segment{
			Start: ms(t.Offsets.From),
			End:   ms(t.Offsets.To),
			Text:  text,
		}

		var logSum float64
		var n int
		for _, tok := range t.Tokens {
			// Special tokens look like [_BEG_] or [_TT_150].
			if strings.HasPrefix(tok.Text, "[_") || tok.Text == "" {
				continue
			}
			logSum += math.Log(math.Max(tok.P, 1e-6))
			n++

			if strings.HasPrefix(tok.Text, " ") || len(seg.Words) == 0 {
				seg.Words = append(seg.Words, Word{
					Text:        strings.TrimSpace(tok.Text),
					Start:       ms(tok.Offsets.From),
					End:         ms(tok.Offsets.To),
					Probability: tok.P,
				})
				continue
			}
			last := &seg.Words[len(seg.Words)-1]
			last.Text += tok.Text
			last.End = ms(tok.Offsets.To)
			last.Probability = math.Min(last.Probability, tok.P)
		}
		if n > 0 {
			seg.AvgLogprob = logSum / float64(n)
		}

		res.Segments = append(res.Segments, seg)
	}

	res.Text = JoinSegments(res.Segments)
	return res, nil
}

func ms(v int64) float64 {
	return float64(v) / 1000
}
