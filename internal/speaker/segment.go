// Package speaker attributes transcript text to speakers and computes
// per-speaker statistics.
package speaker

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/meetflow/internal/transcript"
)

const (
	// DefaultSpeaker owns text that carries no label.
	DefaultSpeaker = "Speaker 1"

	// WordsPerSecond is the assumed speaking rate (150 words per minute).
	WordsPerSecond = 2.5

	// DefaultGap is the merge threshold in seconds.
	DefaultGap = 2.0

	labelConfidence = 0.8
	windowSeconds   = 30
)

var (
	// A label sits at a line start or right after a sentence terminator.
	reLabel     = regexp.MustCompile(`(?m)(?:^|[.!?])[ \t]*(Speaker \d+|Person \d+|[A-Z][a-z]+):`)
	reLineLabel = regexp.MustCompile(`^(?:Speaker \d+|Person \d+|[A-Z][a-z]+):`)
)

// Segment is a contiguous span of speech attributed to one speaker.
type Segment struct {
	Speaker    string  `json:"speaker"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// NewSegment builds a Segment, keeping End >= Start and Confidence in [0,1].
func NewSegment(speaker string, start, end float64, text string, confidence float64) Segment {
	if end < start {
		end = start
	}
	return Segment{
		Speaker:    speaker,
		Start:      start,
		End:        end,
		Text:       text,
		Confidence: clamp01(confidence),
	}
}

// Duration returns End - Start.
func (s Segment) Duration() float64 {
	return math.Max(0, s.End-s.Start)
}

// Segment prefers time-coded segments and falls back to label detection in
// the transcript text.
func (s *Segmenter) Segment(res *transcript.Result) []Segment {
	if res == nil {
		return nil
	}
	if len(res.Segments) > 0 {
		return s.diarizer.Assign(res.Segments)
	}
	return FromText(res.Text)
}

// RoundRobin labels segments Speaker 1..Pool by index. It is a placeholder
// for real diarization: it has no acoustic evidence. Segments that already
// carry a speaker keep it.
type RoundRobin struct {
	Pool int
}

func (r RoundRobin) Assign(segs []transcript.Segment) []Segment {
	pool := r.Pool
	if pool <= 0 {
		pool = DefaultPool
	}

	out := make([]Segment, 0, len(segs))
	for i, seg := range segs {
		name := strings.TrimSpace(seg.Speaker)
		if name == "" {
			name = fmt.Sprintf("Speaker %d", i%pool+1)
		}

		start, end := seg.Start, seg.End
		if !seg.Timed() {
			start, end = float64(i*windowSeconds), float64((i+1)*windowSeconds)
		}

		out = append(out, NewSegment(name, start, end, strings.TrimSpace(seg.Text), math.Exp(seg.AvgLogprob)))
	}
	return out
}

// FromText finds speaker labels ("Speaker N:", "Person N:", "Name:") in text.
// Text between labels belongs to the preceding label and text before the
// first label to DefaultSpeaker. Durations are estimated from word counts and
// segments follow each other without gaps. Text without any label becomes a
// single DefaultSpeaker segment with confidence 1.
func FromText(text string) []Segment {
	matches := reLabel.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		body := flatten(text)
		return []Segment{NewSegment(DefaultSpeaker, 0, estimate(body), body, 1.0)}
	}

	var out []Segment
	clock := 0.0
	add := func(name, body string) {
		body = flatten(body)
		if body == "" {
			return
		}
		d := estimate(body)
		out = append(out, NewSegment(name, clock, clock+d, body, labelConfidence))
		clock += d
	}

	add(DefaultSpeaker, text[:matches[0][2]])
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][2]
		}
		add(text[m[2]:m[3]], text[m[1]:end])
	}
	return out
}

// HasLabels reports whether text contains at least one speaker label.
func HasLabels(text string) bool {
	return reLabel.MatchString(text)
}

// MergeAdjacent sorts segments by start time and coalesces neighbours of the
// same speaker separated by at most gap seconds. A merged segment's
// confidence is the mean over all its members.
func MergeAdjacent(segs []Segment, gap float64) []Segment {
	if len(segs) == 0 {
		return nil
	}

	sorted := make([]Segment, len(segs))
	copy(sorted, segs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := make([]Segment, 0, len(sorted))
	cur := sorted[0]
	sum, n := cur.Confidence, 1
	for _, next := range sorted[1:] {
		if next.Speaker == cur.Speaker && next.Start-cur.End <= gap {
			cur.End = math.Max(cur.End, next.End)
			cur.Text = joinText(cur.Text, next.Text)
			sum += next.Confidence
			n++
			cur.Confidence = sum / float64(n)
			continue
		}
		out = append(out, cur)
		cur = next
		sum, n = cur.Confidence, 1
	}
	return append(out, cur)
}

// Speakers returns the distinct speakers in order of first appearance.
func Speakers(segs []Segment) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range segs {
		if !seen[s.Speaker] {
			seen[s.Speaker] = true
			out = append(out, s.Speaker)
		}
	}
	return out
}

func estimate(text string) float64 {
	return float64(len(strings.Fields(text))) / WordsPerSecond
}

func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
