package transcript

import "strings"

// FailurePrefix marks a transcript whose text is an error report rather than speech.
const FailurePrefix = "Error:"

// Result is the output of a transcription or a transcript file loader.
type Result struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
	Language string    `json:"language,omitempty"`
	Format   string    `json:"format,omitempty"`
}

// Segment is a time-coded span of speech. Start and End are in seconds;
// a segment with both set to zero carries no timing.
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker,omitempty"`
	AvgLogprob float64 `json:"avg_logprob,omitempty"`
	Words      []Word  `json:"words,omitempty"`
}

// Word is a single recognized token with its timing.
type Word struct {
	Text        string  `json:"text"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability,omitempty"`
}

// Timed reports whether the segment carries timing information.
func (s Segment) Timed() bool {
	return s.Start != 0 || s.End != 0
}

// Failed reports whether the transcription failed as a whole.
func (r *Result) Failed() bool {
	return r == nil || strings.HasPrefix(strings.TrimSpace(r.Text), FailurePrefix)
}

// Duration returns the end of the last timed segment, in seconds.
func (r *Result) Duration() float64 {
	var d float64
	for _, s := range r.Segments {
		if s.End > d {
			d = s.End
		}
	}
	return d
}

// JoinSegments concatenates segment texts with single spaces.
func JoinSegments(segs []Segment) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
