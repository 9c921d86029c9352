package speaker

import "github.com/nguyentantai21042004/meetflow/internal/transcript"

// Diarizer attributes time-coded transcript segments to speakers.
type Diarizer interface {
	Assign(segs []transcript.Segment) []Segment
}
