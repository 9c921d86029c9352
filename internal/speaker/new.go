package speaker

// DefaultPool is the number of speakers RoundRobin cycles through.
const DefaultPool = 3

// Segmenter turns a transcript into speaker segments.
type Segmenter struct {
	diarizer Diarizer
}

// New creates a Segmenter. A nil diarizer falls back to RoundRobin.
func New(d Diarizer) *Segmenter {
	if d == nil {
		d = RoundRobin{Pool: DefaultPool}
	}
	return &Segmenter{diarizer: d}
}
