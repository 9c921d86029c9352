package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/nguyentantai21042004/meetflow/internal/speaker"
)

// SRT renders speaker segments as SubRip captions, each cue prefixed with
// its speaker.
func SRT(segs []speaker.Segment) string {
	var b strings.Builder
	n := 0
	for _, s := range segs {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s: %s\n\n", n, srtTime(s.Start), srtTime(s.End), s.Speaker, text)
	}
	return b.String()
}

// srtTime formats seconds as HH:MM:SS,mmm.
func srtTime(sec float64) string {
	ms := int64(math.Round(math.Max(0, sec) * 1000))
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
