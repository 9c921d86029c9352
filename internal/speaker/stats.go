package speaker

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats aggregates one speaker's segments.
type Stats struct {
	TotalTime          float64 `json:"total_time"`
	WordCount          int     `json:"word_count"`
	SegmentCount       int     `json:"segment_count"`
	AvgConfidence      float64 `json:"avg_confidence"`
	SpeakingPercentage float64 `json:"speaking_percentage"`
	WordsPerMinute     float64 `json:"words_per_minute"`
}

// Statistics computes per-speaker totals. The speaking percentage is the
// speaker's time over the meeting duration, taken as the latest segment end.
// When segments overlap the summed segment time is used instead, so the
// percentages never add up to more than 100.
func Statistics(segs []Segment) map[string]Stats {
	out := make(map[string]Stats)
	var latest, spoken float64
	confidence := make(map[string]float64)

	for _, seg := range segs {
		st := out[seg.Speaker]
		d := seg.Duration()
		st.TotalTime += d
		st.WordCount += len(strings.Fields(seg.Text))
		st.SegmentCount++
		confidence[seg.Speaker] += seg.Confidence
		out[seg.Speaker] = st

		spoken += d
		latest = math.Max(latest, seg.End)
	}

	total := math.Max(latest, spoken)
	for name, st := range out {
		st.AvgConfidence = confidence[name] / float64(st.SegmentCount)
		if total > 0 {
			st.SpeakingPercentage = st.TotalTime / total * 100
		}
		if st.TotalTime > 0 {
			st.WordsPerMinute = float64(st.WordCount) / (st.TotalTime / 60)
		}
		out[name] = st
	}
	return out
}

// MainSpeakers returns the speakers holding at least minPercentage of the
// speaking time, most active first.
func MainSpeakers(segs []Segment, minPercentage float64) []string {
	stats := Statistics(segs)
	var out []string
	for name, st := range stats {
		if st.SpeakingPercentage >= minPercentage {
			out = append(out, name)
		}
	}
	sortByShare(out, stats)
	return out
}

// ParticipationSummary renders a markdown participation report. names maps
// speaker labels to display names and may be nil.
func ParticipationSummary(segs []Segment, names map[string]string) string {
	stats := Statistics(segs)
	speakers := make([]string, 0, len(stats))
	for name := range stats {
		speakers = append(speakers, name)
	}
	sortByShare(speakers, stats)

	p := message.NewPrinter(language.English)
	var b strings.Builder
	b.WriteString("👥 **Speaker Participation Summary**\n\n")
	for _, name := range speakers {
		st := stats[name]
		display := name
		if n, ok := names[name]; ok && strings.TrimSpace(n) != "" {
			display = n
		}
		fmt.Fprintf(&b, "**%s:**\n", display)
		fmt.Fprintf(&b, "- Speaking time: %.1f%% (%.1f seconds)\n", st.SpeakingPercentage, st.TotalTime)
		b.WriteString(p.Sprintf("- Words spoken: %d\n", st.WordCount))
		fmt.Fprintf(&b, "- Speaking rate: %.1f words/minute\n", st.WordsPerMinute)
		fmt.Fprintf(&b, "- Number of turns: %d\n\n", st.SegmentCount)
	}
	return b.String()
}

func sortByShare(names []string, stats map[string]Stats) {
	sort.Slice(names, func(i, j int) bool {
		a, b := stats[names[i]].SpeakingPercentage, stats[names[j]].SpeakingPercentage
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
}
