// Package topic splits a transcript into consecutive chunks and labels each
// with a meeting topic.
package topic

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/meetflow/internal/pattern"
)

const (
	minSentences  = 5
	minChunk      = 3
	chunksPerText = 5
	wordsPerMin   = 150
	summaryRunes  = 200
	shortChunk    = 2
	shortRunes    = 100
)

// Segment is one topical chunk of a transcript.
type Segment struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	Duration  string `json:"duration"`
}

// Segments partitions text into topical chunks. Inputs shorter than five
// sentences come back as a single "Full Meeting" segment.
func Segments(text string) []Segment {
	sentences := pattern.Sentences(text)
	if len(sentences) < minSentences {
		return []Segment{{
			Timestamp: "00:00",
			Title:     "Full Meeting",
			Content:   text,
			Summary:   "Complete meeting discussion",
			Duration:  "Full duration",
		}}
	}

	size := len(sentences) / chunksPerText
	if size < minChunk {
		size = minChunk
	}

	var chunks [][]string
	for i := 0; i < len(sentences); i += size {
		end := i + size
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, sentences[i:end])
	}

	total := float64(len(strings.Fields(text))) / wordsPerMin
	each := total / float64(len(chunks))

	out := make([]Segment, 0, len(chunks))
	for i, chunk := range chunks {
		content := strings.Join(chunk, " ")
		out = append(out, Segment{
			Timestamp: timestamp(float64(i) * each),
			Title:     Classify(content),
			Content:   content,
			Summary:   summarize(chunk),
			Duration:  fmt.Sprintf("%.1f min", each),
		})
	}
	return out
}

// Classify returns the title of the best scoring category for text, or a
// heuristic label when no keyword is present.
func Classify(text string) string {
	best, bestScore := Category(0), 0
	for _, c := range Categories() {
		if n := c.Count(text); n > bestScore {
			best, bestScore = c, n
		}
	}
	if bestScore > 0 {
		return best.Title()
	}
	return fallback(text)
}

func fallback(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "welcome", "start", "begin", "agenda"):
		return Introduction.Title()
	case containsAny(lower, "thank", "end", "close", "wrap", "summary"):
		return Conclusion.Title()
	case containsAny(lower, "action", "next", "follow", "task"):
		return ActionItems.Title()
	case containsAny(lower, "question", "discuss", "concern"):
		return "Discussion & Q&A"
	}
	return "General Discussion"
}

// summarize joins the first sentence with the later sentence that mentions
// the most topic keywords. Chunks of at most two sentences are summarized by
// their own text, cut at shortRunes.
func summarize(sentences []string) string {
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= shortChunk {
		return truncate(strings.Join(sentences, " "), shortRunes)
	}
	parts := []string{sentences[0]}

	best, bestScore := "", 0
	for _, s := range sentences[1:] {
		if n := keywordHits(s); n > bestScore {
			best, bestScore = s, n
		}
	}
	if best != "" && best != sentences[0] {
		parts = append(parts, best)
	}

	return truncate(strings.Join(parts, " "), summaryRunes)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) > n {
		return string([]rune(s)[:n]) + "..."
	}
	return s
}

// keywordHits counts the distinct keywords of every category present in s.
func keywordHits(s string) int {
	lower := strings.ToLower(s)
	n := 0
	for _, c := range table {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				n++
			}
		}
	}
	return n
}

func timestamp(minutes float64) string {
	mins := int(minutes)
	secs := int((minutes - float64(mins)) * 60)
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
