// Package analytics computes word counts, speaker shares and keywords for a
// transcript.
package analytics

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nguyentantai21042004/meetflow/internal/speaker"
)

const (
	// WordsPerMinute is the assumed speaking rate used to estimate duration.
	WordsPerMinute = 150

	maxKeywords = 50
	minKeyword  = 3
)

var reToken = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’]\p{L}+)?`)

// Result holds the meeting analytics.
type Result struct {
	TotalSpeakers   int            `json:"total_speakers"`
	TotalWords      int            `json:"total_words"`
	DurationMinutes float64        `json:"duration_minutes"`
	WordsPerMinute  float64        `json:"words_per_minute"`
	SpeakerStats    []SpeakerShare `json:"speaker_stats"`
	Keywords        []Keyword      `json:"keywords"`
}

// SpeakerShare is a speaker's share of the spoken words.
type SpeakerShare struct {
	Speaker    string  `json:"speaker"`
	WordCount  int     `json:"word_count"`
	Percentage float64 `json:"percentage"`
}

// Keyword is a frequent content word.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Analyze computes analytics for transcript. Duration is estimated from the
// word count at WordsPerMinute, so WordsPerMinute in the result is always
// that constant for non-empty input.
func Analyze(transcript string) Result {
	words := Tokenize(strings.ToLower(transcript))

	res := Result{
		TotalWords:   len(words),
		SpeakerStats: Speakers(transcript),
		Keywords:     Keywords(words),
	}
	res.TotalSpeakers = len(res.SpeakerStats)
	res.DurationMinutes = float64(res.TotalWords) / WordsPerMinute
	if res.DurationMinutes > 0 {
		res.WordsPerMinute = float64(res.TotalWords) / res.DurationMinutes
	}
	return res
}

// Tokenize splits text into word tokens, dropping punctuation.
func Tokenize(text string) []string {
	return reToken.FindAllString(text, -1)
}

// Speakers returns each labelled speaker's share of the words, largest
// first. Unlabelled text is a single speaker holding 100%.
func Speakers(transcript string) []SpeakerShare {
	if !speaker.HasLabels(transcript) {
		return []SpeakerShare{{
			Speaker:    speaker.DefaultSpeaker,
			WordCount:  len(Tokenize(transcript)),
			Percentage: 100,
		}}
	}

	counts := make(map[string]int)
	var order []string
	total := 0
	for _, seg := range speaker.FromText(transcript) {
		if _, ok := counts[seg.Speaker]; !ok {
			order = append(order, seg.Speaker)
		}
		n := len(Tokenize(seg.Text))
		counts[seg.Speaker] += n
		total += n
	}

	out := make([]SpeakerShare, 0, len(order))
	for _, name := range order {
		s := SpeakerShare{Speaker: name, WordCount: counts[name]}
		if total > 0 {
			s.Percentage = float64(s.WordCount) / float64(total) * 100
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WordCount > out[j].WordCount })
	return out
}

// Keywords returns up to fifty content words seen more than once, most
// frequent first; ties keep first-seen order. words must be lower-case.
func Keywords(words []string) []Keyword {
	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if !isContentWord(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	var out []Keyword
	for _, w := range order {
		if counts[w] > 1 {
			out = append(out, Keyword{Word: w, Count: counts[w]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > maxKeywords {
		out = out[:maxKeywords]
	}
	return out
}

func isContentWord(w string) bool {
	if utf8.RuneCountInString(w) < minKeyword {
		return false
	}
	if _, stop := stopwords[w]; stop {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
