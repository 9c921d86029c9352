package summary

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// EmptySummary is returned when there is nothing to summarize.
	EmptySummary = "Meeting discussion covered various topics and decisions."

	maxItems      = 5
	shortTextMax  = 500
	minSentence   = 10
	minItemLength = 10
	topSentences  = 5
	keptSentences = 3
)

var importantKeywords = []string{
	"decided", "agreed", "concluded", "important", "key", "main",
	"significant", "critical", "priority", "action", "next steps",
	"deadline", "budget", "revenue", "customer", "issue", "problem",
}

var actionPatterns = compile(
	`\b(?:will|should|need to|must|have to|going to)\s+([^.!?]*?)(?:[.!?]|$)`,
	`\b(?:action item|task|todo|follow up):\s*([^.!?]*?)(?:[.!?]|$)`,
	`\b(?:next steps?|follow up):\s*([^.!?]*?)(?:[.!?]|$)`,
	`\b(?:assign|responsible for|will handle)\s+([^.!?]*?)(?:[.!?]|$)`,
	`\b(?:deadline|due date|by)\s+([^.!?]*?)(?:[.!?]|$)`,
)

var decisionPatterns = compile(
	`\b(?:decided|agreed|concluded|determined)\s+([^.!?]*?)(?:[.!?]|$)`,
	`\b(?:decision|resolution|outcome):\s*([^.!?]*?)(?:[.!?]|$)`,
	`\b(?:we will|it was decided|final decision)\s+([^.!?]*?)(?:[.!?]|$)`,
	`\b(?:approved|rejected|selected|chosen)\s+([^.!?]*?)(?:[.!?]|$)`,
)

var planWords = []string{"will", "should", "need", "must", "plan"}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// RuleBased builds an extractive summary: sentences are scored on keywords,
// position and length, the best five are put back in document order and the
// first three of them are kept.
func RuleBased(text string) string {
	if strings.TrimSpace(text) == "" {
		return EmptySummary
	}

	var sentences []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); utf8.RuneCountInString(s) > minSentence {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) <= keptSentences {
		return truncate(strings.TrimSpace(text), shortTextMax)
	}

	firstIndex := make(map[string]int, len(sentences))
	for i, s := range sentences {
		if _, ok := firstIndex[s]; !ok {
			firstIndex[s] = i
		}
	}

	type scored struct {
		text  string
		score int
	}
	n := float64(len(sentences))
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		score := 0
		lower := strings.ToLower(s)
		for _, kw := range importantKeywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}

		pos := float64(firstIndex[s])
		switch {
		case pos < n*0.2:
			score += 2
		case pos > n*0.8:
			score++
		}

		if len(strings.Fields(s)) > 10 {
			score++
		}
		ranked[i] = scored{text: s, score: score}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > topSentences {
		ranked = ranked[:topSentences]
	}
	top := make(map[string]bool, len(ranked))
	for _, r := range ranked {
		top[r.text] = true
	}

	var picked []string
	for _, s := range sentences {
		if top[s] {
			picked = append(picked, s)
		}
	}
	if len(picked) > keptSentences {
		picked = picked[:keptSentences]
	}
	if len(picked) == 0 {
		return EmptySummary
	}
	return strings.Join(picked, ". ") + "."
}

// ActionItems extracts up to five commitments ("will ...", "need to ...",
// "task: ..."). Without any match, sentences mentioning plans are used.
func ActionItems(text string) []string {
	items := extract(text, actionPatterns)
	if len(items) > 0 {
		return items
	}

	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) <= minItemLength || !containsAny(strings.ToLower(s), planWords) {
			continue
		}
		items = append(items, s)
		if len(items) == maxItems {
			break
		}
	}
	return items
}

// KeyDecisions extracts up to five decisions ("decided ...", "approved ...").
func KeyDecisions(text string) []string {
	return extract(text, decisionPatterns)
}

func extract(text string, patterns []*regexp.Regexp) []string {
	lower := strings.ToLower(text)
	var out []string
	seen := make(map[string]bool)
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			item := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(item) <= minItemLength {
				continue
			}
			item = capitalize(item)
			if seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	if len(out) > maxItems {
		out = out[:maxItems]
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
