// Package pattern is the sentence classification engine shared by the risk,
// topic and agenda analyzers. Pattern tables are plain data: an ordered list
// of named groups, each an ordered list of regular expressions.
package pattern

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLimit caps the number of sentences kept per group.
const DefaultLimit = 10

var (
	reSplit     = regexp.MustCompile(`[.!?]+`)
	reLabel     = regexp.MustCompile(`^(?:Speaker \d+|Person \d+|[A-Z][a-z]+):\s*`)
	reSentences = regexp.MustCompile(`[^.!?]*(?:[.!?]+|$)`)
)

// Group is a named, ordered list of patterns.
type Group struct {
	Name     string
	Patterns []*regexp.Regexp
}

// NewGroup compiles case-insensitive patterns into a Group.
// It panics on an invalid pattern, like regexp.MustCompile.
func NewGroup(name string, patterns ...string) Group {
	g := Group{Name: name, Patterns: make([]*regexp.Regexp, len(patterns))}
	for i, p := range patterns {
		g.Patterns[i] = regexp.MustCompile(`(?i)` + p)
	}
	return g
}

// Classifier finds sentences that match a group of patterns.
type Classifier struct {
	Split *regexp.Regexp
	Limit int
}

// Default splits on runs of . ! ? and keeps at most DefaultLimit sentences.
func Default() Classifier {
	return Classifier{Split: reSplit, Limit: DefaultLimit}
}

// Match returns the cleaned sentences of text that match any of patterns.
// Each sentence is recorded at most once: the first matching pattern wins.
// Results are deduplicated by exact string, keep document order and are
// capped at c.Limit.
func (c Classifier) Match(text string, patterns []*regexp.Regexp) []string {
	split := c.Split
	if split == nil {
		split = reSplit
	}

	var out []string
	seen := make(map[string]struct{})
	for _, raw := range split.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		for _, re := range patterns {
			if !re.MatchString(sentence) {
				continue
			}
			cleaned := CleanSentence(sentence)
			if cleaned != "" {
				if _, dup := seen[cleaned]; !dup {
					seen[cleaned] = struct{}{}
					out = append(out, cleaned)
				}
			}
			break
		}
		if c.Limit > 0 && len(out) >= c.Limit {
			break
		}
	}
	return out
}

// Classify runs Match for every group. The result is in table order:
// out[i] holds the sentences of groups[i].
func (c Classifier) Classify(text string, groups []Group) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = c.Match(text, g.Patterns)
	}
	return out
}

// CleanSentence strips a leading speaker label, capitalizes the first letter
// and makes sure the sentence ends with terminal punctuation. It returns ""
// when nothing is left.
func CleanSentence(sentence string) string {
	s := strings.TrimSpace(sentence)
	s = reLabel.ReplaceAllString(s, "")
	if s == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]

	if !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s += "."
	}
	return s
}

// Sentences splits text into trimmed sentences, each keeping its
// terminator run. Text after the last terminator forms a final sentence.
func Sentences(text string) []string {
	var out []string
	for _, m := range reSentences.FindAllString(text, -1) {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Count returns the number of non-overlapping matches of re in text.
func Count(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

// WordPattern compiles a case-insensitive whole-word pattern for a literal keyword.
func WordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
}
