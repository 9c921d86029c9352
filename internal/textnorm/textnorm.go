// Package textnorm cleans raw transcript text: filler words, stutters,
// transcription annotations and noisy punctuation.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxPasses bounds the fixpoint loop in Normalize.
const maxPasses = 8

var fillerPatterns = compileAll(
	`\buh+\b`, `\bum+\b`, `\buhs?\b`, `\bums?\b`,
	`\bugh+\b`, `\berr+\b`, `\bahh+\b`, `\bohh+\b`,
	`\bmm+\b`, `\bhmm+\b`, `\buhuh\b`, `\bmhm\b`,
	`\byeah yeah\b`, `\bokay okay\b`, `\blike like\b`,
	`\bso so\b`, `\band and\b`, `\bthe the\b`,
	`\bi i\b`, `\bwe we\b`, `\byou you\b`,
	`\bis is\b`, `\bwas was\b`, `\bwill will\b`,
	`\byou know\b`, `\bi mean\b`, `\bkind of\b`,
	`\bsort of\b`, `\bbasically\b`, `\bactually\b`,
	`\bobviously\b`, `\bfrankly\b`, `\bhonestly\b`,
	`\banyway\b`, `\banyhow\b`, `\bwhatever\b`,
	`\bwhatsoever\b`, `\bwell well\b`, `\bok ok\b`,
	`\balright alright\b`, `\bright right\b`,
)

var (
	reWord        = regexp.MustCompile(`\w+`)
	reInlineSpace = regexp.MustCompile(`[^\S\n]+`)
	reSpace       = regexp.MustCompile(`\s+`)
	reDots        = regexp.MustCompile(`\.{3,}`)
	reDashes      = regexp.MustCompile(`-{2,}`)
	reQuestions   = regexp.MustCompile(`\?{2,}`)
	reBangs       = regexp.MustCompile(`!{2,}`)
	reBrackets    = regexp.MustCompile(`\[.*?\]`)
	reParens      = regexp.MustCompile(`\(.*?\)`)
	reFragment    = regexp.MustCompile(`\b\w*-\s`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// Normalize returns a cleaned copy of raw. It is deterministic and
// idempotent: Normalize(Normalize(x)) == Normalize(x).
//
// Line breaks are kept so that speaker labels placed on their own lines
// survive normalization.
func Normalize(raw string) string {
	text := strings.ToLower(raw)
	for i := 0; i < maxPasses; i++ {
		next := pass(text)
		if next == text {
			break
		}
		text = next
	}
	return capitalize(text)
}

func pass(text string) string {
	text = CollapseRepeats(text)
	text = RemoveFillers(text)
	text = reInlineSpace.ReplaceAllString(text, " ")

	text = reDots.ReplaceAllString(text, "...")
	text = reDashes.ReplaceAllString(text, "--")
	text = reQuestions.ReplaceAllString(text, "?")
	text = reBangs.ReplaceAllString(text, "!")

	text = reBrackets.ReplaceAllString(text, "")
	text = reParens.ReplaceAllString(text, "")
	text = reFragment.ReplaceAllString(text, "")

	return keepLines(text)
}

// RemoveFillers strips filler words and hedges. The removed span is
// replaced by nothing; the surrounding whitespace keeps words apart.
func RemoveFillers(text string) string {
	for _, re := range fillerPatterns {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// CollapseRepeats shortens any word repeated three or more times in a row
// (separated only by whitespace, case-insensitive) to two occurrences.
func CollapseRepeats(text string) string {
	locs := reWord.FindAllStringIndex(text, -1)
	if len(locs) < 3 {
		return text
	}

	var b strings.Builder
	last := 0
	for i := 0; i < len(locs); {
		j := i + 1
		for j < len(locs) && sameWord(text, locs[j-1], locs[j]) {
			j++
		}
		if j-i >= 3 {
			word := text[locs[i][0]:locs[i][1]]
			b.WriteString(text[last:locs[i][0]])
			b.WriteString(word)
			b.WriteByte(' ')
			b.WriteString(word)
			last = locs[j-1][1]
		}
		i = j
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func sameWord(text string, prev, cur []int) bool {
	gap := text[prev[1]:cur[0]]
	if gap == "" || strings.TrimSpace(gap) != "" {
		return false
	}
	return strings.EqualFold(text[prev[0]:prev[1]], text[cur[0]:cur[1]])
}

// keepLines collapses whitespace per line and drops lines of fewer than
// three characters. If nothing survives, the text is returned on one line.
func keepLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(reSpace.ReplaceAllString(line, " "))
		if utf8.RuneCountInString(line) > 2 {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return strings.TrimSpace(reSpace.ReplaceAllString(text, " "))
	}
	return strings.Join(kept, "\n")
}

// capitalize upper-cases the first letter of every line and the first
// non-space character after each sentence terminator.
func capitalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	next := true
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			next = true
		case unicode.IsSpace(r):
			if r == '\n' {
				next = true
			}
		case next:
			r = unicode.ToUpper(r)
			next = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
