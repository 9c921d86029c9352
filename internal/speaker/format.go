package speaker

import (
	"regexp"
	"sort"
	"strings"
)

// FormatWithLabels renders "<Speaker>: <text>" blocks separated by blank
// lines. Text that already carries line-start labels is re-flowed instead:
// unlabelled lines join the block above them.
func FormatWithLabels(text string, segs []Segment) string {
	if len(segs) == 0 {
		return DefaultSpeaker + ": " + text
	}

	if hasLineLabels(text) {
		return reflow(text)
	}

	blocks := make([]string, 0, len(segs))
	for _, s := range segs {
		if t := strings.TrimSpace(s.Text); t != "" {
			blocks = append(blocks, s.Speaker+": "+t)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func hasLineLabels(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if reLineLabel.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func reflow(text string) string {
	var blocks []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case reLineLabel.MatchString(line):
			blocks = append(blocks, line)
		case len(blocks) > 0:
			blocks[len(blocks)-1] += " " + line
		default:
			blocks = append(blocks, DefaultSpeaker+": "+line)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// Rename replaces speaker labels ("old:" or "old :", any case) with new
// names in a single pass. The rest of each line is untouched.
func Rename(text string, names map[string]string) string {
	lookup := make(map[string]string, len(names))
	olds := make([]string, 0, len(names))
	for old, name := range names {
		if old == name || strings.TrimSpace(name) == "" || strings.TrimSpace(old) == "" {
			continue
		}
		lookup[strings.ToLower(old)] = name
		olds = append(olds, old)
	}
	if len(olds) == 0 {
		return text
	}

	// Longest first so "Speaker 10" wins over "Speaker 1".
	sort.Slice(olds, func(i, j int) bool {
		if len(olds[i]) != len(olds[j]) {
			return len(olds[i]) > len(olds[j])
		}
		return olds[i] < olds[j]
	})
	quoted := make([]string, len(olds))
	for i, o := range olds {
		quoted[i] = regexp.QuoteMeta(o)
	}
	re := regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `) ?:`)

	return re.ReplaceAllStringFunc(text, func(m string) string {
		label := strings.TrimSpace(strings.TrimSuffix(m, ":"))
		if name, ok := lookup[strings.ToLower(label)]; ok {
			return name + ":"
		}
		return m
	})
}
