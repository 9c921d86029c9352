// Package translate is the translation collaborator. It chunks long
// transcripts, keeps speaker labels out of the translated text and falls
// back to the original text when the model cannot be reached.
package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

var (
	reLabel    = regexp.MustCompile(`^(Speaker \d+|Person \d+|[A-Z][a-z]+):`)
	reSentence = regexp.MustCompile(`[.!?]\s+`)
)

const translatePrompt = `Translate the following meeting transcript excerpt into %s.
Keep names, numbers and formatting unchanged. Reply with the translation only.

---
%s
---`

func (m *geminiModel) Translate(ctx context.Context, text, lang string) (string, error) {
	out, err := m.gen.Generate(ctx, fmt.Sprintf(translatePrompt, LanguageName(lang), text))
	if err != nil {
		return "", fmt.Errorf("gemini translate: %w", err)
	}
	return out, nil
}

// Text translates text into lang. Chunks that fail keep their original
// text; the first failure is returned, classified, next to the result.
func (s *Service) Text(ctx context.Context, text, lang string) (string, error) {
	if lang == English || strings.TrimSpace(text) == "" {
		return text, nil
	}
	if s.model == nil {
		return text, mferrors.ClassifyError(mferrors.ErrNoModel, "translate")
	}

	chunks := Split(text, s.chunkSize)
	out, err := s.each(ctx, chunks, lang)
	return strings.Join(out, "\n\n"), err
}

// PreservingSpeakers translates a labelled transcript line by line. Only the
// text after a speaker label is sent to the model; the label is reattached.
func (s *Service) PreservingSpeakers(ctx context.Context, transcript, lang string) (string, error) {
	if lang == English {
		return transcript, nil
	}
	if s.model == nil {
		return transcript, mferrors.ClassifyError(mferrors.ErrNoModel, "translate")
	}

	var labels, bodies []string
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, body := "", line
		if m := reLabel.FindStringSubmatch(line); m != nil {
			label, body = m[1]+":", strings.TrimSpace(line[len(m[0]):])
		}
		labels = append(labels, label)
		bodies = append(bodies, body)
	}

	translated, err := s.each(ctx, bodies, lang)
	lines := make([]string, len(translated))
	for i, t := range translated {
		switch {
		case labels[i] == "":
			lines[i] = t
		case t == "":
			lines[i] = labels[i]
		default:
			lines[i] = labels[i] + " " + t
		}
	}
	return strings.Join(lines, "\n\n"), err
}

// Batch translates each text independently.
func (s *Service) Batch(ctx context.Context, texts []string, lang string) ([]string, error) {
	if lang == English {
		return texts, nil
	}
	if s.model == nil {
		return texts, mferrors.ClassifyError(mferrors.ErrNoModel, "translate")
	}
	return s.each(ctx, texts, lang)
}

// each translates pieces concurrently, keeping order. A failed piece keeps
// its original text. Cancellation stops the remaining work.
func (s *Service) each(ctx context.Context, pieces []string, lang string) ([]string, error) {
	out := make([]string, len(pieces))
	errs := make([]error, len(pieces))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for i, piece := range pieces {
		out[i] = piece
		if strings.TrimSpace(piece) == "" {
			continue
		}
		g.Go(func() error {
			t, err := s.model.Translate(gctx, piece, lang)
			if err != nil {
				errs[i] = err
				s.logger.Warn(ctx, "Translation of piece %d/%d failed, keeping original: %v", i+1, len(pieces), err)
				if mferrors.IsTerminal(err) {
					return err
				}
				return nil
			}
			out[i] = strings.TrimSpace(t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, mferrors.ClassifyError(err, "translate")
	}

	for _, err := range errs {
		if err != nil {
			return out, mferrors.ClassifyError(err, "translate")
		}
	}
	return out, nil
}

// Split breaks text into chunks of at most max characters, on paragraph
// boundaries first and sentence boundaries for oversized paragraphs.
// A single sentence longer than max is kept whole.
func Split(text string, max int) []string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return []string{text}
	}

	var chunks []string
	cur := ""
	flush := func(next string) {
		chunks = append(chunks, strings.TrimSpace(cur))
		cur = next
	}
	add := func(piece, sep string) {
		switch {
		case cur != "" && utf8.RuneCountInString(cur)+len(sep)+utf8.RuneCountInString(piece) > max:
			flush(piece)
		case cur == "":
			cur = piece
		default:
			cur += sep + piece
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		if utf8.RuneCountInString(para) <= max {
			add(para, "\n\n")
			continue
		}
		for _, sentence := range sentences(para) {
			add(sentence, "\n")
		}
	}
	if cur != "" {
		chunks = append(chunks, strings.TrimSpace(cur))
	}
	return chunks
}

// sentences splits after every terminator that is followed by whitespace.
func sentences(text string) []string {
	var out []string
	last := 0
	for _, m := range reSentence.FindAllStringIndex(text, -1) {
		out = append(out, text[last:m[0]+1])
		last = m[1]
	}
	return append(out, text[last:])
}
