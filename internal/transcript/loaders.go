package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

// wordsPerSecond estimates the end of cues that carry only a start time.
const wordsPerSecond = 2.5

var (
	// 00:00:05.579 --> 00:00:06.858, hours optional
	reVTTTiming = regexp.MustCompile(`^((?:\d+:)?\d{2}:\d{2}\.\d{3})\s+-->\s+((?:\d+:)?\d{2}:\d{2}\.\d{3})`)

	// 00:00:01,000 --> 00:00:04,000
	reSRTTiming = regexp.MustCompile(`^(\d+:\d{2}:\d{2},\d{3})\s+-->\s+(\d+:\d{2}:\d{2},\d{3})`)

	// Exported meeting tools write: 1 "Speaker Name" (123)
	reVTTHeader = regexp.MustCompile(`^\d+\s+"([^"]*)"(?:\s+\((\d+)\))?$`)

	// <v Speaker Name>text</v>
	reVTTVoice = regexp.MustCompile(`^<v(?:\.[\w.]+)?\s+([^>]+)>(.*?)(?:</v>)?$`)
	reVTTTag   = regexp.MustCompile(`</?[^>]+>`)

	// 0:11 : Speaker Name : text
	reTXTLine = regexp.MustCompile(`^(\d+):(\d{2})\s*:\s*([^:]+?)\s*:\s*(.+)$`)

	// "Speaker 2: text" inside a cue
	reCueLabel = regexp.MustCompile(`^(Speaker \d+|Person \d+|[A-Z][a-z]+):\s*(.+)$`)
)

var loaders = map[string]Loader{
	".vtt":  ParseVTT,
	".srt":  ParseSRT,
	".txt":  ParseTXT,
	".json": ParseJSON,
}

// Load reads a transcript file with the loader registered for its extension.
func Load(path string) (*Result, error) {
	loader, ok := loaders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), mferrors.ErrUnsupported)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	res, err := loader(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if strings.TrimSpace(res.Text) == "" {
		return nil, mferrors.New(mferrors.ErrEmptyContent, "load", fmt.Errorf("%s has no transcript text", filepath.Base(path)))
	}
	return res, nil
}

// ParseVTT parses a WebVTT file. Speakers come from voice tags, from a
// numbered "Name" header line or from a leading "Name:" label in the cue.
func ParseVTT(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	res := &Result{Format: "vtt"}

	var cur *Segment
	var speaker string
	flush := func() {
		if cur != nil && cur.Text != "" {
			res.Segments = append(res.Segments, *cur)
		}
		cur = nil
	}

	inNote := false
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		switch {
		case line == "":
			inNote = false
			flush()
			continue
		case inNote:
			continue
		case strings.HasPrefix(line, "WEBVTT"):
			continue
		case strings.HasPrefix(line, "NOTE"), line == "STYLE", line == "REGION":
			inNote = true
			continue
		}

		if m := reVTTHeader.FindStringSubmatch(line); m != nil {
			flush()
			speaker = m[1]
			continue
		}

		if m := reVTTTiming.FindStringSubmatch(line); m != nil {
			flush()
			cur = &Segment{
				Start:   parseClock(m[1], '.'),
				End:     parseClock(m[2], '.'),
				Speaker: speaker,
			}
			speaker = ""
			continue
		}

		if cur == nil {
			// Cue identifier without timing yet.
			continue
		}

		text := line
		if m := reVTTVoice.FindStringSubmatch(line); m != nil {
			cur.Speaker = strings.TrimSpace(m[1])
			text = m[2]
		}
		text = strings.TrimSpace(reVTTTag.ReplaceAllString(text, ""))
		appendCue(cur, text)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	res.Text = labeledText(res.Segments)
	return res, nil
}

// ParseSRT parses a SubRip file.
func ParseSRT(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	res := &Result{Format: "srt"}

	var cur *Segment
	flush := func() {
		if cur != nil && cur.Text != "" {
			res.Segments = append(res.Segments, *cur)
		}
		cur = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		if line == "" {
			flush()
			continue
		}
		if m := reSRTTiming.FindStringSubmatch(line); m != nil {
			flush()
			cur = &Segment{
				Start: parseClock(m[1], ','),
				End:   parseClock(m[2], ','),
			}
			continue
		}
		if cur == nil {
			// Sequence number.
			continue
		}
		appendCue(cur, strings.TrimSpace(reVTTTag.ReplaceAllString(line, "")))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	res.Text = labeledText(res.Segments)
	return res, nil
}

// ParseTXT parses "M:SS : Speaker : text" lines. A file without any such
// line is taken as plain transcript text.
func ParseTXT(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	res := &Result{Format: "txt"}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		m := reTXTLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		start := float64(minutes*60 + seconds)

		res.Segments = append(res.Segments, Segment{
			Start:   start,
			Speaker: strings.TrimSpace(m[3]),
			Text:    strings.TrimSpace(m[4]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(res.Segments) == 0 {
		res.Text = strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff"))
		return res, nil
	}

	// The format only carries start times; a segment ends where the next starts.
	for i := range res.Segments {
		seg := &res.Segments[i]
		if i+1 < len(res.Segments) && res.Segments[i+1].Start > seg.Start {
			seg.End = res.Segments[i+1].Start
			continue
		}
		seg.End = seg.Start + float64(len(strings.Fields(seg.Text)))/wordsPerSecond
	}

	res.Text = labeledText(res.Segments)
	return res, nil
}

type jsonWord struct {
	Word        string  `json:"word"`
	Text        string  `json:"text"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

type jsonTranscript struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start      float64    `json:"start"`
		End        float64    `json:"end"`
		Text       string     `json:"text"`
		Speaker    string     `json:"speaker"`
		AvgLogprob float64    `json:"avg_logprob"`
		Words      []jsonWord `json:"words"`
	} `json:"segments"`
	Transcription json.RawMessage `json:"transcription"`
}

// ParseJSON accepts both the {text, segments, language} document written by
// Whisper-style transcribers and the whisper.cpp -oj output.
func ParseJSON(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc jsonTranscript
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}
	if len(doc.Transcription) > 0 {
		return parseWhisperCPP(data)
	}

	res := &Result{
		Text:     strings.TrimSpace(doc.Text),
		Language: doc.Language,
		Format:   "json",
		Segments: make([]Segment, 0, len(doc.Segments)),
	}
	for _, s := range doc.Segments {
		seg := Segment{
			Start:      s.Start,
			End:        s.End,
			Text:       strings.TrimSpace(s.Text),
			Speaker:    strings.TrimSpace(s.Speaker),
			AvgLogprob: s.AvgLogprob,
		}
		for _, w := range s.Words {
			text := w.Word
			if text == "" {
				text = w.Text
			}
			seg.Words = append(seg.Words, Word{
				Text:        strings.TrimSpace(text),
				Start:       w.Start,
				End:         w.End,
				Probability: w.Probability,
			})
		}
		res.Segments = append(res.Segments, seg)
	}
	if res.Text == "" {
		res.Text = labeledText(res.Segments)
	}
	return res, nil
}

// appendCue adds one text line to a cue, lifting a leading "Name:" label
// into the speaker when the cue has none yet.
func appendCue(seg *Segment, text string) {
	if text == "" {
		return
	}
	if seg.Speaker == "" && seg.Text == "" {
		if m := reCueLabel.FindStringSubmatch(text); m != nil {
			seg.Speaker = m[1]
			text = m[2]
		}
	}
	if seg.Text != "" {
		seg.Text += " "
	}
	seg.Text += text
}

// labeledText renders segments one per line, prefixed with their speaker
// when known. Consecutive segments of the same speaker share a line.
func labeledText(segs []Segment) string {
	var b strings.Builder
	prev := ""
	for i, s := range segs {
		switch {
		case s.Speaker == "":
			if i > 0 {
				b.WriteString(" ")
			}
		case s.Speaker == prev:
			b.WriteString(" ")
		default:
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(s.Speaker + ": ")
		}
		b.WriteString(s.Text)
		prev = s.Speaker
	}
	return b.String()
}

// parseClock parses [HH:]MM:SS<sep>mmm into seconds.
func parseClock(ts string, sep byte) float64 {
	parts := strings.Split(ts, ":")
	var total float64
	for i, p := range parts {
		if i == len(parts)-1 {
			p = strings.Replace(p, string(sep), ".", 1)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		total = total*60 + v
	}
	return total
}
