// Package insight runs the analysis core over a transcript and assembles
// the meeting report.
package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/meetflow/internal/agenda"
	"github.com/nguyentantai21042004/meetflow/internal/analytics"
	"github.com/nguyentantai21042004/meetflow/internal/risk"
	"github.com/nguyentantai21042004/meetflow/internal/speaker"
	"github.com/nguyentantai21042004/meetflow/internal/summary"
	"github.com/nguyentantai21042004/meetflow/internal/textnorm"
	"github.com/nguyentantai21042004/meetflow/internal/topic"
	"github.com/nguyentantai21042004/meetflow/internal/transcript"
	"github.com/nguyentantai21042004/meetflow/internal/translate"
	mferrors "github.com/nguyentantai21042004/meetflow/pkg/errors"
)

// Analyze builds a Report from a transcript. Only a failed transcription or
// a cancelled context is returned as an error; collaborator failures are
// logged, recorded in Report.Warnings and replaced by local fallbacks.
func (a *Analyzer) Analyze(ctx context.Context, res *transcript.Result) (*Report, error) {
	if res.Failed() {
		text := ""
		if res != nil {
			text = res.Text
		}
		return nil, mferrors.New(mferrors.ErrTranscriptionFailed, "analyze",
			fmt.Errorf("%w: %s", mferrors.ErrTranscriptFailed, strings.TrimSpace(text)))
	}

	report := &Report{
		ID:        uuid.NewString(),
		CreatedAt: a.now().UTC(),
		Language:  res.Language,
	}

	start := time.Now()
	norm := normalize(res)
	report.Transcript = norm.Text

	segs := speaker.MergeAdjacent(a.segmenter.Segment(norm), a.opts.MergeGap)
	report.Segments = segs
	report.Speakers = speaker.Speakers(segs)
	report.SpeakerStats = speaker.Statistics(segs)
	report.MainSpeakers = speaker.MainSpeakers(segs, MainSpeakerShare)
	report.Participation = speaker.ParticipationSummary(segs, a.opts.SpeakerNames)
	report.Labeled = speaker.Rename(speaker.FormatWithLabels(norm.Text, segs), a.opts.SpeakerNames)
	a.stage("segment", start)

	// The core stages share nothing; only the summarizer may block.
	var sumErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Risk = risk.Analyze(norm.Text)
		report.Priority = risk.PriorityOf(report.Risk)
		report.RiskSummary = risk.Summary(report.Risk)
		return nil
	})
	g.Go(func() error {
		report.Topics = topic.Segments(norm.Text)
		return nil
	})
	g.Go(func() error {
		report.Analytics = analytics.Analyze(norm.Text)
		return nil
	})
	g.Go(func() error {
		t := time.Now()
		report.Summary, sumErr = a.summarize(gctx, norm.Text)
		a.stage("summarize", t)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, mferrors.ClassifyError(err, "analyze")
	}
	if sumErr != nil {
		a.degraded(ctx, report, "summary", sumErr)
	}

	report.Agenda = agenda.Generate(norm.Text, &report.Summary, &report.Risk)
	report.NextMeeting = agenda.NextWeek(report.CreatedAt)
	a.observe(ctx, report)

	if err := a.translateReport(ctx, report); err != nil {
		return nil, err
	}

	a.stage("analyze", start)
	a.logger.Info(ctx, "Meeting analyzed: %d speakers, %d topics, priority %s, urgency %d",
		len(report.Speakers), len(report.Topics), report.Priority, report.Risk.UrgencyScore)
	return report, nil
}

func (a *Analyzer) summarize(ctx context.Context, text string) (summary.Result, error) {
	if a.summarizer == nil {
		return summary.Result{
			Summary:      summary.RuleBased(text),
			ActionItems:  summary.ActionItems(text),
			KeyDecisions: summary.KeyDecisions(text),
			Source:       summary.SourceRules,
		}, nil
	}
	return a.summarizer.Summarize(ctx, text)
}

func (a *Analyzer) translateReport(ctx context.Context, report *Report) error {
	lang := strings.ToLower(strings.TrimSpace(a.opts.TranslateTo))
	if lang == "" || lang == translate.English || a.translator == nil {
		return nil
	}

	t := time.Now()
	text, err := a.translator.PreservingSpeakers(ctx, report.Labeled, lang)
	a.stage("translate", t)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return mferrors.ClassifyError(ctxErr, "translate")
	}

	report.Translation = &Translation{
		Language:     lang,
		LanguageName: translate.LanguageName(lang),
		Text:         text,
		Complete:     err == nil,
	}
	if err != nil {
		a.degraded(ctx, report, "translate", err)
	}
	return nil
}

func (a *Analyzer) degraded(ctx context.Context, report *Report, collaborator string, err error) {
	pe := mferrors.ClassifyError(err, collaborator)
	a.logger.Warn(ctx, "%s degraded to fallback (%s): %v", collaborator, pe.Code, err)
	report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", collaborator, pe.Code))
	if a.observer != nil {
		a.observer.RecordFallback(collaborator, string(pe.Code))
	}
}

func (a *Analyzer) observe(ctx context.Context, report *Report) {
	for _, c := range risk.Categories {
		if n := len(report.Risk.Items(c)); n > 0 {
			a.logger.Debug(ctx, "Risk %s: %d item(s)", c, n)
		}
	}
	if a.observer != nil {
		a.observer.RecordRisk(string(report.Priority), report.Risk.UrgencyScore)
	}
}

func (a *Analyzer) stage(name string, start time.Time) {
	if a.observer != nil {
		a.observer.RecordStage(name, time.Since(start).Seconds())
	}
}

// normalize returns a copy of res with the text and every segment cleaned.
// Segments left empty by cleaning are dropped.
func normalize(res *transcript.Result) *transcript.Result {
	out := &transcript.Result{
		Text:     textnorm.Normalize(res.Text),
		Language: res.Language,
		Format:   res.Format,
	}
	for _, seg := range res.Segments {
		seg.Text = textnorm.Normalize(seg.Text)
		if seg.Text == "" {
			continue
		}
		out.Segments = append(out.Segments, seg)
	}
	return out
}
