// Package export renders meeting reports for people and other tools:
// Markdown, JSON, an e-mail body, an agenda document, SRT captions and DOCX.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meetflow/internal/agenda"
	"github.com/nguyentantai21042004/meetflow/internal/insight"
	"github.com/nguyentantai21042004/meetflow/internal/risk"
	"github.com/nguyentantai21042004/meetflow/internal/translate"
)

const (
	reportTitle = "🎤 Complete Meeting Report"
	maxKeywords = 10
)

var riskSections = []struct {
	title    string
	category risk.Category
}{
	{"Deadlines", risk.Deadline},
	{"Budget Risks", risk.Budget},
	{"Legal Concerns", risk.Legal},
	{"Customer Issues", risk.Customer},
}

// Markdown renders the full report.
func Markdown(r *insight.Report) string {
	var b strings.Builder

	b.WriteString("# " + reportTitle + "\n\n")
	fmt.Fprintf(&b, "**Generated on:** %s\n", r.CreatedAt.Format("January 02, 2006 at 03:04 PM"))
	if r.Source != "" {
		fmt.Fprintf(&b, "**Source:** %s\n", r.Source)
	}
	if r.Language != "" {
		fmt.Fprintf(&b, "**Language:** %s\n", translate.LanguageName(r.Language))
	}
	b.WriteString("\n")

	b.WriteString("## 🚨 Risk Analysis\n\n")
	b.WriteString(r.RiskSummary + "\n\n")
	for _, s := range riskSections {
		items := r.Risk.Items(s.category)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", s.title)
		for _, item := range items {
			b.WriteString("- " + item + "\n")
		}
		b.WriteString("\n")
	}

	if len(r.Segments) > 0 {
		b.WriteString("## 👥 Meeting Participants\n\n")
		b.WriteString(strings.TrimRight(r.Participation, "\n") + "\n\n")
	}

	b.WriteString("## 📋 Executive Summary\n\n")
	b.WriteString(r.Summary.Summary + "\n\n")
	writeList(&b, "## ✅ Action Items\n\n", r.Summary.ActionItems)
	writeList(&b, "## 🔑 Key Decisions\n\n", r.Summary.KeyDecisions)
	writeList(&b, "## 📅 Suggested Next Meeting Agenda\n\n", r.Agenda)

	if len(r.Topics) > 0 {
		b.WriteString("## 🎯 Meeting Topics\n\n")
		for _, t := range r.Topics {
			fmt.Fprintf(&b, "### %s - %s\n\n", t.Timestamp, t.Title)
			fmt.Fprintf(&b, "Duration: %s\n\n", t.Duration)
			b.WriteString(t.Summary + "\n\n")
		}
	}

	a := r.Analytics
	b.WriteString("## 📊 Meeting Analytics\n\n")
	fmt.Fprintf(&b, "- Total words: %d\n", a.TotalWords)
	fmt.Fprintf(&b, "- Estimated duration: %.1f minutes\n", a.DurationMinutes)
	fmt.Fprintf(&b, "- Speakers: %d\n", a.TotalSpeakers)
	if len(a.Keywords) > 0 {
		words := make([]string, 0, maxKeywords)
		for i, kw := range a.Keywords {
			if i == maxKeywords {
				break
			}
			words = append(words, fmt.Sprintf("%s (%d)", kw.Word, kw.Count))
		}
		b.WriteString("- Top keywords: " + strings.Join(words, ", ") + "\n")
	}
	b.WriteString("\n")

	if r.Translation != nil {
		fmt.Fprintf(&b, "## 🌐 Translation (%s)\n\n", r.Translation.LanguageName)
		if !r.Translation.Complete {
			b.WriteString("*Translation service unavailable; untranslated passages are kept in the original language.*\n\n")
		}
		b.WriteString(r.Translation.Text + "\n\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("## 📝 Complete Meeting Transcript\n\n")
	b.WriteString(r.Labeled + "\n")
	return b.String()
}

// Email renders a plain-text summary e-mail with a subject line.
func Email(r *insight.Report) string {
	date := r.CreatedAt.Format("January 02, 2006")

	var b strings.Builder
	fmt.Fprintf(&b, "Subject: Meeting Summary - %s\n\n", date)
	b.WriteString("Dear Team,\n\n")
	fmt.Fprintf(&b, "Please find below the summary of our meeting held on %s.\n\n", date)

	b.WriteString("📋 EXECUTIVE SUMMARY\n====================\n")
	b.WriteString(r.Summary.Summary + "\n\n")

	writeList(&b, "✅ ACTION ITEMS\n===============\n", r.Summary.ActionItems)
	writeList(&b, "🔑 KEY DECISIONS\n================\n", r.Summary.KeyDecisions)

	if r.Risk.TotalRisks > 0 {
		fmt.Fprintf(&b, "🚨 RISK ASSESSMENT: %s PRIORITY\n===============================\n", r.Priority)
		fmt.Fprintf(&b, "%d risk items, urgency score %d/100\n\n", r.Risk.TotalRisks, r.Risk.UrgencyScore)
	}

	if len(r.Topics) > 0 {
		b.WriteString("🎯 MEETING AGENDA & TOPICS\n==========================\n")
		for _, t := range r.Topics {
			fmt.Fprintf(&b, "%s - %s (%s)\n", t.Timestamp, t.Title, t.Duration)
			fmt.Fprintf(&b, "   → %s\n\n", t.Summary)
		}
	}

	writeList(&b, "📅 NEXT MEETING ("+r.NextMeeting+")\n==========================\n", r.Agenda)

	b.WriteString("📝 FULL TRANSCRIPT\n==================\n")
	b.WriteString("The complete meeting transcript is attached as a separate document.\n\n")
	b.WriteString("Best regards,\nMeeting Summarizer\n\n")
	b.WriteString("---\nThis summary was generated automatically.\nPlease review for accuracy and completeness.\n")
	return b.String()
}

// Agenda renders the next-meeting agenda as a standalone document.
func Agenda(r *insight.Report) string {
	return agenda.FormatForExport(r.Agenda, r.NextMeeting)
}

// JSON encodes the report with indentation.
func JSON(r *insight.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// writeList writes heading followed by a numbered list; nothing for no items.
func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading)
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n")
}
