// Package risk flags deadlines, budget risks, legal concerns and customer
// issues in a transcript and scores its urgency.
package risk

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meetflow/internal/pattern"
)

const (
	keywordPoints  = 10
	deadlinePoints = 15
	maxUrgency     = 100
)

// Priority is the overall risk tier of a meeting.
type Priority string

const (
	High    Priority = "HIGH"
	Medium  Priority = "MEDIUM"
	Low     Priority = "LOW"
	Minimal Priority = "MINIMAL"
)

// Analysis holds the risk items found in a transcript.
type Analysis struct {
	Deadlines      []string `json:"deadlines"`
	BudgetRisks    []string `json:"budget_risks"`
	LegalConcerns  []string `json:"legal_concerns"`
	CustomerIssues []string `json:"customer_issues"`
	UrgencyScore   int      `json:"urgency_score"`
	TotalRisks     int      `json:"total_risks"`
}

// Items returns the item list of a category.
func (a *Analysis) Items(c Category) []string {
	if p := a.slot(c); p != nil {
		return *p
	}
	return nil
}

func (a *Analysis) slot(c Category) *[]string {
	switch c {
	case Deadline:
		return &a.Deadlines
	case Budget:
		return &a.BudgetRisks
	case Legal:
		return &a.LegalConcerns
	case Customer:
		return &a.CustomerIssues
	}
	return nil
}

// Analyze scans text for risk items and computes the urgency score.
func Analyze(text string) Analysis {
	var a Analysis
	for i, items := range pattern.Default().Classify(text, groups) {
		*a.slot(Category(i)) = items
		a.TotalRisks += len(items)
	}
	a.UrgencyScore = UrgencyScore(text)
	return a
}

// UrgencyScore returns a 0-100 score: keyword hits and distinct deadline
// patterns, normalized per thousand words. Empty text scores 0.
func UrgencyScore(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}

	raw := 0
	for _, re := range urgencyPatterns {
		raw += keywordPoints * pattern.Count(re, text)
	}
	for _, re := range groups[Deadline].Patterns {
		if re.MatchString(text) {
			raw += deadlinePoints
		}
	}

	score := raw * 1000 / words
	if score > maxUrgency {
		score = maxUrgency
	}
	return score
}

// PriorityOf picks the first matching tier: HIGH, MEDIUM, LOW, MINIMAL.
func PriorityOf(a Analysis) Priority {
	switch {
	case len(a.Deadlines) >= 2 || len(a.CustomerIssues) >= 2 || a.UrgencyScore >= 50:
		return High
	case a.TotalRisks >= 3 || a.UrgencyScore >= 25 || len(a.BudgetRisks) > 0:
		return Medium
	case a.TotalRisks >= 1 || a.UrgencyScore >= 10:
		return Low
	}
	return Minimal
}

// Summary renders a short markdown risk report with recommended actions.
func Summary(a Analysis) string {
	priority := PriorityOf(a)

	var b strings.Builder
	fmt.Fprintf(&b, "**Risk Assessment: %s PRIORITY**\n\n", priority)

	if a.TotalRisks == 0 {
		b.WriteString("✅ No significant risks detected in this meeting.")
		return b.String()
	}

	fmt.Fprintf(&b, "📊 **Total Risk Items:** %d\n", a.TotalRisks)
	fmt.Fprintf(&b, "🚨 **Urgency Score:** %d/100\n\n", a.UrgencyScore)

	if n := len(a.Deadlines); n > 0 {
		fmt.Fprintf(&b, "⏰ **Deadlines:** %d mentioned\n", n)
	}
	if n := len(a.BudgetRisks); n > 0 {
		fmt.Fprintf(&b, "💰 **Budget Risks:** %d identified\n", n)
	}
	if n := len(a.LegalConcerns); n > 0 {
		fmt.Fprintf(&b, "⚖️ **Legal Concerns:** %d noted\n", n)
	}
	if n := len(a.CustomerIssues); n > 0 {
		fmt.Fprintf(&b, "😠 **Customer Issues:** %d reported\n", n)
	}

	b.WriteString("\n**Recommended Actions:**\n")
	switch priority {
	case High:
		b.WriteString("🚨 **Immediate attention required** - Schedule follow-up within 24 hours\n")
		b.WriteString("📞 Contact relevant stakeholders immediately\n")
		b.WriteString("📋 Create action plan with specific deadlines\n")
	case Medium:
		b.WriteString("⚠️ **Schedule follow-up within 3-5 days**\n")
		b.WriteString("📝 Document all concerns and assign owners\n")
		b.WriteString("📅 Set calendar reminders for key dates\n")
	case Low:
		b.WriteString("📌 **Monitor situation** - Review at next regular meeting\n")
		b.WriteString("📄 Document for future reference\n")
	}
	return b.String()
}
