// Package agenda proposes the agenda of a follow-up meeting from the
// transcript, its summary and its risk analysis.
package agenda

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetflow/internal/pattern"
	"github.com/nguyentantai21042004/meetflow/internal/risk"
	"github.com/nguyentantai21042004/meetflow/internal/summary"
)

// MaxItems caps the agenda length.
const MaxItems = 8

// Fixed agenda items.
const (
	ItemDeadlines   = "📅 Review upcoming deadlines and action plans"
	ItemCustomers   = "🚨 Address customer concerns and escalations"
	ItemBudget      = "💰 Budget review and risk mitigation"
	ItemLegal       = "⚖️ Legal and compliance review"
	ItemActionItems = "✅ Review action item progress and updates"
	ItemTasks       = "📋 Follow up on assigned tasks and responsibilities"
	ItemUnresolved  = "🤔 Continue discussion on unresolved topics"
	ItemQuestions   = "❓ Address outstanding questions and concerns"
	ItemProject     = "📈 Project status and milestone updates"
	ItemTeam        = "👥 Team updates and announcements"
	ItemMetrics     = "📊 Performance metrics review"
	ItemPlanning    = "🎯 Planning for upcoming priorities"
)

// priorities orders items by their leading marker.
var priorities = []string{"🚨", "📅", "💰", "⚖️", "✅", "📋", "🤔", "❓", "📊", "👥", "📈", "🎯"}

var actionKeywords = []string{
	"follow up", "next steps", "action item", "todo", "task",
	"will do", "need to", "should", "must", "have to",
	"assign", "responsible", "owner", "deadline", "due",
}

var unresolvedKeywords = []string{
	"pending", "unresolved", "open", "outstanding", "unclear",
	"question", "concern", "issue", "problem", "discuss further",
	"table", "defer", "postpone", "later", "next time",
}

var questionKeywords = []string{"question", "how", "what"}

type topicCategory struct {
	name     string
	patterns []*regexp.Regexp
}

var topics = []topicCategory{
	newTopic("Budget", "budget", "cost", "financial", "money", "expense", "revenue"),
	newTopic("Technical", "technical", "development", "system", "software", "code"),
	newTopic("Marketing", "marketing", "campaign", "promotion", "brand", "customer"),
	newTopic("Sales", "sales", "target", "goal", "performance", "revenue"),
	newTopic("Hr", "hiring", "staff", "employee", "team", "recruitment"),
	newTopic("Strategy", "strategy", "plan", "vision", "direction", "future"),
	newTopic("Operations", "operations", "process", "workflow", "procedure"),
	newTopic("Legal", "legal", "contract", "compliance", "regulation", "policy"),
}

var reSplit = regexp.MustCompile(`[.!?]+`)

func newTopic(name string, keywords ...string) topicCategory {
	t := topicCategory{name: name}
	for _, kw := range keywords {
		t.patterns = append(t.patterns, pattern.WordPattern(kw))
	}
	return t
}

// Generate returns at most MaxItems distinct agenda items, most urgent first.
// sum and analysis may be nil.
func Generate(text string, sum *summary.Result, analysis *risk.Analysis) []string {
	var items []string
	items = append(items, fromRisks(analysis)...)
	items = append(items, fromActions(text, sum)...)
	items = append(items, fromUnresolved(text)...)
	items = append(items, fromTopics(text)...)
	items = append(items, standard(text)...)

	items = dedup(items)
	sort.SliceStable(items, func(i, j int) bool { return rank(items[i]) < rank(items[j]) })
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	return items
}

func fromRisks(a *risk.Analysis) []string {
	if a == nil {
		return nil
	}
	var out []string
	if len(a.Deadlines) > 0 {
		out = append(out, ItemDeadlines)
	}
	if len(a.CustomerIssues) > 0 {
		out = append(out, ItemCustomers)
	}
	if len(a.BudgetRisks) > 0 {
		out = append(out, ItemBudget)
	}
	if len(a.LegalConcerns) > 0 {
		out = append(out, ItemLegal)
	}
	return out
}

func fromActions(text string, sum *summary.Result) []string {
	var out []string
	if sum != nil && len(sum.ActionItems) > 0 {
		out = append(out, ItemActionItems)
	}
	for _, s := range reSplit.Split(strings.ToLower(text), -1) {
		if len(strings.Fields(s)) > 5 && containsAny(s, actionKeywords) {
			return append(out, ItemTasks)
		}
	}
	return out
}

// fromUnresolved counts sentences with unresolved keywords and sentences
// asking something. Sentences are split on their terminators first, so a
// question is recognized by its wording alone, never by a "?".
func fromUnresolved(text string) []string {
	unresolved, questions := 0, 0
	for _, s := range reSplit.Split(strings.ToLower(text), -1) {
		if containsAny(s, unresolvedKeywords) {
			unresolved++
		}
		if containsAny(s, questionKeywords) {
			questions++
		}
	}

	var out []string
	if unresolved > 2 {
		out = append(out, ItemUnresolved)
	}
	if questions > 3 {
		out = append(out, ItemQuestions)
	}
	return out
}

// fromTopics adds a review item for each of the three most discussed topics
// mentioned at least three times.
func fromTopics(text string) []string {
	type score struct {
		name  string
		count int
	}
	scores := make([]score, len(topics))
	for i, t := range topics {
		n := 0
		for _, re := range t.patterns {
			n += pattern.Count(re, text)
		}
		scores[i] = score{t.name, n}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].count > scores[j].count })

	var out []string
	for _, s := range scores[:3] {
		if s.count >= 3 {
			out = append(out, fmt.Sprintf("📊 %s planning and strategy review", s.name))
		}
	}
	return out
}

func standard(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	if containsAny(lower, []string{"project", "milestone", "deliverable"}) {
		out = append(out, ItemProject)
	}
	if containsAny(lower, []string{"team", "staff", "member", "hire"}) {
		out = append(out, ItemTeam)
	}
	if containsAny(lower, []string{"performance", "metric", "goal", "target", "kpi"}) {
		out = append(out, ItemMetrics)
	}
	return append(out, ItemPlanning)
}

func rank(item string) int {
	for i, p := range priorities {
		if strings.HasPrefix(item, p) {
			return i + 1
		}
	}
	return 99
}

func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// NextWeek formats the date one week after now, e.g. "January 02, 2006".
func NextWeek(now time.Time) string {
	return now.AddDate(0, 0, 7).Format("January 02, 2006")
}

// FormatForExport renders the agenda as a standalone document.
func FormatForExport(items []string, meetingDate string) string {
	var b strings.Builder
	b.WriteString("📅 **NEXT MEETING AGENDA**\n")
	fmt.Fprintf(&b, "**Date:** %s\n\n", meetingDate)
	b.WriteString("**Meeting Objectives:**\n")
	b.WriteString("Based on our previous discussion, we need to address the following priority items:\n\n")
	b.WriteString("**AGENDA ITEMS:**\n\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n**Preparation Required:**\n")
	b.WriteString("- Review action items from previous meeting\n")
	b.WriteString("- Prepare updates on assigned tasks\n")
	b.WriteString("- Gather relevant documents and data\n\n")
	b.WriteString("**Meeting Duration:** Estimated 60 minutes\n\n")
	b.WriteString("---\n")
	b.WriteString("*This agenda was generated from the previous meeting discussion.*\n")
	return b.String()
}
