package topic

import (
	"regexp"

	"github.com/nguyentantai21042004/meetflow/internal/pattern"
)

// Category is one of the fixed meeting topics.
type Category int

const (
	Introduction Category = iota
	Budget
	Marketing
	Sales
	Technical
	Strategy
	Review
	ActionItems
	Conclusion
)

type category struct {
	key      string
	title    string
	keywords []string
	patterns []*regexp.Regexp
}

// table order breaks score ties.
var table = []category{
	Introduction: {key: "introduction", title: "Introduction & Agenda",
		keywords: []string{"introduction", "welcome", "agenda", "start", "begin", "opening"}},
	Budget: {key: "budget", title: "Budget Discussion",
		keywords: []string{"budget", "cost", "money", "financial", "revenue", "expense", "funding"}},
	Marketing: {key: "marketing", title: "Marketing Strategy",
		keywords: []string{"marketing", "campaign", "promotion", "advertising", "brand", "customer"}},
	Sales: {key: "sales", title: "Sales Review",
		keywords: []string{"sales", "revenue", "target", "goal", "performance", "numbers"}},
	Technical: {key: "technical", title: "Technical Discussion",
		keywords: []string{"technical", "development", "software", "system", "technology", "code"}},
	Strategy: {key: "strategy", title: "Strategic Planning",
		keywords: []string{"strategy", "plan", "future", "vision", "goal", "objective"}},
	Review: {key: "review", title: "Performance Review",
		keywords: []string{"review", "feedback", "assessment", "evaluation", "analysis"}},
	ActionItems: {key: "action_items", title: "Action Items",
		keywords: []string{"action", "task", "todo", "next steps", "follow up", "deadline"}},
	Conclusion: {key: "conclusion", title: "Meeting Wrap-up",
		keywords: []string{"conclusion", "summary", "end", "closing", "wrap up", "final"}},
}

func init() {
	for i := range table {
		for _, kw := range table[i].keywords {
			table[i].patterns = append(table[i].patterns, pattern.WordPattern(kw))
		}
	}
}

// Categories lists every category in table order.
func Categories() []Category {
	out := make([]Category, len(table))
	for i := range table {
		out[i] = Category(i)
	}
	return out
}

// Key is the identifier used in the keyword table, e.g. "action_items".
func (c Category) Key() string { return table[c].key }

// Title is the display title, e.g. "Action Items".
func (c Category) Title() string { return table[c].title }

// Keywords returns the category's keywords.
func (c Category) Keywords() []string { return table[c].keywords }

// Count returns the number of whole-word keyword occurrences in text.
func (c Category) Count(text string) int {
	n := 0
	for _, re := range table[c].patterns {
		n += pattern.Count(re, text)
	}
	return n
}
