package risk

import (
	"regexp"

	"github.com/nguyentantai21042004/meetflow/internal/pattern"
)

// Category is a risk category.
type Category int

const (
	Deadline Category = iota
	Budget
	Legal
	Customer
)

func (c Category) String() string {
	if c < 0 || int(c) >= len(groups) {
		return "unknown"
	}
	return groups[c].Name
}

// Categories lists every category in table order.
var Categories = []Category{Deadline, Budget, Legal, Customer}

// groups is the ordered detection table, indexed by Category.
var groups = []pattern.Group{
	Deadline: pattern.NewGroup("deadline",
		`\b(?:by|before|until|deadline|due)\s+(?:this\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`,
		`\b(?:by|before|until|deadline|due)\s+(?:the\s+)?(?:end\s+of\s+)?(?:this\s+|next\s+)?(?:week|month|quarter|year)\b`,
		`\b(?:by|before|until|deadline|due)\s+(?:january|february|march|april|may|june|july|august|september|october|november|december)\b`,
		`\b(?:by|before|until|deadline|due)\s+\d{1,2}(?:st|nd|rd|th)?\b`,
		`\basap\b|\burgent\b|\bimmediate\b|\bpriority\b|\bcritical\b`,
		`\btoday\b|\btomorrow\b|\bthis\s+week\b|\bnext\s+week\b`,
		`\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\d{1,2}-\d{1,2}-\d{2,4}\b`,
	),
	Budget: pattern.NewGroup("budget",
		`\bover\s+budget\b|\bbudget\s+exceeded\b|\bcost\s+overrun\b`,
		`\bextra\s+cost\b|\badditional\s+expense\b|\bunexpected\s+cost\b`,
		`\bprice\s+increase\b|\bcost\s+increase\b|\bmore\s+expensive\b`,
		`\bbudget\s+cut\b|\breduced\s+budget\b|\bless\s+funding\b`,
		`\bfinancial\s+risk\b|\bmoney\s+problem\b|\bcash\s+flow\b`,
		`\b(?:can't|cannot)\s+afford\b|\btoo\s+expensive\b|\bcost\s+concern\b`,
	),
	Legal: pattern.NewGroup("legal",
		`\bcontract\b|\bagreement\b|\blegal\b|\bcompliance\b`,
		`\bregulation\b|\bpolicy\b|\brequirement\b|\bmandatory\b`,
		`\blawsuit\b|\blegal\s+action\b|\blegal\s+issue\b`,
		`\bviolation\b|\bbreach\b|\bnon-compliant\b`,
		`\bauditor?\b|\baudit\b|\breview\b|\binspection\b`,
		`\bterms\s+and\s+conditions\b|\bterms\s+of\s+service\b`,
	),
	Customer: pattern.NewGroup("customer",
		`\bcustomer\s+complaint\b|\bclient\s+complaint\b|\bcomplaint\b`,
		`\bcustomer\s+unhappy\b|\bclient\s+unhappy\b|\bunsatisfied\b`,
		`\bcustomer\s+angry\b|\bclient\s+angry\b|\bupset\s+customer\b`,
		`\bescalation\b|\bescalated\b|\bescalate\b`,
		`\brefund\b|\bchargeback\b|\bcancel(?:ation)?\b`,
		`\bbad\s+review\b|\bnegative\s+feedback\b|\bpoor\s+rating\b`,
		`\bcustomer\s+service\s+issue\b|\bsupport\s+ticket\b`,
	),
}

// UrgencyKeywords add 10 points per whole-word occurrence.
var UrgencyKeywords = []string{
	"urgent", "critical", "emergency", "asap", "immediately",
	"priority", "rush", "deadline", "overdue", "late",
}

var urgencyPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(UrgencyKeywords))
	for i, kw := range UrgencyKeywords {
		out[i] = pattern.WordPattern(kw)
	}
	return out
}()
