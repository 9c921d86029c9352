package pattern

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	g := NewGroup("deadline", `\bby\s+friday\b`, `\burgent\b`)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "single match",
			text: "We will finalize the budget by Friday. John is responsible for the report.",
			want: []string{"We will finalize the budget by Friday."},
		},
		{
			name: "one entry per sentence",
			text: "This is urgent and due by friday!",
			want: []string{"This is urgent and due by friday."},
		},
		{
			name: "speaker label stripped",
			text: "Speaker 2: this is urgent. Alice: also urgent",
			want: []string{"This is urgent.", "Also urgent."},
		},
		{
			name: "duplicates removed",
			text: "It is urgent. it is urgent! Nothing else.",
			want: []string{"It is urgent."},
		},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Match(tt.text, g.Patterns))
		})
	}
}

func TestMatch_EmptyAfterCleaning(t *testing.T) {
	g := NewGroup("labels", `speaker`)
	assert.Empty(t, Default().Match("Speaker 1: . Speaker 2:", g.Patterns))
}

func TestMatch_Limit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "Item %d is urgent. ", i)
	}

	got := Default().Match(b.String(), NewGroup("x", `urgent`).Patterns)
	require.Len(t, got, DefaultLimit)
	assert.Equal(t, "Item 0 is urgent.", got[0])
	assert.Equal(t, "Item 9 is urgent.", got[9])
}

func TestClassify(t *testing.T) {
	groups := []Group{
		NewGroup("a", `apple`),
		NewGroup("b", `banana`),
	}
	got := Default().Classify("I like apple. You like banana. Pears are fine.", groups)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"I like apple."}, got[0])
	assert.Equal(t, []string{"You like banana."}, got[1])

	assert.Empty(t, Default().Classify("anything", nil))
}

func TestCleanSentence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "Hello world."},
		{"  Speaker 12: we agreed!", "We agreed!"},
		{"Person 3: ok?", "Ok?"},
		{"John: budget is tight", "Budget is tight."},
		{"JOHN: shouting", "JOHN: shouting."},
		{"Speaker 1:", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanSentence(tt.in), "input %q", tt.in)
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("Hello team. Let's begin!  What now?? trailing words")
	assert.Equal(t, []string{"Hello team.", "Let's begin!", "What now??", "trailing words"}, got)
	assert.Empty(t, Sentences("   "))
	assert.Empty(t, Sentences(""))
}

func TestWordPattern(t *testing.T) {
	re := WordPattern("late")
	assert.Equal(t, 2, Count(re, "Late again, so late. Latest news is not later."))
}
