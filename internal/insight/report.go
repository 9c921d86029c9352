package insight

import (
	"time"

	"github.com/nguyentantai21042004/meetflow/internal/analytics"
	"github.com/nguyentantai21042004/meetflow/internal/risk"
	"github.com/nguyentantai21042004/meetflow/internal/speaker"
	"github.com/nguyentantai21042004/meetflow/internal/summary"
	"github.com/nguyentantai21042004/meetflow/internal/topic"
)

// Report is everything derived from one meeting transcript.
type Report struct {
	ID        string    `json:"id"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Language  string    `json:"language,omitempty"`

	// Transcript is the normalized text; Labeled renders it by speaker.
	Transcript string `json:"transcript"`
	Labeled    string `json:"labeled"`

	Segments      []speaker.Segment        `json:"segments"`
	Speakers      []string                 `json:"speakers"`
	SpeakerStats  map[string]speaker.Stats `json:"speaker_stats"`
	MainSpeakers  []string                 `json:"main_speakers"`
	Participation string                   `json:"participation"`

	Risk        risk.Analysis `json:"risk"`
	Priority    risk.Priority `json:"priority"`
	RiskSummary string        `json:"risk_summary"`

	Topics    []topic.Segment  `json:"topics"`
	Analytics analytics.Result `json:"analytics"`
	Summary   summary.Result   `json:"summary"`

	Agenda      []string `json:"agenda"`
	NextMeeting string   `json:"next_meeting"`

	Translation *Translation `json:"translation,omitempty"`

	// Warnings lists collaborators that failed and were replaced by a fallback.
	Warnings []string `json:"warnings,omitempty"`
}

// Translation is the transcript rendered in another language.
type Translation struct {
	Language     string `json:"language"`
	LanguageName string `json:"language_name"`
	Text         string `json:"text"`
	Complete     bool   `json:"complete"`
}
