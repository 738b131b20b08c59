package internal

import "time"

// SummaryResult is the canonical display model every flow normalizes into
type SummaryResult struct {
	SummaryText string     `json:"summary" yaml:"summary"`
	UISummary   string     `json:"ui_summary,omitempty" yaml:"ui_summary,omitempty"`
	Items       []Item     `json:"posts" yaml:"posts"`
	GeneratedAt *time.Time `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
}

// Item is one supporting source post
type Item struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
}

// SessionHistory holds the recent topics (most recent first) and the theme flag
type SessionHistory struct {
	Topics []string `json:"topics" yaml:"topics"`
	Dark   bool     `json:"dark" yaml:"dark"`
}

// Record is a completed summary as it is cached and exported
type Record struct {
	ID        string         `json:"id" yaml:"id"`
	Options   RequestOptions `json:"options" yaml:"options"`
	Result    SummaryResult  `json:"result" yaml:"result"`
	Keywords  []KeywordCount `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}

// Title describes what the record summarizes
func (r *Record) Title() string {
	switch r.Options.Source {
	case SourceTopic:
		return "Topic: " + r.Options.Query
	case SourceAggregator:
		return "Hacker News"
	case SourceURL:
		return "URL: " + r.Options.Query
	default:
		return "Pasted text"
	}
}
