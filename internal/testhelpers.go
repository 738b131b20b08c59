package internal

import (
	"time"
)

// CreateTestResult creates a summary result with sample posts
func CreateTestResult(summary string) *SummaryResult {
	generated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &SummaryResult{
		SummaryText: summary,
		UISummary:   "Short synopsis",
		Items: []Item{
			{Title: "First post", Text: "Body of the first post", URL: "https://example.com/1"},
			{Title: "Second post", Text: "Body of the second post", URL: "https://example.com/2"},
		},
		GeneratedAt: &generated,
	}
}

// CreateTestRecord creates a cached record for a topic request
func CreateTestRecord(id, topic string) *Record {
	opts := DefaultOptions()
	opts.Query = topic
	result := CreateTestResult("Go is great. Go is fast, and simple.")
	return &Record{
		ID:        id,
		Options:   opts,
		Result:    *result,
		Keywords:  Analyze(result.SummaryText).Top(10),
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// CreateTestRecordWithResult creates a record for opts with a custom result
func CreateTestRecordWithResult(id string, opts RequestOptions, result SummaryResult) *Record {
	return &Record{
		ID:        id,
		Options:   opts,
		Result:    result,
		Keywords:  Analyze(result.SummaryText).Top(10),
		CreatedAt: time.Now(),
	}
}
