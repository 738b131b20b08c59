package tui

import "github.com/iksnae/thread-digest/internal"

// SummaryCompletedMsg carries the outcome of a dispatched request.
type SummaryCompletedMsg struct {
	Event internal.CompletedEvent
}

// TrendingLoadedMsg carries topic suggestions.
type TrendingLoadedMsg struct {
	Topics []string
}
