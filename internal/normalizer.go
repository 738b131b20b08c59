package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// RawResponse is what the dispatcher hands back: either a status code and
// body, or a transport failure in Err.
type RawResponse struct {
	StatusCode int
	Body       []byte
	Err        error
	RequestID  string
}

// OK reports whether the transport succeeded with a 2xx status
func (r RawResponse) OK() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// summaryPayload is the response body shared by all four endpoints
type summaryPayload struct {
	Summary   string   `json:"summary"`
	UISummary string   `json:"ui_summary"`
	Posts     []Item   `json:"posts"`
	Timestamp *float64 `json:"timestamp"`
}

// errorPayload is the body the service returns with a non-2xx status
type errorPayload struct {
	Detail string `json:"detail"`
}

// Normalize converts a raw response into a SummaryResult. Anything that is not
// a usable summary comes back as *TransportError or *EmptyResultError (or the
// *ValidationError the dispatcher refused to send).
func Normalize(source Source, query string, raw RawResponse) (*SummaryResult, error) {
	if raw.Err != nil {
		var validationErr *ValidationError
		if errors.As(raw.Err, &validationErr) {
			return nil, validationErr
		}
		return nil, &TransportError{Source: source, RequestID: raw.RequestID, Err: raw.Err}
	}

	if !raw.OK() {
		var detail errorPayload
		_ = json.Unmarshal(raw.Body, &detail)
		return nil, &TransportError{
			Source:     source,
			StatusCode: raw.StatusCode,
			Detail:     detail.Detail,
			RequestID:  raw.RequestID,
		}
	}

	var payload summaryPayload
	if err := json.Unmarshal(raw.Body, &payload); err != nil {
		return nil, &TransportError{
			Source:     source,
			StatusCode: raw.StatusCode,
			RequestID:  raw.RequestID,
			Err:        fmt.Errorf("failed to parse response body: %w", err),
		}
	}

	if strings.TrimSpace(payload.Summary) == "" {
		return nil, &EmptyResultError{Source: source, Query: query}
	}

	result := &SummaryResult{
		SummaryText: payload.Summary,
		UISummary:   payload.UISummary,
		Items:       payload.Posts,
	}
	if result.Items == nil {
		result.Items = []Item{}
	}
	if payload.Timestamp != nil {
		t := timeFromUnix(*payload.Timestamp)
		result.GeneratedAt = &t
	}

	return result, nil
}

func timeFromUnix(ts float64) time.Time {
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*1e9))
}
