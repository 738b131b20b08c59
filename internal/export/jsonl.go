package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/thread-digest/internal"
)

// JSONLExporter exports records in JSONL format: one summary line followed by
// one line per post
type JSONLExporter struct{}

// Export exports a record to JSONL format
func (e *JSONLExporter) Export(record *internal.Record, w io.Writer) error {
	enc := json.NewEncoder(w)

	summary := map[string]interface{}{
		"type":    "summary",
		"id":      record.ID,
		"source":  record.Options.Source,
		"summary": record.Result.SummaryText,
	}
	if record.Options.Query != "" {
		summary["query"] = record.Options.Query
	}
	if record.Result.UISummary != "" {
		summary["ui_summary"] = record.Result.UISummary
	}
	if record.Result.GeneratedAt != nil {
		summary["generated_at"] = record.Result.GeneratedAt
	}
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	for _, item := range record.Result.Items {
		obj := map[string]interface{}{
			"type":  "post",
			"title": item.Title,
			"text":  item.Text,
		}
		if item.URL != "" {
			obj["url"] = item.URL
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode post: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
