package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/thread-digest/internal"
)

// MarkdownExporter exports records in Markdown format
type MarkdownExporter struct{}

// Export exports a record to Markdown format
func (e *MarkdownExporter) Export(record *internal.Record, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", record.Title())

	opts := record.Options
	if opts.Source == internal.SourceTopic {
		_, _ = fmt.Fprintf(w, "**Format:** %s  \n", opts.Format.Label())
		_, _ = fmt.Fprintf(w, "**Length:** %s  \n", opts.Length.Label())
		_, _ = fmt.Fprintf(w, "**Template:** %s  \n", opts.Template.Label())
		_, _ = fmt.Fprintf(w, "**Sentiment:** %t  \n", opts.Sentiment)
	}
	if record.Result.GeneratedAt != nil {
		_, _ = fmt.Fprintf(w, "**Generated:** %s  \n", record.Result.GeneratedAt.Local().Format(time.RFC1123))
	}
	_, _ = fmt.Fprintf(w, "**Posts:** %d\n\n", len(record.Result.Items))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Summary\n\n%s\n\n", escapeMarkdown(record.Result.SummaryText))

	if record.Result.UISummary != "" {
		_, _ = fmt.Fprintf(w, "> %s\n\n", escapeMarkdown(record.Result.UISummary))
	}

	if len(record.Keywords) > 0 {
		_, _ = fmt.Fprintf(w, "## Keywords\n\n")
		for _, kw := range record.Keywords {
			_, _ = fmt.Fprintf(w, "- %s (%d)\n", kw.Word, kw.Count)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	if len(record.Result.Items) > 0 {
		_, _ = fmt.Fprintf(w, "## Posts\n\n")
		for i, item := range record.Result.Items {
			if item.URL != "" {
				_, _ = fmt.Fprintf(w, "### [%s](%s)\n\n", item.Title, item.URL)
			} else {
				_, _ = fmt.Fprintf(w, "### %s\n\n", item.Title)
			}
			_, _ = fmt.Fprintf(w, "%s\n\n", escapeMarkdown(item.Text))

			if i < len(record.Result.Items)-1 {
				_, _ = fmt.Fprintf(w, "---\n\n")
			}
		}
	}

	return nil
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
