package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/thread-digest/internal"
)

// HTMLExporter writes a standalone HTML page. Every data string goes through
// internal.EscapeHTML, so markup in summaries or posts is shown as text.
type HTMLExporter struct {
	Dark bool
}

// Export exports a record to HTML format
func (e *HTMLExporter) Export(record *internal.Record, w io.Writer) error {
	var b strings.Builder
	esc := internal.EscapeHTML

	theme := "light"
	if e.Dark {
		theme = "dark"
	}

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", esc(record.Title()))
	b.WriteString(PageStyle)
	fmt.Fprintf(&b, "</head>\n<body class=\"%s\">\n", theme)
	fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(record.Title()))

	WriteResultHTML(&b, &record.Result)

	if len(record.Keywords) > 0 {
		b.WriteString("<h2>Keywords</h2>\n<ul class=\"keywords\">\n")
		for _, kw := range record.Keywords {
			fmt.Fprintf(&b, "<li>%s <span>%d</span></li>\n", esc(kw.Word), kw.Count)
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteResultHTML renders the summary, synopsis, timestamp and posts of a
// result as an HTML fragment.
func WriteResultHTML(b *strings.Builder, result *internal.SummaryResult) {
	esc := internal.EscapeHTML

	fmt.Fprintf(b, "<section class=\"summary\"><p>%s</p></section>\n", esc(result.SummaryText))
	if result.UISummary != "" {
		fmt.Fprintf(b, "<section class=\"ui-summary\"><p>%s</p></section>\n", esc(result.UISummary))
	}
	if result.GeneratedAt != nil {
		fmt.Fprintf(b, "<p class=\"timestamp\">Generated %s</p>\n", result.GeneratedAt.Local().Format(time.RFC1123))
	}

	if len(result.Items) == 0 {
		return
	}
	b.WriteString("<h2>Posts</h2>\n<ul class=\"posts\">\n")
	for _, item := range result.Items {
		b.WriteString("<li>")
		if item.URL != "" {
			fmt.Fprintf(b, "<a href=\"%s\">%s</a>", hrefValue(item.URL), esc(item.Title))
		} else {
			fmt.Fprintf(b, "<strong>%s</strong>", esc(item.Title))
		}
		fmt.Fprintf(b, "<p>%s</p></li>\n", esc(item.Text))
	}
	b.WriteString("</ul>\n")
}

// hrefValue escapes a URL for a double-quoted attribute
func hrefValue(u string) string {
	return internal.EscapeHTML(strings.ReplaceAll(u, `"`, "%22"))
}

// PageStyle is the <style> block shared by exported pages and the serve page
const PageStyle = `<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
body.light { background: #ffffff; color: #1f2937; }
body.dark { background: #111827; color: #e5e7eb; }
body.dark a { color: #93c5fd; }
.ui-summary { font-style: italic; }
.timestamp { color: #6b7280; font-size: 0.875rem; }
.keywords span { color: #6b7280; }
</style>
`

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}
