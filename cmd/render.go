package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/thread-digest/internal"
)

var (
	// Styles for summary output
	resultHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	synopsisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Padding(0, 1).
			MarginBottom(1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	postTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	postURLStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

func resultTitle(opts internal.RequestOptions) string {
	switch opts.Source {
	case internal.SourceTopic:
		return fmt.Sprintf("📰 Topic: %s", opts.Query)
	case internal.SourceAggregator:
		return "📰 Hacker News"
	case internal.SourceURL:
		return fmt.Sprintf("📰 URL: %s", opts.Query)
	default:
		return "📰 Pasted text"
	}
}

// renderState writes a completed result for a terminal reader
func renderState(w io.Writer, state internal.State) {
	if state.Result == nil {
		return
	}
	result := state.Result

	fmt.Fprintln(w, resultHeaderStyle.Render(resultTitle(state.Options)))

	if state.Options.Source == internal.SourceTopic {
		fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%s · %s · %s",
			state.Options.Format.Label(), state.Options.Length.Label(), state.Options.Template.Label())))
		fmt.Fprintln(w)
	}

	if result.UISummary != "" {
		fmt.Fprintln(w, synopsisStyle.Render(result.UISummary))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, summaryStyle.Render(result.SummaryText))

	if result.GeneratedAt != nil {
		fmt.Fprintln(w, metaStyle.Render("Generated "+result.GeneratedAt.Local().Format("2006-01-02 15:04:05")))
		fmt.Fprintln(w)
	}

	if keywords := state.Frequencies.Top(10); len(keywords) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Keywords"))
		parts := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			parts = append(parts, keywordStyle.Render(fmt.Sprintf("%s (%d)", kw.Word, kw.Count)))
		}
		fmt.Fprintln(w, "  "+strings.Join(parts, "  "))
		fmt.Fprintln(w)
	}

	if len(result.Items) > 0 {
		fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("Posts (%d)", len(result.Items))))
		for i, item := range result.Items {
			fmt.Fprintf(w, "  %d. %s\n", i+1, postTitleStyle.Render(item.Title))
			if item.URL != "" {
				fmt.Fprintf(w, "     %s\n", postURLStyle.Render(item.URL))
			}
			if text := truncate(item.Text, 200); text != "" {
				fmt.Fprintf(w, "     %s\n", text)
			}
		}
	}
}

// truncate shortens s to max runes, flattening newlines
func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
