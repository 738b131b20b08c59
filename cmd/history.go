package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/thread-digest/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	topicStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	tipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently summarized topics",
	Long:  `List the topics of recent successful summaries, most recent first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		displayHistory(cmd, a.history.Load().Topics)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget recently summarized topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.history.Clear()
		internal.PrintSuccess(cmd.OutOrStdout(), "Topic history cleared")
		return nil
	},
}

func displayHistory(cmd *cobra.Command, topics []string) {
	w := cmd.OutOrStdout()
	if len(topics) == 0 {
		fmt.Fprintln(w, headerStyle.Render("📋 No recent topics"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("📋 %d recent topic(s)", len(topics))))
	fmt.Fprintln(w)
	for i, topic := range topics {
		fmt.Fprintf(w, "  %s %s\n", indexStyle.Render(fmt.Sprintf("%d.", i+1)), topicStyle.Render(topic))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, tipStyle.Render("💡 Tip: summarize again with `thread-digest topic "+topics[0]+"`"))
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)
}
