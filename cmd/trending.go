package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		topics, err := a.dispatcher.TrendingTopics(ctx)
		if err != nil {
			return fmt.Errorf("failed to load trending topics: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(topics) == 0 {
			fmt.Fprintln(w, headerStyle.Render("🔥 No trending topics"))
			return nil
		}
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("🔥 %d trending topic(s)", len(topics))))
		fmt.Fprintln(w)
		for i, topic := range topics {
			fmt.Fprintf(w, "  %s %s\n", indexStyle.Render(fmt.Sprintf("%d.", i+1)), topicStyle.Render(topic))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)
}
