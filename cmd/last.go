package cmd

import (
	"fmt"

	"github.com/iksnae/thread-digest/internal"
	"github.com/spf13/cobra"
)

var lastSource string

// lastCmd shows the most recent cached result
var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the most recent summary",
	Long: `Show the most recent successful summary from the result cache.

Use --source to pick the latest result of one flow (topic, hn, url, text).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		record, a, err := loadLastRecord()
		if err != nil {
			return err
		}
		defer a.Close()

		state := a.loadHistory()
		state.Options = record.Options
		state.Result = &record.Result
		state.Frequencies = internal.Analyze(record.Result.SummaryText)

		renderState(cmd.OutOrStdout(), state)
		return nil
	},
}

// loadLastRecord opens the app and finds the latest cached record for
// --source. The caller closes the returned app.
func loadLastRecord() (*internal.Record, *app, error) {
	var source internal.Source
	if lastSource != "" {
		parsed, err := internal.ParseSource(lastSource)
		if err != nil {
			return nil, nil, err
		}
		source = parsed
	}

	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}

	record, err := a.controller.LastRecord(source)
	if err != nil {
		a.Close()
		return nil, nil, fmt.Errorf("failed to load cached result: %w", err)
	}
	if record == nil {
		a.Close()
		if source != "" {
			return nil, nil, fmt.Errorf("no cached %s summary, run `thread-digest %s` first", source.Label(), source)
		}
		return nil, nil, fmt.Errorf("no cached summary, run a summary command first")
	}
	return record, a, nil
}

func init() {
	rootCmd.AddCommand(lastCmd)
	lastCmd.Flags().StringVarP(&lastSource, "source", "s", "", "Only consider results of this flow (topic, hn, url, text)")
}
