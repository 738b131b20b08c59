package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/thread-digest/internal"
	"github.com/iksnae/thread-digest/internal/export"
	"github.com/spf13/cobra"
)

var (
	summaryFormat    string
	summaryLength    string
	summaryTemplate  string
	summarySentiment bool
	outputFormat     string
)

// flowError prints as the user-facing message and unwraps to the cause
type flowError struct {
	err error
}

func (e *flowError) Error() string {
	return internal.UserMessage(e.err)
}

func (e *flowError) Unwrap() error {
	return e.err
}

var topicCmd = &cobra.Command{
	Use:   "topic <topic...>",
	Short: "Summarize what people are saying about a topic",
	Long: `Summarize recent discussion about a topic.

Successful topics are added to the recent history (most recent first, at most
five, no duplicates).`,
	Example: `  thread-digest topic golang
  thread-digest topic "rust async" --format bullets --length short
  thread-digest topic kubernetes --template executive --sentiment`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd, internal.SourceTopic, strings.Join(args, " "))
	},
}

var hnCmd = &cobra.Command{
	Use:   "hn",
	Short: "Summarize the Hacker News front page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd, internal.SourceAggregator, "")
	},
}

var urlCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Summarize a web page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(cmd, internal.SourceURL, args[0])
	},
}

var textCmd = &cobra.Command{
	Use:   "text [text]",
	Short: "Summarize text from an argument or stdin",
	Long: `Summarize a block of text. With no argument, or with "-", the text is
read from stdin.`,
	Example: `  thread-digest text "Go 1.23 adds range-over-func iterators."
  pbpaste | thread-digest text`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && args[0] != "-" {
			return runSummary(cmd, internal.SourceText, args[0])
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return runSummary(cmd, internal.SourceText, string(data))
	},
}

// buildOptions starts from the configured defaults and applies any flags the
// user set on this command.
func buildOptions(cmd *cobra.Command, base internal.RequestOptions, source internal.Source, query string) (internal.RequestOptions, error) {
	opts := base
	opts.Source = source
	opts.Query = query

	flags := cmd.Flags()
	if flags.Changed("format") {
		format, err := internal.ParseFormat(summaryFormat)
		if err != nil {
			return opts, err
		}
		opts.Format = format
	}
	if flags.Changed("length") {
		length, err := internal.ParseLength(summaryLength)
		if err != nil {
			return opts, err
		}
		opts.Length = length
	}
	if flags.Changed("template") {
		template, err := internal.ParseTemplate(summaryTemplate)
		if err != nil {
			return opts, err
		}
		opts.Template = template
	}
	if flags.Changed("sentiment") {
		opts.Sentiment = summarySentiment
	}
	return opts, nil
}

func runSummary(cmd *cobra.Command, source internal.Source, query string) error {
	if outputFormat != "text" {
		if _, err := export.NewExporter(outputFormat); err != nil {
			return err
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts, err := buildOptions(cmd, a.controller.State().Options, source, query)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.loadHistory()

	var state internal.State
	message := fmt.Sprintf("Generating %s summary...", source.Label())
	err = internal.ShowProgress(ctx, message, func() error {
		var flowErr error
		state, flowErr = a.controller.Submit(ctx, opts)
		return flowErr
	})
	if err != nil {
		return &flowError{err: err}
	}

	return writeResult(cmd.OutOrStdout(), a, state)
}

func writeResult(w io.Writer, a *app, state internal.State) error {
	if outputFormat == "text" {
		renderState(w, state)
		return nil
	}

	exporter, err := export.NewExporter(outputFormat)
	if err != nil {
		return err
	}
	if html, ok := exporter.(*export.HTMLExporter); ok {
		html.Dark = state.History.Dark
	}

	opts, _ := internal.ValidateOptions(state.Options)
	record := &internal.Record{
		Options:   opts,
		Result:    *state.Result,
		Keywords:  state.Frequencies.Top(20),
		CreatedAt: time.Now(),
	}
	if saved := a.controller.SavedRecord(); saved != nil && saved.Options.Source == opts.Source {
		record.ID = saved.ID
		record.CreatedAt = saved.CreatedAt
	}
	return exporter.Export(record, w)
}

func addSummaryFlags(cmd *cobra.Command, withOptions bool) {
	if withOptions {
		cmd.Flags().StringVarP(&summaryFormat, "format", "f", "plain", "Summary format (plain, bullets, tldr)")
		cmd.Flags().StringVarP(&summaryLength, "length", "l", "medium", "Summary length (short, medium, long)")
		cmd.Flags().StringVarP(&summaryTemplate, "template", "t", "basic", "Prompt template (basic, sentiment, comparative, daily, executive, ui)")
		cmd.Flags().BoolVar(&summarySentiment, "sentiment", false, "Include sentiment analysis")
	}
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json, jsonl, yaml, md, html)")
}

func init() {
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(hnCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(textCmd)

	addSummaryFlags(topicCmd, true)
	addSummaryFlags(hnCmd, false)
	addSummaryFlags(urlCmd, false)
	addSummaryFlags(textCmd, false)
}
