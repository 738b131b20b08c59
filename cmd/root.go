package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/thread-digest/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	serverURL  string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "thread-digest",
	Short: "Summarize discussion threads, links and text from the terminal",
	Long: `A CLI client for a remote summarization service.

Ask for a summary of what people are saying about a topic, of the current
Hacker News front page, of a web page, or of text you paste in.

Features:
  • Four flows: topic, hn, url, text
  • Format, length, sentiment and prompt-template options
  • Recent topic history and a light/dark theme preference
  • Keyword frequencies for every summary
  • Interactive terminal UI and a local web display
  • Export the last result as JSONL, Markdown, YAML, JSON or HTML

Quick Start:
  thread-digest topic golang            # Summarize a topic
  thread-digest hn                      # Summarize Hacker News
  thread-digest url https://go.dev      # Summarize a web page
  thread-digest tui                     # Interactive UI`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.thread-digest/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Summarization service base URL (overrides config)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
