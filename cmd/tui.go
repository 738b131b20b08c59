package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iksnae/thread-digest/internal"
	"github.com/iksnae/thread-digest/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	Long: `Open the interactive terminal UI.

Keys:
  tab / shift+tab   switch flow (topic, hn, url, text)
  enter             generate summary
  ctrl+f / ctrl+l   cycle format / length
  ctrl+e / ctrl+t   toggle sentiment / cycle prompt template
  ctrl+d            toggle light/dark theme
  ctrl+r            fill in a trending topic
  alt+1..alt+5      pick a recent topic
  esc / ctrl+c      quit

Logs go to thread-digest.log in the data directory while the UI is open.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !internal.IsTerminal(os.Stdout) {
			return fmt.Errorf("tui needs an interactive terminal")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		logFile, err := openTUILog()
		if err != nil {
			internal.LogWarn("Failed to open log file: %v", err)
		} else {
			internal.SetLogOutput(logFile)
			defer func() {
				internal.SetLogOutput(os.Stderr)
				_ = logFile.Close()
			}()
		}

		// history and theme are applied before the first frame is drawn
		a.loadHistory()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		p := tea.NewProgram(tui.New(a.controller, tui.WithContext(ctx)), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui failed: %w", err)
		}
		return nil
	},
}

func openTUILog() (*os.File, error) {
	dir, err := internal.DefaultDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "thread-digest.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
