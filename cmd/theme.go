package cmd

import (
	"fmt"
	"strings"

	"github.com/iksnae/thread-digest/internal"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or set the theme preference",
	Long:      `Show the saved light/dark preference, or set it. The TUI, serve page and HTML export use it.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		state := a.loadHistory()
		if len(args) == 1 {
			var want bool
			switch strings.ToLower(args[0]) {
			case "light":
				want = false
			case "dark":
				want = true
			case "toggle":
				want = !state.History.Dark
			default:
				return fmt.Errorf("unknown theme %q (expected light, dark or toggle)", args[0])
			}
			if want != state.History.Dark {
				state, _ = a.controller.Apply(internal.ToggleThemeEvent{})
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), themeName(state.History.Dark))
		return nil
	},
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
