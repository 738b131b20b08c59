package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/thread-digest/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

const healthProbeKey = "healthcheck"

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check config, history store and service reachability",
	Long: `Check the health of thread-digest by verifying:
  • Configuration loads and validates
  • The history store opens and accepts writes
  • The result cache directory is writable
  • The summarization service answers

Only a config failure or an unreachable service fails the check. A broken
history store only costs history and theme persistence.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, sectionStyle.Render("🔍 Thread Digest Health Check"))
		fmt.Fprintln(w)

		// Step 1: Config
		fmt.Fprintln(w, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintln(w, errorStyle.Render("❌ Configuration is invalid:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		if serverURL != "" {
			cfg.Server.BaseURL = serverURL
		}
		if cfg.Path != "" {
			fmt.Fprintln(w, successStyle.Render("✅ Configuration loaded"))
		} else {
			fmt.Fprintln(w, successStyle.Render("✅ Using default configuration"))
		}
		if healthcheckDetails {
			fmt.Fprintf(w, "   File: %s\n", orDash(cfg.Path))
			fmt.Fprintf(w, "   Server: %s\n", cfg.Server.BaseURL)
			fmt.Fprintf(w, "   Timeout: %s\n", cfg.Server.Timeout)
		}
		fmt.Fprintln(w)

		// Step 2: History store
		fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("Step 2: Checking %s history store...", cfg.Store.Driver)))
		storeErr := checkStore(cfg.Store)
		if storeErr == nil {
			fmt.Fprintln(w, successStyle.Render("✅ History store is writable"))
		} else {
			fmt.Fprintln(w, warningStyle.Render("⚠️  History store unavailable, history will not be saved:"), storeErr)
		}
		if healthcheckDetails {
			switch cfg.Store.Driver {
			case "redis":
				fmt.Fprintf(w, "   Redis: %s (prefix %q)\n", orDash(cfg.Store.RedisURL), cfg.Store.RedisPrefix)
			case "sqlite":
				fmt.Fprintf(w, "   Database: %s\n", cfg.Store.Path)
			}
		}
		fmt.Fprintln(w)

		// Step 3: Result cache
		fmt.Fprintln(w, infoStyle.Render("Step 3: Checking result cache..."))
		cache := internal.NewResultCache(cfg.Cache.Dir)
		if err := cache.EnsureCacheDir(); err != nil {
			fmt.Fprintln(w, warningStyle.Render("⚠️  Result cache unavailable:"), err)
		} else {
			fmt.Fprintln(w, successStyle.Render("✅ Result cache is available"))
			if index, err := cache.LoadIndex(); err == nil && healthcheckDetails {
				fmt.Fprintf(w, "   Directory: %s\n", cache.GetCacheDir())
				fmt.Fprintf(w, "   Cached results: %d\n", len(index.Results))
			}
		}
		fmt.Fprintln(w)

		// Step 4: Service
		fmt.Fprintln(w, infoStyle.Render("Step 4: Contacting summarization service..."))
		dispatcher := internal.NewHTTPDispatcher(cfg.Server.BaseURL,
			internal.WithPaths(cfg.Server.Paths),
			internal.WithTimeout(5*time.Second),
			internal.WithUserAgent("thread-digest/"+version),
		)
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		serverErr := dispatcher.Ping(ctx)
		if serverErr == nil {
			fmt.Fprintln(w, successStyle.Render("✅ Service is reachable"))
		} else {
			fmt.Fprintln(w, errorStyle.Render("❌ Service is unreachable:"), serverErr)
		}
		fmt.Fprintln(w)

		// Summary
		fmt.Fprintln(w, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(w)

		if serverErr != nil {
			fmt.Fprintln(w, errorStyle.Render("❌ Health check failed"))
			fmt.Fprintf(w, "   • Cannot reach %s\n", cfg.Server.BaseURL)
			return fmt.Errorf("health check failed: service unreachable: %w", serverErr)
		}
		if storeErr != nil {
			fmt.Fprintln(w, warningStyle.Render("⚠️  Service available but history store is not"))
			return nil
		}
		fmt.Fprintln(w, successStyle.Render("✅ Health check passed!"))
		return nil
	},
}

// checkStore opens the configured backend and round-trips a probe key
func checkStore(cfg internal.StoreConfig) error {
	kv, err := internal.OpenKV(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := kv.Set(healthProbeKey, "ok"); err != nil {
		return err
	}
	value, ok, err := kv.Get(healthProbeKey)
	if err != nil {
		return err
	}
	if !ok || value != "ok" {
		return fmt.Errorf("probe value not read back")
	}
	return kv.Delete(healthProbeKey)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckDetails, "details", "d", false, "Show detailed diagnostic information")
}
