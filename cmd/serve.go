package cmd

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/iksnae/thread-digest/internal/web"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a local web display of the session",
	Long: `Serve the summary session over HTTP.

  GET  /                    HTML page for the current state
  GET  /api/state           current state as JSON
  POST /api/summarize       run a flow ({"source":"topic","query":"golang"})
  POST /api/options         edit options without submitting
  POST /api/theme/toggle    flip the light/dark preference
  GET  /api/history         recent topics
  POST /api/history/pick    select a recent topic ({"topic":"golang"})
  GET  /api/last            most recent cached result`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a.controller.Start(ctx)

		addr := a.config.Serve.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		return web.NewServer(a.controller, a.config.Serve.AllowedOrigins).Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}
