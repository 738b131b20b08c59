package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/thread-digest/internal"
	"github.com/iksnae/thread-digest/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the most recent summary to a file",
	Long: `Export the most recent cached summary to a file (jsonl, md, yaml, json, html).

Use --source to export the latest result of one flow.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		record, a, err := loadLastRecord()
		if err != nil {
			return err
		}
		defer a.Close()

		if html, ok := exporter.(*export.HTMLExporter); ok {
			html.Dark = a.history.Load().Dark
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		name := record.ID
		if name == "" {
			name = record.CreatedAt.Format("20060102-150405")
		}
		path := filepath.Join(outputDir, fmt.Sprintf("summary_%s.%s", name, exporter.Extension()))

		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		if err := exporter.Export(record, file); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to export: %w", err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close file: %w", err)
		}

		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Exported %s to %s", record.Title(), path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "md", "Export format (jsonl, md, yaml, json, html)")
	exportCmd.Flags().StringVar(&outputDir, "out", "./exports", "Output directory")
	exportCmd.Flags().StringVarP(&lastSource, "source", "s", "", "Only consider results of this flow (topic, hn, url, text)")
}
