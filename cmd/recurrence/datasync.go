package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recurrence/internal/datasync"
)

func newExportCommand() *cobra.Command {
	var since string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the review state of every card, and the review log when enabled, as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			var sinceTime time.Time
			if since != "" {
				parsed, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("invalid --since %q: %w", since, err)
				}
				sinceTime = parsed
			}

			d, err := loadDeck()
			if err != nil {
				return err
			}
			cards, err := d.cards()
			if err != nil {
				return err
			}
			reviewLogs, closeDB, err := openReviewLogs(d.cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			data, err := datasync.NewExporter(reviewLogs).Export(cmd.Context(), cards, time.Now(), sinceTime)
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("os.Create(%s) > %w", output, err)
				}
				defer func() {
					_ = file.Close()
				}()
				w = file
			}
			if err := datasync.WriteYAML(w, data); err != nil {
				return fmt.Errorf("datasync.WriteYAML() > %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only export review logs from this date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import the review log of an exported YAML file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck()
			if err != nil {
				return err
			}
			reviewLogs, closeDB, err := requireReviewLogs(d.cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("os.Open(%s) > %w", args[0], err)
			}
			defer func() {
				_ = file.Close()
			}()
			data, err := datasync.ReadYAML(file)
			if err != nil {
				return fmt.Errorf("datasync.ReadYAML() > %w", err)
			}

			stdout := cmd.OutOrStdout()
			importer := datasync.NewImporter(reviewLogs, stdout)
			opts := datasync.ImportOptions{
				DryRun: dryRun,
			}
			result, err := importer.ImportReviewLogs(cmd.Context(), data.ReviewLogs, opts)
			if err != nil {
				return fmt.Errorf("importer.ImportReviewLogs() > %w", err)
			}

			fmt.Fprintln(stdout, "\nImport Summary:")
			if opts.DryRun {
				fmt.Fprintln(stdout, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(stdout, "  Review logs: %d new, %d skipped\n", result.ReviewLogsNew, result.ReviewLogsSkipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	return cmd
}
