package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recurrence/internal/review"
)

func newValidateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "validate",
		Short: "Check the notes for review state that would be lost or misplaced",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck()
			if err != nil {
				return err
			}

			result, err := d.loader.Validate(d.paths)
			if err != nil {
				return fmt.Errorf("loader.Validate() > %w", err)
			}

			displayValidationResults(cmd.OutOrStdout(), result)

			if result.HasErrors() {
				return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}

	return command
}

// maxWarnings is the number of warnings listed before the rest are summarized
const maxWarnings = 10

func displayValidationResults(w io.Writer, result *review.ValidationResult) {
	fmt.Fprintln(w, "\n=== Validation Results ===")

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "✗ Errors (%d):\n", len(result.Errors))
		for _, err := range result.Errors {
			fmt.Fprintf(w, "  - %s\n", err.Error())
		}
		fmt.Fprintln(w)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "⚠ Warnings (%d):\n", len(result.Warnings))
		displayCount := min(len(result.Warnings), maxWarnings)
		for _, warn := range result.Warnings[:displayCount] {
			fmt.Fprintf(w, "  - %s\n", warn.Error())
		}
		if len(result.Warnings) > maxWarnings {
			fmt.Fprintf(w, "  ... and %d more\n", len(result.Warnings)-maxWarnings)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== Summary ===")
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintln(w, "✓ All validations passed!")
	} else {
		if len(result.Errors) > 0 {
			fmt.Fprintf(w, "✗ Total errors: %d\n", len(result.Errors))
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintf(w, "⚠ Total warnings: %d\n", len(result.Warnings))
		}
	}
	fmt.Fprintln(w)
}
