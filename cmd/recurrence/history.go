package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recurrence/internal/cli"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:   "history",
		Short: "List the latest answers from the review log",
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

			logs, err := reviewLogs.FindRecent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("reviewLogs.FindRecent() > %w", err)
			}
			cli.WriteReviewLogs(cmd.OutOrStdout(), logs)
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 20, "Number of answers to show")

	return command
}
