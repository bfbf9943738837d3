package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recurrence/internal/cli"
	"github.com/at-ishikawa/recurrence/internal/statistics"
)

func newDueCommand() *cobra.Command {
	sortFlag := SortByPath

	command := &cobra.Command{
		Use:   "due",
		Short: "Show cards, due flashcards and levels per note",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck()
			if err != nil {
				return err
			}
			cards, err := d.cards()
			if err != nil {
				return err
			}

			documents := statistics.CalculateDeckStatistics(cards, time.Now())
			switch sortFlag {
			case SortByDue:
				statistics.SortByDue(documents)
			default:
				statistics.SortByPath(documents)
			}
			if err := cli.WriteDeckStatistics(cmd.OutOrStdout(), documents); err != nil {
				return fmt.Errorf("cli.WriteDeckStatistics() > %w", err)
			}
			return nil
		},
	}
	command.Flags().Var(&sortFlag, "sort", "Sort order for the output. Options: path, due")

	return command
}

func newStatsCommand() *cobra.Command {
	var year, month int

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show answers per month from the review log",
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

			logs, err := reviewLogs.FindSince(cmd.Context(), time.Time{})
			if err != nil {
				return fmt.Errorf("reviewLogs.FindSince() > %w", err)
			}
			result := statistics.CalculateReviewStatistics(logs, year, month)
			if err := cli.WriteReviewStatistics(cmd.OutOrStdout(), result); err != nil {
				return fmt.Errorf("cli.WriteReviewStatistics() > %w", err)
			}
			return nil
		},
	}
	command.Flags().IntVar(&year, "year", 0, "Only count answers of this year")
	command.Flags().IntVar(&month, "month", 0, "Only count answers of this month (1-12)")

	return command
}
