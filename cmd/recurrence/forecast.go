package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recurrence/internal/cli"
	"github.com/at-ishikawa/recurrence/internal/review"
)

func newForecastCommand() *cobra.Command {
	var policy PolicyFlag
	var days int
	var seed int64

	command := &cobra.Command{
		Use:   "forecast",
		Short: "Simulate the coming reviews and show how many flashcards are due each day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			d, err := loadDeck()
			if err != nil {
				return err
			}
			cards, err := d.cards()
			if err != nil {
				return err
			}

			random := newRandom(seed)
			scheduler, err := d.scheduler(policy, random)
			if err != nil {
				return err
			}
			forecast, err := review.RunForecast(cards, scheduler, random, time.Now(), days, d.location)
			if err != nil {
				return fmt.Errorf("review.RunForecast() > %w", err)
			}
			cli.WriteForecast(cmd.OutOrStdout(), forecast)
			return nil
		},
	}
	command.Flags().Var(&policy, "policy", "Scheduling policy overriding the config. Options: classic, accelerated")
	command.Flags().IntVar(&days, "days", review.DefaultForecastDays, "Number of days to simulate")
	command.Flags().Int64Var(&seed, "seed", 0, "Random seed for the simulated answers (0 picks one)")

	return command
}
