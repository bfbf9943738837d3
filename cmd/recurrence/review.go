package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recurrence/internal/cli"
	"github.com/at-ishikawa/recurrence/internal/review"
)

func newReviewCommand() *cobra.Command {
	var policy PolicyFlag

	command := &cobra.Command{
		Use:   "review",
		Short: "Review the due flashcards one by one and write the answers back to the notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck()
			if err != nil {
				return err
			}
			cards, err := d.cards()
			if err != nil {
				return err
			}
			scheduler, err := d.scheduler(policy, nil)
			if err != nil {
				return err
			}

			reviewLogs, closeDB, err := openReviewLogs(d.cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			var options []review.SessionOption
			if reviewLogs != nil {
				options = append(options, review.WithReviewLogs(reviewLogs))
			}
			session := review.NewSession(cards, d.store, d.codec, scheduler, options...)

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Starting review session with %d due flashcards\n\n", session.Remaining())
			reviewCLI := cli.NewInteractiveReviewCLI(session, cmd.InOrStdin(), stdout)
			return cli.Run(cmd.Context(), stdout, reviewCLI)
		},
	}
	command.Flags().Var(&policy, "policy", "Scheduling policy overriding the config. Options: classic, accelerated")

	return command
}
