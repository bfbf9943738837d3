package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recurrence/internal/annotation"
	"github.com/at-ishikawa/recurrence/internal/database"
	"github.com/at-ishikawa/recurrence/internal/review"
	"github.com/at-ishikawa/recurrence/schemas"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCmd.AddCommand(newMigrateAnnotationsCommand())
	migrateCmd.AddCommand(newMigrateDBCommand())

	return migrateCmd
}

func newMigrateAnnotationsCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "annotations",
		Short: "Rewrite compact review state in the notes with the tagged encoding",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck()
			if err != nil {
				return err
			}
			codec, err := annotation.NewCodec(annotation.EncodingTagged, d.location)
			if err != nil {
				return fmt.Errorf("annotation.NewCodec() > %w", err)
			}
			cards, err := review.NewLoader(d.store, codec).Load(d.paths)
			if err != nil {
				return fmt.Errorf("loader.Load() > %w", err)
			}

			migrations, err := review.PlanMigrations(cards, codec)
			if err != nil {
				return fmt.Errorf("review.PlanMigrations() > %w", err)
			}

			stdout := cmd.OutOrStdout()
			for _, migration := range migrations {
				fmt.Fprintf(stdout, "%s:%d\n  - %s\n  + %s\n", migration.Card.Path, migration.Card.LineNumber, migration.OldLine, migration.NewLine)
			}
			if dryRun {
				fmt.Fprintf(stdout, "%d lines would be migrated (dry-run mode, no changes made)\n", len(migrations))
				return nil
			}

			applied, err := review.ApplyMigrations(d.store, migrations)
			fmt.Fprintf(stdout, "%d of %d lines migrated\n", applied, len(migrations))
			if err != nil {
				return fmt.Errorf("review.ApplyMigrations() > %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the changes without writing the notes")
	return cmd
}

func newMigrateDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "Create or update the review log tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeck()
			if err != nil {
				return err
			}
			if !d.cfg.Database.Enabled {
				return fmt.Errorf("database.enabled is false in the config")
			}
			db, err := database.Open(d.cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(cmd.Context(), db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migrations applied\n", len(applied))
			return nil
		},
	}
}
