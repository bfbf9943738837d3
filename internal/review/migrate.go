package review

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/recurrence/internal/annotation"
	"github.com/at-ishikawa/recurrence/internal/document"
)

// Migration is the rewrite of one line from compact tokens to tagged ones.
type Migration struct {
	Card    *Card
	OldLine string
	NewLine string
}

// PlanMigrations returns the rewrites of every card still carrying compact tokens.
// Compact tokens were decoded by position against the current derivation when the card was loaded.
func PlanMigrations(cards []*Card, codec *annotation.Codec) ([]Migration, error) {
	if codec.Encoding() != annotation.EncodingTagged {
		return nil, fmt.Errorf("migrations write the %s encoding, got %s", annotation.EncodingTagged, codec.Encoding())
	}

	var migrations []Migration
	for _, card := range cards {
		if !card.Compact {
			continue
		}
		line, err := card.Rewrite(codec)
		if err != nil {
			return nil, fmt.Errorf("card.Rewrite(%s:%d) > %w", card.Path, card.LineNumber, err)
		}
		if line == card.Line {
			continue
		}
		migrations = append(migrations, Migration{
			Card:    card,
			OldLine: card.Line,
			NewLine: line,
		})
	}
	return migrations, nil
}

// ApplyMigrations writes the migrations to their documents. A line that changed since it was
// read is skipped and reported in the returned error; the others are still written.
func ApplyMigrations(store document.Store, migrations []Migration) (int, error) {
	applied := 0
	var errs []error
	for _, migration := range migrations {
		card := migration.Card
		if err := store.ReplaceLine(card.Path, migration.OldLine, migration.NewLine); err != nil {
			if !errors.Is(err, document.ErrLineNotFound) {
				return applied, fmt.Errorf("store.ReplaceLine(%s) > %w", card.Path, err)
			}
			slog.Default().Warn("skipped a line changed since it was read",
				slog.String("path", card.Path),
				slog.Int("line", card.LineNumber),
			)
			errs = append(errs, fmt.Errorf("%s:%d > %w", card.Path, card.LineNumber, err))
			continue
		}
		applied++
	}
	return applied, errors.Join(errs...)
}
