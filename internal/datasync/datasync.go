// Package datasync exports review state to YAML and imports review logs back into the database.
package datasync

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/recurrence/internal/learning"
	"github.com/at-ishikawa/recurrence/internal/review"
)

const dateFormat = "2006-01-02"

// ExportData is the YAML snapshot of a deck.
type ExportData struct {
	ExportedAt time.Time            `yaml:"exported_at"`
	Documents  []DocumentExport     `yaml:"documents"`
	ReviewLogs []learning.ReviewLog `yaml:"review_logs,omitempty"`
}

type DocumentExport struct {
	Path  string       `yaml:"path"`
	Cards []CardExport `yaml:"cards"`
}

type CardExport struct {
	LineNumber int               `yaml:"line_number"`
	Line       string            `yaml:"line"`
	Flashcards []FlashcardExport `yaml:"flashcards"`
}

type FlashcardExport struct {
	Type  string `yaml:"type"`
	Index int    `yaml:"index"`
	Front string `yaml:"front"`
	Back  string `yaml:"back"`
	// Due is empty until the flashcard is first reviewed
	Due   string `yaml:"due,omitempty"`
	Level int    `yaml:"level"`
}

// Exporter builds snapshots of cards and, when a repository is set, their review logs.
type Exporter struct {
	reviewLogs learning.ReviewLogRepository
}

// NewExporter creates a new Exporter. reviewLogs may be nil.
func NewExporter(reviewLogs learning.ReviewLogRepository) *Exporter {
	return &Exporter{
		reviewLogs: reviewLogs,
	}
}

// Export converts cards into a snapshot, grouped by document in first-seen order.
// Review logs reviewed at or after since are included.
func (e *Exporter) Export(ctx context.Context, cards []*review.Card, now, since time.Time) (*ExportData, error) {
	data := &ExportData{ExportedAt: now}
	indexes := make(map[string]int)
	for _, card := range cards {
		index, ok := indexes[card.Path]
		if !ok {
			index = len(data.Documents)
			indexes[card.Path] = index
			data.Documents = append(data.Documents, DocumentExport{Path: card.Path})
		}

		export := CardExport{
			LineNumber: card.LineNumber,
			Line:       card.Line,
		}
		for _, flashcard := range card.Flashcards {
			item := FlashcardExport{
				Type:  string(flashcard.Type),
				Index: flashcard.Index,
				Front: flashcard.Front,
				Back:  flashcard.Back,
				Level: flashcard.Difficulty.Level,
			}
			if flashcard.Difficulty.IsScheduled() {
				item.Due = flashcard.Difficulty.DueDate.Format(dateFormat)
			}
			export.Flashcards = append(export.Flashcards, item)
		}
		data.Documents[index].Cards = append(data.Documents[index].Cards, export)
	}

	if e.reviewLogs == nil {
		return data, nil
	}
	logs, err := e.reviewLogs.FindSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("reviewLogs.FindSince() > %w", err)
	}
	data.ReviewLogs = logs
	return data, nil
}

// WriteYAML encodes the snapshot.
func WriteYAML(w io.Writer, data *ExportData) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}

// ReadYAML decodes a snapshot written by WriteYAML.
func ReadYAML(r io.Reader) (*ExportData, error) {
	var data ExportData
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoder.Decode() > %w", err)
	}
	return &data, nil
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	ReviewLogsNew     int
	ReviewLogsSkipped int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Importer writes review logs of a snapshot to the database.
type Importer struct {
	reviewLogs learning.ReviewLogRepository
	writer     io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(reviewLogs learning.ReviewLogRepository, writer io.Writer) *Importer {
	return &Importer{
		reviewLogs: reviewLogs,
		writer:     writer,
	}
}

// ImportReviewLogs creates the logs that are not in the database yet.
// A log is identified by its document, line, flashcard and review time.
func (imp *Importer) ImportReviewLogs(ctx context.Context, logs []learning.ReviewLog, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	if len(logs) == 0 {
		return &result, nil
	}

	earliest := logs[0].ReviewedAt
	for _, log := range logs {
		if log.ReviewedAt.Before(earliest) {
			earliest = log.ReviewedAt
		}
	}
	existing, err := imp.reviewLogs.FindSince(ctx, earliest)
	if err != nil {
		return nil, fmt.Errorf("FindSince() > %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, log := range existing {
		seen[reviewLogKey(log)] = struct{}{}
	}

	for _, log := range logs {
		key := reviewLogKey(log)
		if _, ok := seen[key]; ok {
			fmt.Fprintf(imp.writer, "  [SKIP]  %q (%s#%d)\n", log.Line, log.FlashcardType, log.FlashcardIndex)
			result.ReviewLogsSkipped++
			continue
		}
		seen[key] = struct{}{}

		if !opts.DryRun {
			log.ID = 0
			if err := imp.reviewLogs.Create(ctx, &log); err != nil {
				return nil, fmt.Errorf("Create() > %w", err)
			}
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %q (%s#%d)\n", log.Line, log.FlashcardType, log.FlashcardIndex)
		result.ReviewLogsNew++
	}
	return &result, nil
}

func reviewLogKey(log learning.ReviewLog) string {
	return fmt.Sprintf("%s|%s|%s#%d|%d", log.Path, log.Line, log.FlashcardType, log.FlashcardIndex, log.ReviewedAt.Unix())
}
