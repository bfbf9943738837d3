// Package statistics summarizes decks and review history.
package statistics

import (
	"sort"
	"time"

	"github.com/at-ishikawa/recurrence/internal/review"
)

// LevelBuckets are the lower bounds of the level histogram.
var LevelBuckets = []int{0, 1, 10, 100, 1000}

// LevelBucketLabels name LevelBuckets in order.
var LevelBucketLabels = []string{"0", "1-9", "10-99", "100-999", "1000+"}

// DocumentStatistics holds counts for one document
type DocumentStatistics struct {
	Path          string
	Cards         int
	DueCards      int
	Flashcards    int
	DueFlashcards int
	Unscheduled   int
	// Levels counts scheduled flashcards per LevelBuckets entry
	Levels []int
	// NextDue is the earliest due date in the future, if any
	NextDue *time.Time
}

// CalculateDeckStatistics groups cards by document, in first-seen order.
func CalculateDeckStatistics(cards []*review.Card, now time.Time) []DocumentStatistics {
	var documents []DocumentStatistics
	indexes := make(map[string]int)

	for _, card := range cards {
		index, ok := indexes[card.Path]
		if !ok {
			index = len(documents)
			indexes[card.Path] = index
			documents = append(documents, DocumentStatistics{
				Path:   card.Path,
				Levels: make([]int, len(LevelBuckets)),
			})
		}
		stats := &documents[index]

		stats.Cards++
		if card.IsDue(now) {
			stats.DueCards++
			stats.DueFlashcards += len(card.DueFlashcards(now))
		}
		for _, flashcard := range card.Flashcards {
			stats.Flashcards++
			if !flashcard.Difficulty.IsScheduled() {
				stats.Unscheduled++
				continue
			}
			stats.Levels[levelBucket(flashcard.Difficulty.Level)]++

			due := *flashcard.Difficulty.DueDate
			if due.After(now) && (stats.NextDue == nil || due.Before(*stats.NextDue)) {
				stats.NextDue = &due
			}
		}
	}
	return documents
}

func levelBucket(level int) int {
	bucket := 0
	for i, lower := range LevelBuckets {
		if level >= lower {
			bucket = i
		}
	}
	return bucket
}

// Total adds up the documents.
func Total(documents []DocumentStatistics) DocumentStatistics {
	total := DocumentStatistics{Levels: make([]int, len(LevelBuckets))}
	for _, document := range documents {
		total.Cards += document.Cards
		total.DueCards += document.DueCards
		total.Flashcards += document.Flashcards
		total.DueFlashcards += document.DueFlashcards
		total.Unscheduled += document.Unscheduled
		for i, count := range document.Levels {
			total.Levels[i] += count
		}
		if document.NextDue != nil && (total.NextDue == nil || document.NextDue.Before(*total.NextDue)) {
			total.NextDue = document.NextDue
		}
	}
	return total
}

// SortByDue orders documents by due flashcards, most first, then by path.
func SortByDue(documents []DocumentStatistics) {
	sort.SliceStable(documents, func(i, j int) bool {
		if documents[i].DueFlashcards != documents[j].DueFlashcards {
			return documents[i].DueFlashcards > documents[j].DueFlashcards
		}
		return documents[i].Path < documents[j].Path
	})
}

// SortByPath orders documents by path.
func SortByPath(documents []DocumentStatistics) {
	sort.SliceStable(documents, func(i, j int) bool {
		return documents[i].Path < documents[j].Path
	})
}
