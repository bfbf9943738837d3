package notebook

import (
	"fmt"
	"time"
)

// FlashcardType is the direction a flashcard quizzes.
type FlashcardType string

const (
	FlashcardTypeTerm            FlashcardType = "term"
	FlashcardTypeDefinition      FlashcardType = "definition"
	FlashcardTypeReading         FlashcardType = "reading"
	FlashcardTypeKanjiDefinition FlashcardType = "kanji (definition)"
	FlashcardTypeKanjiReading    FlashcardType = "kanji (reading)"
)

// FlashcardTypes lists every type in a fixed order.
var FlashcardTypes = []FlashcardType{
	FlashcardTypeTerm,
	FlashcardTypeDefinition,
	FlashcardTypeReading,
	FlashcardTypeKanjiDefinition,
	FlashcardTypeKanjiReading,
}

// FlashcardKey identifies a flashcard within its card.
type FlashcardKey struct {
	Type  FlashcardType
	Index int
}

func (k FlashcardKey) String() string {
	return fmt.Sprintf("%s#%d", k.Type, k.Index)
}

// Difficulty is the review state of a flashcard.
// A nil DueDate means the flashcard has never been reviewed.
type Difficulty struct {
	DueDate *time.Time
	Level   int
}

// IsScheduled reports whether the flashcard has been reviewed at least once.
func (d Difficulty) IsScheduled() bool {
	return d.DueDate != nil
}

// Flashcard is one direction of quizzing derived from a card.
type Flashcard struct {
	Front string
	Back  string
	Type  FlashcardType
	// Index disambiguates flashcards of the same type on one card.
	Index int

	Difficulty Difficulty
}

func (f Flashcard) Key() FlashcardKey {
	return FlashcardKey{Type: f.Type, Index: f.Index}
}

// IsDue reports whether the flashcard should be reviewed at now.
func (f Flashcard) IsDue(now time.Time) bool {
	if f.Difficulty.DueDate == nil {
		return true
	}
	return !now.Before(*f.Difficulty.DueDate)
}
