package notebook

import (
	"fmt"
	"strings"
	"time"
)

// Card is the quiz material of one term/definition line.
type Card struct {
	// Term and Definition are the raw sides of the line, trimmed.
	Term        string
	Definition  string
	DoubleSided bool
	// Line is the exact line the card was read from, used to locate it when writing back.
	Line string

	Flashcards []Flashcard
}

// NewCard derives the flashcards of a line.
// The result depends only on the arguments, so flashcards keep their order and keys across scans.
func NewCard(term, definition string, doubleSided bool) *Card {
	card := &Card{
		Term:        strings.TrimSpace(term),
		Definition:  strings.TrimSpace(definition),
		DoubleSided: doubleSided,
	}
	card.Flashcards = deriveFlashcards(ParseTerms(term), SplitAlternatives(definition), doubleSided)
	return card
}

func deriveFlashcards(terms []Term, definitions []string, doubleSided bool) []Flashcard {
	var flashcards []Flashcard
	indexes := make(map[FlashcardType]int)
	add := func(front, back string, flashcardType FlashcardType) {
		flashcards = append(flashcards, Flashcard{
			Front: front,
			Back:  back,
			Type:  flashcardType,
			Index: indexes[flashcardType],
		})
		indexes[flashcardType]++
	}

	joinedDefinitions := strings.Join(definitions, alternativeSeparator)

	var plainTerms []string
	var kanji []string
	readingsByKanji := make(map[string][]string)
	var readings []string
	for _, term := range terms {
		if term.Furigana == nil {
			plainTerms = appendUnique(plainTerms, term.Text)
			continue
		}
		base := term.Furigana.Base
		kanji = appendUnique(kanji, base)
		readingsByKanji[base] = appendUnique(readingsByKanji[base], term.Furigana.Reading())
		readings = appendUnique(readings, term.Furigana.Reading())
	}

	for _, term := range plainTerms {
		add(term, joinedDefinitions, FlashcardTypeTerm)
	}
	for _, base := range kanji {
		add(
			fmt.Sprintf("%s (%s)", base, pluralize("definition", len(definitions))),
			joinedDefinitions,
			FlashcardTypeKanjiDefinition,
		)
		kanjiReadings := readingsByKanji[base]
		add(
			fmt.Sprintf("%s (%s)", base, pluralize("reading", len(kanjiReadings))),
			strings.Join(kanjiReadings, alternativeSeparator),
			FlashcardTypeKanjiReading,
		)
	}

	if !doubleSided {
		return flashcards
	}

	joinedTerms := joinDisplays(terms)
	for _, definition := range definitions {
		add(definition, joinedTerms, FlashcardTypeDefinition)
	}
	for _, reading := range readings {
		add(reading, fmt.Sprintf("%s (%s)", joinedTerms, joinedDefinitions), FlashcardTypeReading)
	}
	return flashcards
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}

func pluralize(noun string, count int) string {
	if count > 1 {
		return noun + "s"
	}
	return noun
}

// Flashcard returns the flashcard with the given key, or nil.
func (c *Card) Flashcard(key FlashcardKey) *Flashcard {
	for i := range c.Flashcards {
		if c.Flashcards[i].Key() == key {
			return &c.Flashcards[i]
		}
	}
	return nil
}

// DueFlashcards returns the flashcards due at now, in derivation order.
func (c *Card) DueFlashcards(now time.Time) []*Flashcard {
	var due []*Flashcard
	for i := range c.Flashcards {
		if c.Flashcards[i].IsDue(now) {
			due = append(due, &c.Flashcards[i])
		}
	}
	return due
}

// IsDue reports whether at least half of the card's flashcards are due.
func (c *Card) IsDue(now time.Time) bool {
	return len(c.DueFlashcards(now))*2 >= len(c.Flashcards)
}

// Separator is the divider written between the term and definition sides.
func (c *Card) Separator() string {
	if c.DoubleSided {
		return "::"
	}
	return ":"
}

func (c *Card) String() string {
	return c.Term + c.Separator() + c.Definition
}
