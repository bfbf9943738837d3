// Package review loads cards from notes and runs reviews over them.
package review

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/recurrence/internal/annotation"
	"github.com/at-ishikawa/recurrence/internal/document"
	"github.com/at-ishikawa/recurrence/internal/notebook"
	"github.com/at-ishikawa/recurrence/internal/scanner"
)

// Card is a notebook card together with where it was read from.
type Card struct {
	*notebook.Card

	Path       string
	LineNumber int
	// Annotations are the review-state spans of Line.
	Annotations []scanner.Annotation
	// ContentEnd is where the live part of Line stops; review state goes before it.
	ContentEnd int
	// Compact is true when the line still carries compact tokens.
	Compact bool
}

// encodedLine is a rewritten line with the positions the scanner would report for it.
type encodedLine struct {
	line        string
	annotations []scanner.Annotation
	contentEnd  int
}

// Rewrite returns Line with its annotations replaced by the card's current state.
func (c *Card) Rewrite(codec *annotation.Codec) (string, error) {
	encoded, err := c.rewrite(codec)
	return encoded.line, err
}

// rewrite replaces the annotations before ContentEnd and keeps the rest of the line,
// such as a comment that continues on the next line, after the new annotation.
func (c *Card) rewrite(codec *annotation.Codec) (encodedLine, error) {
	contentEnd := c.ContentEnd
	if contentEnd <= 0 || contentEnd > len(c.Line) {
		contentEnd = len(c.Line)
	}
	head := scanner.RemoveAnnotations(c.Line[:contentEnd], c.Annotations)
	tail := strings.TrimLeft(c.Line[contentEnd:], " \t")

	fragment, err := codec.Encode(c.Card)
	if err != nil {
		return encodedLine{}, fmt.Errorf("codec.Encode() > %w", err)
	}

	encoded := encodedLine{line: head}
	if fragment != "" {
		offset := len(head) + 1
		encoded.annotations = scanner.FindAnnotations(fragment)
		for i := range encoded.annotations {
			encoded.annotations[i].Start += offset
			encoded.annotations[i].End += offset
		}
		encoded.line += " " + fragment
	}
	encoded.contentEnd = len(encoded.line)
	if tail != "" {
		encoded.contentEnd++
		encoded.line += " " + tail
	}
	return encoded, nil
}

// clone copies the review state so that it can be changed without touching c.
func (c *Card) clone() *Card {
	copied := *c
	inner := *c.Card
	inner.Flashcards = append([]notebook.Flashcard(nil), c.Flashcards...)
	copied.Card = &inner
	return &copied
}

// Name is the document name shown to the reviewer.
func (c *Card) Name() string {
	name := c.Path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".md")
}

const loadConcurrency = 8

// Loader reads cards from documents.
type Loader struct {
	store document.Store
	codec *annotation.Codec
}

func NewLoader(store document.Store, codec *annotation.Codec) *Loader {
	return &Loader{
		store: store,
		codec: codec,
	}
}

// Parse derives the cards of a document and attaches their stored state.
func (l *Loader) Parse(path, text string) []*Card {
	var cards []*Card
	for _, candidate := range scanner.Scan(text) {
		card := notebook.NewCard(candidate.Term, candidate.Definition, candidate.DoubleSided)
		if len(card.Flashcards) == 0 {
			continue
		}
		card.Line = candidate.Line

		result := l.codec.Decode(card, candidate.AnnotationTexts())
		if result.Dropped > 0 {
			slog.Default().Debug("dropped review state",
				slog.String("path", path),
				slog.Int("line", candidate.LineNumber),
				slog.Int("dropped", result.Dropped),
			)
		}
		cards = append(cards, &Card{
			Card:        card,
			Path:        path,
			LineNumber:  candidate.LineNumber,
			Annotations: candidate.Annotations,
			ContentEnd:  candidate.ContentEnd,
			Compact:     result.Compact,
		})
	}
	return cards
}

// LoadDocument reads and parses one document.
func (l *Loader) LoadDocument(path string) ([]*Card, error) {
	text, err := l.store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("store.Read(%s) > %w", path, err)
	}
	return l.Parse(path, text), nil
}

// Load reads the documents concurrently and returns their cards in the order of paths.
func (l *Loader) Load(paths []string) ([]*Card, error) {
	results := make([][]*Card, len(paths))
	var group errgroup.Group
	group.SetLimit(loadConcurrency)
	for i, path := range paths {
		group.Go(func() error {
			cards, err := l.LoadDocument(path)
			if err != nil {
				return err
			}
			results[i] = cards
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var cards []*Card
	for _, documentCards := range results {
		cards = append(cards, documentCards...)
	}
	return cards, nil
}

// DueCards returns the cards due at now.
func DueCards(cards []*Card, now time.Time) []*Card {
	var due []*Card
	for _, card := range cards {
		if card.IsDue(now) {
			due = append(due, card)
		}
	}
	return due
}
