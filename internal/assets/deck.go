package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/at-ishikawa/recurrence/internal/review"
)

const deckTemplateName = "deck.md.go.tmpl"

//go:embed templates/deck.md.go.tmpl
var fallbackDeckTemplate string

// DeckTemplate is the top-level data structure for printable deck templates
type DeckTemplate struct {
	Title     string
	Date      time.Time
	Count     int
	Documents []DeckDocument
}

// DeckDocument holds the flashcards of one note
type DeckDocument struct {
	Name       string
	Flashcards []DeckFlashcard
}

// DeckFlashcard is one flashcard for template rendering
type DeckFlashcard struct {
	Type  string
	Front string
	Back  string
	Due   string
	Level int
}

// NewDeckTemplate collects the flashcards of cards, or only the due ones of due cards when dueOnly is set.
func NewDeckTemplate(title string, cards []*review.Card, now time.Time, dueOnly bool) DeckTemplate {
	data := DeckTemplate{
		Title: title,
		Date:  now,
	}
	indexes := make(map[string]int)
	for _, card := range cards {
		if dueOnly && !card.IsDue(now) {
			continue
		}
		index, ok := indexes[card.Path]
		if !ok {
			index = len(data.Documents)
			indexes[card.Path] = index
			data.Documents = append(data.Documents, DeckDocument{Name: card.Name()})
		}

		for _, flashcard := range card.Flashcards {
			if dueOnly && !flashcard.IsDue(now) {
				continue
			}
			item := DeckFlashcard{
				Type:  string(flashcard.Type),
				Front: flashcard.Front,
				Back:  flashcard.Back,
				Level: flashcard.Difficulty.Level,
			}
			if flashcard.Difficulty.IsScheduled() {
				item.Due = flashcard.Difficulty.DueDate.Format("2006-01-02")
			}
			data.Documents[index].Flashcards = append(data.Documents[index].Flashcards, item)
			data.Count++
		}
	}
	return data
}

func ParseDeckTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, deckTemplateName, fallbackDeckTemplate)
}

func WriteDeck(output io.Writer, templatePath string, templateData DeckTemplate) error {
	tmpl, err := ParseDeckTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseDeckTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// WriteDeckHTML renders the deck markdown and converts it to an HTML fragment.
func WriteDeckHTML(output io.Writer, templatePath string, templateData DeckTemplate) error {
	var markdown bytes.Buffer
	if err := WriteDeck(&markdown, templatePath, templateData); err != nil {
		return err
	}

	converter := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := converter.Convert(markdown.Bytes(), output); err != nil {
		return fmt.Errorf("converter.Convert() > %w", err)
	}
	return nil
}
