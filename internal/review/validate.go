package review

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/recurrence/internal/notebook"
	"github.com/at-ishikawa/recurrence/internal/scanner"
)

// ValidationError is a problem found on one line of a document
type ValidationError struct {
	File        string
	Line        int
	Message     string
	Severity    string // "error" or "warning"
	Suggestions []string
}

func (e ValidationError) Error() string {
	msg := fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" [Suggestion: %s]", strings.Join(e.Suggestions, "; "))
	}
	return msg
}

// ValidationResult contains the problems of every document, errors first
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) AddError(err ValidationError) {
	err.Severity = "error"
	r.Errors = append(r.Errors, err)
}

func (r *ValidationResult) AddWarning(err ValidationError) {
	err.Severity = "warning"
	r.Warnings = append(r.Warnings, err)
}

// Validate reports review state that would be lost or misplaced by the next review.
func (l *Loader) Validate(paths []string) (*ValidationResult, error) {
	result := &ValidationResult{}
	for _, path := range paths {
		text, err := l.store.Read(path)
		if err != nil {
			return nil, fmt.Errorf("store.Read(%s) > %w", path, err)
		}
		l.validateDocument(path, text, result)
	}
	return result, nil
}

func (l *Loader) validateDocument(path, text string, result *ValidationResult) {
	seen := make(map[string]int)
	for _, candidate := range scanner.Scan(text) {
		card := notebook.NewCard(candidate.Term, candidate.Definition, candidate.DoubleSided)
		if len(card.Flashcards) == 0 {
			if len(candidate.Annotations) > 0 {
				result.AddError(ValidationError{
					File:    path,
					Line:    candidate.LineNumber,
					Message: "review state on a line without flashcards",
				})
			}
			continue
		}

		decoded := l.codec.Decode(card, candidate.AnnotationTexts())
		if decoded.Dropped > 0 {
			result.AddError(ValidationError{
				File:        path,
				Line:        candidate.LineNumber,
				Message:     fmt.Sprintf("%d review tokens match no flashcard and are removed by the next review", decoded.Dropped),
				Suggestions: []string{"check whether the term or definition was edited"},
			})
		}
		if decoded.Compact {
			result.AddWarning(ValidationError{
				File:        path,
				Line:        candidate.LineNumber,
				Message:     "review state uses the compact encoding",
				Suggestions: []string{"run `recurrence migrate annotations`"},
			})
		}

		if first, ok := seen[candidate.Line]; ok {
			result.AddWarning(ValidationError{
				File:    path,
				Line:    candidate.LineNumber,
				Message: fmt.Sprintf("same line as line %d; reviews only update the first one", first),
			})
			continue
		}
		seen[candidate.Line] = candidate.LineNumber
	}
}
