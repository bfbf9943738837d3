package notebook

import "strings"

const (
	alternativeSeparator = "/"
	escapedSeparator     = `\/`
	escapedColon         = `\:`

	// escapeSentinel cannot appear in a line because lines never contain NUL.
	escapeSentinel = "\x00"
)

// Term is one alternative on the term side of a line.
type Term struct {
	// Text is the alternative as written, after unescaping.
	Text     string
	Furigana *Furigana
}

// Display is the text used on cards that do not quiz the reading.
func (t Term) Display() string {
	if t.Furigana != nil {
		return t.Furigana.Base
	}
	return t.Text
}

// SplitAlternatives splits a term or definition side on unescaped '/'.
// Escaped separators are restored as literal '/', and empty alternatives are dropped.
func SplitAlternatives(side string) []string {
	side = strings.ReplaceAll(side, escapedSeparator, escapeSentinel)

	var alternatives []string
	for _, part := range strings.Split(side, alternativeSeparator) {
		part = strings.ReplaceAll(part, escapeSentinel, alternativeSeparator)
		part = strings.ReplaceAll(part, escapedColon, ":")
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		alternatives = append(alternatives, part)
	}
	return alternatives
}

// ParseTerms splits the term side and attaches ruby annotations where present.
func ParseTerms(side string) []Term {
	alternatives := SplitAlternatives(side)
	terms := make([]Term, 0, len(alternatives))
	for _, alternative := range alternatives {
		terms = append(terms, Term{
			Text:     alternative,
			Furigana: ParseFurigana(alternative),
		})
	}
	return terms
}

func joinDisplays(terms []Term) string {
	displays := make([]string, 0, len(terms))
	for _, term := range terms {
		displays = append(displays, term.Display())
	}
	return strings.Join(displays, alternativeSeparator)
}
