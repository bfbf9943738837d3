package notebook

import (
	"regexp"
	"strings"
)

// furiganaPattern matches a ruby span such as {漢字|かん|じ}.
// The base accepts CJK ideographs, bopomofo, kana, the prolonged sound mark and 〇.
// Readings exclude ASCII space and punctuation, which also keeps '|' and '}' out of them.
var furiganaPattern = regexp.MustCompile(
	"\\{([\\x{4E00}-\\x{9FFF}\\x{3105}-\\x{3129}\\x{3041}-\\x{3093}\\x{30A1}-\\x{30F3}ー〇]+)" +
		"((?:\\|[^ -/{-~:-@\\[-`]+)+)\\}",
)

// Furigana is a term with at least one ruby span.
type Furigana struct {
	// Base is the term with every span replaced by its base characters.
	Base string
	// Readings holds the reading fragments of every span in order of appearance.
	Readings []string

	text string
}

// ParseFurigana returns nil when the term has no well-formed ruby span.
func ParseFurigana(term string) *Furigana {
	base := furiganaPattern.ReplaceAllString(term, "$1")
	reading := furiganaPattern.ReplaceAllStringFunc(term, func(span string) string {
		return strings.Join(spanReadings(span), "")
	})
	if base == reading {
		return nil
	}

	var readings []string
	for _, span := range furiganaPattern.FindAllString(term, -1) {
		readings = append(readings, spanReadings(span)...)
	}
	return &Furigana{
		Base:     base,
		Readings: readings,
		text:     reading,
	}
}

func spanReadings(span string) []string {
	match := furiganaPattern.FindStringSubmatch(span)
	if match == nil {
		return nil
	}
	return strings.Split(match[2], "|")[1:]
}

// Reading is the term as it is read aloud: each span replaced by the concatenation of its readings.
func (f Furigana) Reading() string {
	return f.text
}
