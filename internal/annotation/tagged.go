package annotation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/recurrence/internal/notebook"
)

// taggedTokenPattern matches sr<type><index><YYYY>-<MM>-<DD><level>.
var taggedTokenPattern = regexp.MustCompile(`^sr(d|r|kd|kr|)(\d*?)(\d{4})-(\d{2})-(\d{2})(\d+)$`)

var (
	typeCodes = map[notebook.FlashcardType]string{
		notebook.FlashcardTypeTerm:            "",
		notebook.FlashcardTypeDefinition:      "d",
		notebook.FlashcardTypeReading:         "r",
		notebook.FlashcardTypeKanjiDefinition: "kd",
		notebook.FlashcardTypeKanjiReading:    "kr",
	}
	typesByCode = map[string]notebook.FlashcardType{
		"":   notebook.FlashcardTypeTerm,
		"d":  notebook.FlashcardTypeDefinition,
		"r":  notebook.FlashcardTypeReading,
		"kd": notebook.FlashcardTypeKanjiDefinition,
		"kr": notebook.FlashcardTypeKanjiReading,
	}
)

// TaggedEntry is the decoded form of one tagged token.
type TaggedEntry struct {
	Key        notebook.FlashcardKey
	Difficulty notebook.Difficulty
}

// EncodeTaggedToken formats the state of a scheduled flashcard, without the %% wrapper.
func EncodeTaggedToken(flashcard notebook.Flashcard, location *time.Location) string {
	var builder strings.Builder
	builder.WriteString(srPrefix)
	builder.WriteString(typeCodes[flashcard.Type])
	if flashcard.Index != 0 {
		builder.WriteString(strconv.Itoa(flashcard.Index))
	}
	year, month, day := flashcard.Difficulty.DueDate.In(location).Date()
	fmt.Fprintf(&builder, "%04d-%02d-%02d%d", year, int(month), day, flashcard.Difficulty.Level)
	return builder.String()
}

// DecodeTaggedToken parses one token. ok is false for anything that is not a valid token,
// including impossible calendar dates.
func DecodeTaggedToken(token string, location *time.Location) (entry TaggedEntry, ok bool) {
	match := taggedTokenPattern.FindStringSubmatch(token)
	if match == nil {
		return TaggedEntry{}, false
	}

	index := 0
	if match[2] != "" {
		var err error
		if index, err = strconv.Atoi(match[2]); err != nil {
			return TaggedEntry{}, false
		}
	}
	year, _ := strconv.Atoi(match[3])
	month, _ := strconv.Atoi(match[4])
	day, _ := strconv.Atoi(match[5])
	level, err := strconv.Atoi(match[6])
	if err != nil {
		return TaggedEntry{}, false
	}
	dueDate, ok := civilDate(year, month, day, location)
	if !ok {
		return TaggedEntry{}, false
	}

	return TaggedEntry{
		Key: notebook.FlashcardKey{
			Type:  typesByCode[match[1]],
			Index: index,
		},
		Difficulty: notebook.Difficulty{
			DueDate: &dueDate,
			Level:   level,
		},
	}, true
}

// civilDate rejects dates that time.Date would normalize, such as February 30th.
func civilDate(year, month, day int, location *time.Location) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, location)
	y, m, d := t.Date()
	if y != year || int(m) != month || d != day {
		return time.Time{}, false
	}
	return t, true
}
