package annotation

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/at-ishikawa/recurrence/internal/notebook"
)

const (
	compactBase = 1 << 16
	// compactPlaceholder stands for a flashcard without state. A single code unit is
	// below 10^8 and therefore never a valid date.
	compactPlaceholder = "-"
	compactSeparator   = ' '
	compactEscape      = '\\'
)

// ErrUnrepresentable is returned when a compact token would contain an unpaired surrogate,
// which cannot be stored in UTF-8 text.
var ErrUnrepresentable = errors.New("state cannot be represented in the compact encoding")

// compactEscaped are the code units written with a preceding backslash.
// The space is escaped as well because it separates tokens.
var compactEscaped = map[uint16]bool{
	'%':  true,
	'\\': true,
	'`':  true,
	'[':  true,
	']':  true,
	'\n': true,
	'\r': true,
	' ':  true,
}

// Line breaks are escaped as letters so a token never splits its line.
var (
	compactEscapeLetters = map[rune]rune{'\n': 'n', '\r': 'r'}
	compactEscapedBreaks = map[uint16]uint16{'n': '\n', 'r': '\r'}
)

// EncodeCompactToken encodes YYYYMMDD<level> as a base-65536 numeral of UTF-16 code units.
func EncodeCompactToken(difficulty notebook.Difficulty, location *time.Location) (string, error) {
	year, month, day := difficulty.DueDate.In(location).Date()
	decimal := fmt.Sprintf("%04d%02d%02d%d", year, int(month), day, difficulty.Level)
	value, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return "", fmt.Errorf("big.Int.SetString(%s) failed", decimal)
	}

	var units []uint16
	base := big.NewInt(compactBase)
	digit := new(big.Int)
	for value.Sign() > 0 {
		value.DivMod(value, base, digit)
		units = append([]uint16{uint16(digit.Uint64())}, units...)
	}
	if hasUnpairedSurrogate(units) {
		return "", fmt.Errorf("%w: %s", ErrUnrepresentable, decimal)
	}

	var builder strings.Builder
	for _, r := range utf16.Decode(units) {
		if r < compactBase && compactEscaped[uint16(r)] {
			builder.WriteRune(compactEscape)
			if letter, ok := compactEscapeLetters[r]; ok {
				r = letter
			}
		}
		builder.WriteRune(r)
	}
	return builder.String(), nil
}

func hasUnpairedSurrogate(units []uint16) bool {
	for i := 0; i < len(units); i++ {
		switch {
		case units[i] >= 0xD800 && units[i] < 0xDC00:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return true
			}
			i++
		case units[i] >= 0xDC00 && units[i] <= 0xDFFF:
			return true
		}
	}
	return false
}

// DecodeCompactToken reverses EncodeCompactToken. ok is false for placeholders and
// for tokens that do not regroup into a valid date and level.
func DecodeCompactToken(token string, location *time.Location) (difficulty notebook.Difficulty, ok bool) {
	if token == "" || token == compactPlaceholder {
		return notebook.Difficulty{}, false
	}

	value := new(big.Int)
	base := big.NewInt(compactBase)
	escaped := false
	for _, unit := range utf16.Encode([]rune(token)) {
		if unit == compactEscape && !escaped {
			escaped = true
			continue
		}
		if lineBreak, isBreak := compactEscapedBreaks[unit]; isBreak && escaped {
			unit = lineBreak
		}
		escaped = false
		value.Mul(value, base)
		value.Add(value, big.NewInt(int64(unit)))
	}

	decimal := value.String()
	if len(decimal) < 9 {
		return notebook.Difficulty{}, false
	}
	year, _ := strconv.Atoi(decimal[0:4])
	month, _ := strconv.Atoi(decimal[4:6])
	day, _ := strconv.Atoi(decimal[6:8])
	level, err := strconv.Atoi(decimal[8:])
	if err != nil {
		return notebook.Difficulty{}, false
	}
	dueDate, ok := civilDate(year, month, day, location)
	if !ok {
		return notebook.Difficulty{}, false
	}
	return notebook.Difficulty{DueDate: &dueDate, Level: level}, true
}

// SplitCompactTokens splits on unescaped spaces, keeping escapes in the tokens.
func SplitCompactTokens(content string) []string {
	var tokens []string
	var current strings.Builder
	escaped := false
	for _, r := range content {
		switch {
		case escaped:
			escaped = false
		case r == compactEscape:
			escaped = true
		case r == compactSeparator:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
