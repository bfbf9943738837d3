// Package annotation reads and writes the review state stored in %%sr…%% comments
// at the end of a term/definition line.
//
// Two encodings exist. The tagged encoding writes one token per scheduled flashcard,
// keyed by flashcard type and index:
//
//	dog::犬 %%sr2025-01-034%% %%srd2025-01-052%%
//
// The compact encoding is positional: the k-th token belongs to the k-th derived flashcard,
// and each token is YYYYMMDD<level> written as a base-65536 numeral:
//
//	%%sr <token> <token>%%
//
// Both are decoded. New state is written in the tagged encoding unless configured otherwise.
package annotation

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/recurrence/internal/notebook"
)

// Encoding names a way to write review state.
type Encoding string

const (
	EncodingTagged  Encoding = "tagged"
	EncodingCompact Encoding = "compact"
)

const (
	wrapper       = "%%"
	srPrefix      = "sr"
	compactPrefix = srPrefix + " "
)

// DecodeResult summarizes what a decode attached to a card.
type DecodeResult struct {
	Attached int
	Dropped  int
	// Compact is true when at least one fragment used the compact encoding.
	Compact bool
}

type Codec struct {
	encoding Encoding
	location *time.Location
}

// NewCodec creates a codec writing the given encoding. Dates are calendar days in location.
func NewCodec(encoding Encoding, location *time.Location) (*Codec, error) {
	switch encoding {
	case EncodingTagged, EncodingCompact:
	default:
		return nil, fmt.Errorf("unknown annotation encoding %q", encoding)
	}
	if location == nil {
		location = time.Local
	}
	return &Codec{
		encoding: encoding,
		location: location,
	}, nil
}

// Encoding is the scheme Encode writes.
func (c *Codec) Encoding() Encoding {
	return c.encoding
}

// Decode attaches the state stored in fragments to the card's flashcards.
// Tokens that are malformed or address no flashcard are dropped without error.
func (c *Codec) Decode(card *notebook.Card, fragments []string) DecodeResult {
	var result DecodeResult
	position := 0
	for _, fragment := range fragments {
		content := strings.TrimSuffix(strings.TrimPrefix(fragment, wrapper), wrapper)

		if strings.HasPrefix(content, compactPrefix) {
			result.Compact = true
			for _, token := range SplitCompactTokens(content[len(compactPrefix):]) {
				current := position
				position++
				if token == compactPlaceholder {
					continue
				}
				difficulty, ok := DecodeCompactToken(token, c.location)
				if !ok || current >= len(card.Flashcards) {
					c.drop(card, token)
					result.Dropped++
					continue
				}
				card.Flashcards[current].Difficulty = difficulty
				result.Attached++
			}
			continue
		}

		for _, token := range strings.Fields(content) {
			entry, ok := DecodeTaggedToken(token, c.location)
			if !ok {
				c.drop(card, token)
				result.Dropped++
				continue
			}
			flashcard := card.Flashcard(entry.Key)
			if flashcard == nil {
				c.drop(card, token)
				result.Dropped++
				continue
			}
			flashcard.Difficulty = entry.Difficulty
			result.Attached++
		}
	}
	return result
}

func (c *Codec) drop(card *notebook.Card, token string) {
	slog.Default().Debug("dropped an annotation token",
		slog.String("card", card.String()),
		slog.String("token", token),
	)
}

// Encode returns the annotation for every scheduled flashcard of the card,
// or an empty string when none is scheduled.
func (c *Codec) Encode(card *notebook.Card) (string, error) {
	if c.encoding == EncodingCompact {
		return c.encodeCompact(card)
	}

	var fragments []string
	for _, flashcard := range card.Flashcards {
		if !flashcard.Difficulty.IsScheduled() {
			continue
		}
		fragments = append(fragments, wrapper+EncodeTaggedToken(flashcard, c.location)+wrapper)
	}
	return strings.Join(fragments, " "), nil
}

func (c *Codec) encodeCompact(card *notebook.Card) (string, error) {
	last := -1
	for i, flashcard := range card.Flashcards {
		if flashcard.Difficulty.IsScheduled() {
			last = i
		}
	}
	if last < 0 {
		return "", nil
	}

	tokens := make([]string, 0, last+1)
	for _, flashcard := range card.Flashcards[:last+1] {
		if !flashcard.Difficulty.IsScheduled() {
			tokens = append(tokens, compactPlaceholder)
			continue
		}
		token, err := EncodeCompactToken(flashcard.Difficulty, c.location)
		if err != nil {
			return "", fmt.Errorf("EncodeCompactToken(%s) > %w", flashcard.Key(), err)
		}
		tokens = append(tokens, token)
	}
	return wrapper + compactPrefix + strings.Join(tokens, " ") + wrapper, nil
}
