package annotation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/recurrence/internal/notebook"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func newTestCodec(t *testing.T, encoding Encoding) *Codec {
	t.Helper()
	codec, err := NewCodec(encoding, time.UTC)
	require.NoError(t, err)
	return codec
}

func TestNewCodec(t *testing.T) {
	_, err := NewCodec(Encoding("binary"), time.UTC)
	assert.Error(t, err)

	codec, err := NewCodec(EncodingTagged, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, codec.location)
}

func TestCodec_RoundTrip(t *testing.T) {
	states := []notebook.Difficulty{
		{DueDate: date(2025, 1, 3), Level: 0},
		{DueDate: date(2025, 12, 31), Level: 1},
		{DueDate: date(2026, 1, 1), Level: 4},
		{DueDate: date(2024, 2, 29), Level: 10},
		{DueDate: date(2025, 1, 1), Level: 67818},
		{DueDate: date(2025, 12, 31), Level: 12345},
		{DueDate: date(2025, 12, 31), Level: 150000},
	}

	for _, encoding := range []Encoding{EncodingTagged, EncodingCompact} {
		t.Run(string(encoding), func(t *testing.T) {
			codec := newTestCodec(t, encoding)
			for _, state := range states {
				card := notebook.NewCard("{犬|いぬ}/dog", "犬/hound", true)
				// schedule every other flashcard so that unscheduled ones sit in between
				for i := range card.Flashcards {
					if i%2 == 1 {
						card.Flashcards[i].Difficulty = state
					}
				}

				fragment, err := codec.Encode(card)
				require.NoError(t, err)

				decoded := notebook.NewCard("{犬|いぬ}/dog", "犬/hound", true)
				result := codec.Decode(decoded, splitFragments(fragment))
				assert.Zero(t, result.Dropped)
				assert.Equal(t, encoding == EncodingCompact, result.Compact)
				assert.Equal(t, card.Flashcards, decoded.Flashcards, "state %+v level %d", state.DueDate, state.Level)
			}
		})
	}
}

// splitFragments stands in for the line scanner in these tests.
func splitFragments(annotation string) []string {
	if annotation == "" {
		return nil
	}
	if strings.HasPrefix(annotation, compactPrefix) || strings.HasPrefix(annotation, wrapper+compactPrefix) {
		return []string{annotation}
	}
	return strings.Split(annotation, " ")
}

func TestCodec_Encode_Tagged(t *testing.T) {
	card := notebook.NewCard("{犬|いぬ}/inu", "dog/hound", true)
	card.Flashcard(notebook.FlashcardKey{Type: notebook.FlashcardTypeTerm}).Difficulty =
		notebook.Difficulty{DueDate: date(2025, 1, 3), Level: 4}
	card.Flashcard(notebook.FlashcardKey{Type: notebook.FlashcardTypeKanjiReading}).Difficulty =
		notebook.Difficulty{DueDate: date(2025, 11, 20), Level: 0}
	card.Flashcard(notebook.FlashcardKey{Type: notebook.FlashcardTypeDefinition, Index: 1}).Difficulty =
		notebook.Difficulty{DueDate: date(2026, 2, 1), Level: 12}

	got, err := newTestCodec(t, EncodingTagged).Encode(card)
	require.NoError(t, err)
	assert.Equal(t, "%%sr2025-01-034%% %%srkr2025-11-200%% %%srd12026-02-0112%%", got)
}

func TestCodec_Encode_Unscheduled(t *testing.T) {
	for _, encoding := range []Encoding{EncodingTagged, EncodingCompact} {
		got, err := newTestCodec(t, encoding).Encode(notebook.NewCard("dog", "犬", false))
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestCodec_Encode_CompactPlaceholders(t *testing.T) {
	card := notebook.NewCard("dog/hound/cur", "犬", false)
	card.Flashcards[1].Difficulty = notebook.Difficulty{DueDate: date(2025, 1, 3), Level: 3}

	got, err := newTestCodec(t, EncodingCompact).Encode(card)
	require.NoError(t, err)
	assert.Equal(t, "%%sr - \u0c11\ueba9%%", got)
}

func TestCodec_Encode_CompactUnrepresentable(t *testing.T) {
	card := notebook.NewCard("dog", "犬", false)
	card.Flashcards[0].Difficulty = notebook.Difficulty{DueDate: date(2025, 1, 1), Level: 57568}

	_, err := newTestCodec(t, EncodingCompact).Encode(card)
	assert.ErrorIs(t, err, ErrUnrepresentable)
}

func TestCodec_Decode_Tagged(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      map[notebook.FlashcardKey]notebook.Difficulty
		dropped   int
	}{
		{
			name:      "one wrapper per token",
			fragments: []string{"%%sr2025-01-034%%", "%%srd12026-02-0112%%"},
			want: map[notebook.FlashcardKey]notebook.Difficulty{
				{Type: notebook.FlashcardTypeTerm}:                 {DueDate: date(2025, 1, 3), Level: 4},
				{Type: notebook.FlashcardTypeDefinition, Index: 1}: {DueDate: date(2026, 2, 1), Level: 12},
			},
		},
		{
			name:      "several tokens in one wrapper",
			fragments: []string{"%%srkd2025-03-017 srkr2025-03-022%%"},
			want: map[notebook.FlashcardKey]notebook.Difficulty{
				{Type: notebook.FlashcardTypeKanjiDefinition}: {DueDate: date(2025, 3, 1), Level: 7},
				{Type: notebook.FlashcardTypeKanjiReading}:    {DueDate: date(2025, 3, 2), Level: 2},
			},
		},
		{
			name:      "token for a flashcard that no longer exists",
			fragments: []string{"%%srr52025-01-034%%"},
			want:      map[notebook.FlashcardKey]notebook.Difficulty{},
			dropped:   1,
		},
		{
			name:      "impossible date",
			fragments: []string{"%%sr2025-02-304%%"},
			want:      map[notebook.FlashcardKey]notebook.Difficulty{},
			dropped:   1,
		},
		{
			name:      "malformed token",
			fragments: []string{"%%srx2025-01-034%%", "%%sr2025-1-34%%"},
			want:      map[notebook.FlashcardKey]notebook.Difficulty{},
			dropped:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := notebook.NewCard("{犬|いぬ}/inu", "dog/hound", true)
			result := newTestCodec(t, EncodingTagged).Decode(card, tt.fragments)

			assert.Equal(t, len(tt.want), result.Attached)
			assert.Equal(t, tt.dropped, result.Dropped)
			assert.False(t, result.Compact)
			for _, flashcard := range card.Flashcards {
				want, ok := tt.want[flashcard.Key()]
				if !ok {
					assert.False(t, flashcard.Difficulty.IsScheduled(), flashcard.Key().String())
					continue
				}
				assert.Equal(t, want, flashcard.Difficulty, flashcard.Key().String())
			}
		})
	}
}

func TestCodec_Decode_CompactIsPositional(t *testing.T) {
	card := notebook.NewCard("dog/hound/cur", "犬", false)
	result := newTestCodec(t, EncodingTagged).Decode(card, []string{"%%sr - \u0c11\ueba9 \u0c11\ueba9 \u0c11\ueba9%%"})

	assert.True(t, result.Compact)
	assert.Equal(t, 2, result.Attached)
	assert.Equal(t, 1, result.Dropped)
	assert.False(t, card.Flashcards[0].Difficulty.IsScheduled())
	assert.Equal(t, notebook.Difficulty{DueDate: date(2025, 1, 3), Level: 3}, card.Flashcards[1].Difficulty)
	assert.Equal(t, notebook.Difficulty{DueDate: date(2025, 1, 3), Level: 3}, card.Flashcards[2].Difficulty)
}

func TestDecodeTaggedToken_Index(t *testing.T) {
	entry, ok := DecodeTaggedToken("sr102024-01-0110", time.UTC)
	require.True(t, ok)
	assert.Equal(t, notebook.FlashcardKey{Type: notebook.FlashcardTypeTerm, Index: 10}, entry.Key)
	assert.Equal(t, 10, entry.Difficulty.Level)
	assert.Equal(t, date(2024, 1, 1), entry.Difficulty.DueDate)
}

func TestCompactToken_Escaping(t *testing.T) {
	tests := []struct {
		name       string
		difficulty notebook.Difficulty
		want       string
	}{
		{
			name:       "line feed digit",
			difficulty: notebook.Difficulty{DueDate: date(2025, 1, 1), Level: 67818},
			want:       "\u01d7\u7c03\\n",
		},
		{
			name:       "line feed digit on another day",
			difficulty: notebook.Difficulty{DueDate: date(2025, 1, 3), Level: 64426},
			want:       "\u01d7\u7c06\\n",
		},
		{
			name:       "carriage return digit",
			difficulty: notebook.Difficulty{DueDate: date(2025, 1, 3), Level: 64429},
			want:       "\u01d7\u7c06\\r",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := EncodeCompactToken(tt.difficulty, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
			assert.NotContains(t, token, "\n")
			assert.NotContains(t, token, "\r")

			got, ok := DecodeCompactToken(token, time.UTC)
			require.True(t, ok)
			assert.Equal(t, tt.difficulty, got)
		})
	}
}

func TestDecodeCompactToken_Invalid(t *testing.T) {
	for _, token := range []string{"", "-", "a", "\u0c11\u0001"} {
		_, ok := DecodeCompactToken(token, time.UTC)
		assert.False(t, ok, "%q", token)
	}
}

func TestSplitCompactTokens(t *testing.T) {
	assert.Equal(t, []string{"a", `b\ c`, `d\\`}, SplitCompactTokens(`a  b\ c d\\`))
}
