package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/recurrence/internal/annotation"
	"github.com/at-ishikawa/recurrence/internal/document"
	"github.com/at-ishikawa/recurrence/internal/review"
)

func TestCalculateDeckStatistics(t *testing.T) {
	codec, err := annotation.NewCodec(annotation.EncodingTagged, time.UTC)
	require.NoError(t, err)
	loader := review.NewLoader(document.NewFileStore(), codec)

	cards := append(
		loader.Parse("b.md", "dog::犬 %%sr2025-01-054%% %%srd2025-01-010%%\ncat:猫\nbird:鳥 %%sr2025-03-01150%%"),
		loader.Parse("a.md", "fish:魚 %%sr2025-01-3012%%")...,
	)
	now := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)

	got := CalculateDeckStatistics(cards, now)
	require.Len(t, got, 2)

	assert.Equal(t, DocumentStatistics{
		Path:          "b.md",
		Cards:         3,
		DueCards:      2,
		Flashcards:    4,
		DueFlashcards: 2,
		Unscheduled:   1,
		Levels:        []int{1, 1, 0, 1, 0},
		NextDue:       date(2025, 1, 5),
	}, got[0])
	assert.Equal(t, "a.md", got[1].Path)
	assert.Equal(t, []int{0, 0, 1, 0, 0}, got[1].Levels)

	total := Total(got)
	assert.Equal(t, 4, total.Cards)
	assert.Equal(t, 2, total.DueFlashcards)
	assert.Equal(t, []int{1, 1, 1, 1, 0}, total.Levels)
	assert.Equal(t, date(2025, 1, 5), total.NextDue)

	SortByPath(got)
	assert.Equal(t, "a.md", got[0].Path)
	SortByDue(got)
	assert.Equal(t, "b.md", got[0].Path)
}

func TestLevelBucket(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{level: 0, want: 0},
		{level: 1, want: 1},
		{level: 9, want: 1},
		{level: 10, want: 2},
		{level: 999, want: 3},
		{level: 1000, want: 4},
		{level: 150000, want: 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levelBucket(tt.level), "level %d", tt.level)
	}
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
