package notebook

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRandom float64

func (r fixedRandom) Float64() float64 {
	return float64(r)
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestScheduler_Mark(t *testing.T) {
	now := time.Date(2025, 12, 30, 21, 15, 0, 0, time.UTC)

	tests := []struct {
		name       string
		policy     Policy
		random     fixedRandom
		difficulty Difficulty
		answer     Answer
		want       Difficulty
	}{
		{
			name:   "classic: first easy answer starts from level 1",
			policy: ClassicPolicy,
			random: 0.5,
			answer: AnswerEasy,
			want:   Difficulty{Level: 4, DueDate: date(2026, 1, 3)},
		},
		{
			name:       "classic: medium adds 2",
			policy:     ClassicPolicy,
			random:     0.5,
			difficulty: Difficulty{Level: 5, DueDate: date(2025, 12, 1)},
			answer:     AnswerMedium,
			want:       Difficulty{Level: 7, DueDate: date(2026, 1, 6)},
		},
		{
			name:       "classic: hard adds 1 with the lowest fuzz",
			policy:     ClassicPolicy,
			random:     0,
			difficulty: Difficulty{Level: 7, DueDate: date(2025, 12, 1)},
			answer:     AnswerHard,
			// 8 - 8*0.25 = 6
			want: Difficulty{Level: 8, DueDate: date(2026, 1, 5)},
		},
		{
			name:       "classic: highest fuzz",
			policy:     ClassicPolicy,
			random:     1,
			difficulty: Difficulty{Level: 9, DueDate: date(2025, 12, 1)},
			answer:     AnswerEasy,
			// 12 + 12*0.25 = 15
			want: Difficulty{Level: 12, DueDate: date(2026, 1, 14)},
		},
		{
			name:       "classic: wrong resets level and is due today",
			policy:     ClassicPolicy,
			random:     0.5,
			difficulty: Difficulty{Level: 40, DueDate: date(2025, 12, 1)},
			answer:     AnswerWrong,
			want:       Difficulty{Level: 0, DueDate: date(2025, 12, 30)},
		},
		{
			name:   "accelerated: first easy answer starts from level 0",
			policy: AcceleratedPolicy,
			random: 0.5,
			answer: AnswerEasy,
			want:   Difficulty{Level: 7, DueDate: date(2026, 1, 6)},
		},
		{
			name:       "accelerated: medium multiplies",
			policy:     AcceleratedPolicy,
			random:     0.5,
			difficulty: Difficulty{Level: 7, DueDate: date(2025, 12, 1)},
			answer:     AnswerMedium,
			want:       Difficulty{Level: 24, DueDate: date(2026, 1, 23)},
		},
		{
			name:       "accelerated: wrong halves the level",
			policy:     AcceleratedPolicy,
			random:     0.5,
			difficulty: Difficulty{Level: 25, DueDate: date(2025, 12, 1)},
			answer:     AnswerWrong,
			want:       Difficulty{Level: 13, DueDate: date(2025, 12, 30)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := NewScheduler(tt.policy, tt.random, time.UTC)
			flashcard := Flashcard{Front: "dog", Back: "犬", Type: FlashcardTypeTerm, Difficulty: tt.difficulty}

			require.NoError(t, scheduler.Mark(&flashcard, tt.answer, now))
			assert.Equal(t, tt.want, flashcard.Difficulty)
		})
	}
}

func TestScheduler_Mark_InvalidAnswer(t *testing.T) {
	scheduler := NewScheduler(ClassicPolicy, fixedRandom(0.5), time.UTC)
	flashcard := Flashcard{Front: "dog"}

	err := scheduler.Mark(&flashcard, Answer("perfect"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	assert.False(t, flashcard.Difficulty.IsScheduled())
}

func TestScheduler_Mark_WrongNeverRaisesLevel(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(7))

	for _, policy := range []Policy{ClassicPolicy, AcceleratedPolicy} {
		t.Run(policy.Name, func(t *testing.T) {
			scheduler := NewScheduler(policy, rng, time.UTC)
			for level := 0; level < 200; level++ {
				flashcard := Flashcard{Difficulty: Difficulty{Level: level, DueDate: date(2025, 5, 1)}}
				require.NoError(t, scheduler.Mark(&flashcard, AnswerWrong, now))
				assert.LessOrEqual(t, flashcard.Difficulty.Level, level)
				assert.True(t, flashcard.IsDue(now))
			}
		})
	}
}

func TestScheduler_Mark_IntervalStaysWithinFuzz(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	today := *date(2025, 6, 1)
	scheduler := NewScheduler(ClassicPolicy, rand.New(rand.NewSource(42)), time.UTC)

	for i := 0; i < 500; i++ {
		flashcard := Flashcard{Difficulty: Difficulty{Level: 37, DueDate: date(2025, 5, 1)}}
		require.NoError(t, scheduler.Mark(&flashcard, AnswerEasy, now))

		days := int(flashcard.Difficulty.DueDate.Sub(today).Hours() / 24)
		assert.GreaterOrEqual(t, days, 30)
		assert.LessOrEqual(t, days, 50)
	}
}

func TestParseAnswer(t *testing.T) {
	for _, value := range []string{"easy", "medium", "hard", "wrong"} {
		got, err := ParseAnswer(value)
		require.NoError(t, err)
		assert.Equal(t, Answer(value), got)
	}

	_, err := ParseAnswer("Easy")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestPolicyByName(t *testing.T) {
	got, err := PolicyByName("accelerated")
	require.NoError(t, err)
	assert.Equal(t, AcceleratedPolicy.Name, got.Name)

	_, err = PolicyByName("sm2")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	got := StartOfDay(time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC), tokyo)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, tokyo), got)
}
