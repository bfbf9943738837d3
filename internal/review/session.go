package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/recurrence/internal/annotation"
	"github.com/at-ishikawa/recurrence/internal/document"
	"github.com/at-ishikawa/recurrence/internal/learning"
	"github.com/at-ishikawa/recurrence/internal/notebook"
)

var ErrNoDueCards = errors.New("no due cards")

// Random picks among n choices. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// Question is the flashcard to show next.
type Question struct {
	Card      *Card
	Flashcard *notebook.Flashcard
	// Remaining is the number of due flashcards left in the session, this one included.
	Remaining int
}

// Session reviews due cards one flashcard at a time and writes each answer back to its document.
type Session struct {
	id         uuid.UUID
	store      document.Store
	codec      *annotation.Codec
	scheduler  *notebook.Scheduler
	random     Random
	now        func() time.Time
	reviewLogs learning.ReviewLogRepository

	pool     []*Card
	previous *Card
}

type SessionOption func(*Session)

func WithRandom(random Random) SessionOption {
	return func(s *Session) {
		s.random = random
	}
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// WithReviewLogs records every committed answer in repository.
func WithReviewLogs(repository learning.ReviewLogRepository) SessionOption {
	return func(s *Session) {
		s.reviewLogs = repository
	}
}

// NewSession starts a session over the cards that are due now.
func NewSession(cards []*Card, store document.Store, codec *annotation.Codec, scheduler *notebook.Scheduler, options ...SessionOption) *Session {
	session := &Session{
		id:        uuid.New(),
		store:     store,
		codec:     codec,
		scheduler: scheduler,
		random:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, option := range options {
		option(session)
	}
	session.pool = DueCards(cards, session.now())
	return session
}

// ID identifies the session in review logs.
func (s *Session) ID() string {
	return s.id.String()
}

// Remaining returns the number of due flashcards among the cards left in the session.
func (s *Session) Remaining() int {
	now := s.now()
	count := 0
	for _, card := range s.pool {
		count += len(card.DueFlashcards(now))
	}
	return count
}

// Next picks a random due flashcard of a random due card, avoiding the previous card
// while another one is left. It returns ErrNoDueCards once the session is over.
func (s *Session) Next() (*Question, error) {
	now := s.now()
	for len(s.pool) > 0 {
		choices := make([]int, 0, len(s.pool))
		for i, card := range s.pool {
			if card != s.previous || len(s.pool) == 1 {
				choices = append(choices, i)
			}
		}
		index := choices[s.random.Intn(len(choices))]
		card := s.pool[index]

		due := card.DueFlashcards(now)
		if len(due) == 0 {
			s.remove(card)
			continue
		}
		return &Question{
			Card:      card,
			Flashcard: due[s.random.Intn(len(due))],
			Remaining: s.Remaining(),
		}, nil
	}
	return nil, ErrNoDueCards
}

// Answer applies the answer to the question's flashcard and commits the card's line.
// When the commit fails the flashcard keeps its previous state and the card leaves the session.
func (s *Session) Answer(ctx context.Context, question *Question, answer notebook.Answer) error {
	card := question.Card
	flashcard := question.Flashcard
	now := s.now()

	previous := flashcard.Difficulty
	if err := s.scheduler.Mark(flashcard, answer, now); err != nil {
		return fmt.Errorf("scheduler.Mark() > %w", err)
	}

	encoded, err := card.rewrite(s.codec)
	if err == nil {
		err = s.store.ReplaceLine(card.Path, card.Line, encoded.line)
	}
	if err != nil {
		flashcard.Difficulty = previous
		s.remove(card)
		slog.Default().Warn("failed to commit a review",
			slog.String("path", card.Path),
			slog.String("line", card.Line),
			slog.Any("error", err),
		)
		return fmt.Errorf("commit(%s:%d) > %w", card.Path, card.LineNumber, err)
	}

	original := card.Line
	card.Line = encoded.line
	card.Annotations = encoded.annotations
	card.ContentEnd = encoded.contentEnd
	card.Compact = s.codec.Encoding() == annotation.EncodingCompact && len(encoded.annotations) > 0

	s.previous = card
	if !card.IsDue(now) {
		s.remove(card)
	}

	if s.reviewLogs == nil {
		return nil
	}
	log := &learning.ReviewLog{
		SessionID:      s.ID(),
		Path:           card.Path,
		Line:           original,
		FlashcardType:  string(flashcard.Type),
		FlashcardIndex: flashcard.Index,
		Front:          flashcard.Front,
		Answer:         string(answer),
		Level:          flashcard.Difficulty.Level,
		DueDate:        *flashcard.Difficulty.DueDate,
		ReviewedAt:     now,
	}
	if err := s.reviewLogs.Create(ctx, log); err != nil {
		return fmt.Errorf("reviewLogs.Create() > %w", err)
	}
	return nil
}

func (s *Session) remove(card *Card) {
	for i, c := range s.pool {
		if c == card {
			s.pool = append(s.pool[:i], s.pool[i+1:]...)
			return
		}
	}
}
