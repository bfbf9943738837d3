package notebook

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Answer is how well a flashcard was recalled.
type Answer string

const (
	AnswerEasy   Answer = "easy"
	AnswerMedium Answer = "medium"
	AnswerHard   Answer = "hard"
	AnswerWrong  Answer = "wrong"
)

var ErrInvalidAnswer = errors.New("invalid answer")

// ParseAnswer accepts the answer names used on the command line.
func ParseAnswer(value string) (Answer, error) {
	switch answer := Answer(value); answer {
	case AnswerEasy, AnswerMedium, AnswerHard, AnswerWrong:
		return answer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAnswer, value)
}

// WrongPolicy decides the level after a wrong answer.
type WrongPolicy string

const (
	WrongPolicyReset WrongPolicy = "reset"
	WrongPolicyHalve WrongPolicy = "halve"
)

// Policy holds the constants of a scheduling scheme.
type Policy struct {
	Name         string
	InitialLevel int
	Weights      map[Answer]int
	// Multiply grows the level as (level+1)*weight instead of level+weight.
	Multiply    bool
	Fuzziness   float64
	WrongPolicy WrongPolicy
}

var (
	ClassicPolicy = Policy{
		Name:         "classic",
		InitialLevel: 1,
		Weights: map[Answer]int{
			AnswerEasy:   3,
			AnswerMedium: 2,
			AnswerHard:   1,
		},
		Fuzziness:   0.25,
		WrongPolicy: WrongPolicyReset,
	}
	AcceleratedPolicy = Policy{
		Name:         "accelerated",
		InitialLevel: 0,
		Weights: map[Answer]int{
			AnswerEasy:   7,
			AnswerMedium: 3,
			AnswerHard:   1,
		},
		Multiply:    true,
		Fuzziness:   0.5,
		WrongPolicy: WrongPolicyHalve,
	}
)

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case ClassicPolicy.Name:
		return ClassicPolicy, nil
	case AcceleratedPolicy.Name:
		return AcceleratedPolicy, nil
	}
	return Policy{}, fmt.Errorf("unknown scheduling policy %q", name)
}

// RandomSource is satisfied by *rand.Rand.
type RandomSource interface {
	Float64() float64
}

// Scheduler updates review state from answers.
type Scheduler struct {
	policy   Policy
	random   RandomSource
	location *time.Location
}

// NewScheduler creates a scheduler. A nil random source is replaced by a time-seeded one,
// and a nil location by time.Local.
func NewScheduler(policy Policy, random RandomSource, location *time.Location) *Scheduler {
	if random == nil {
		random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		policy:   policy,
		random:   random,
		location: location,
	}
}

// Mark applies an answer given at now to the flashcard.
func (s *Scheduler) Mark(flashcard *Flashcard, answer Answer, now time.Time) error {
	if _, err := ParseAnswer(string(answer)); err != nil {
		return err
	}

	difficulty := flashcard.Difficulty
	if !difficulty.IsScheduled() {
		difficulty.Level = s.policy.InitialLevel
	}

	today := StartOfDay(now, s.location)
	if answer == AnswerWrong {
		difficulty.Level = s.lapse(difficulty.Level)
		difficulty.DueDate = &today
		flashcard.Difficulty = difficulty
		return nil
	}

	weight := s.policy.Weights[answer]
	if s.policy.Multiply {
		difficulty.Level = (difficulty.Level + 1) * weight
	} else {
		difficulty.Level += weight
	}

	dueDate := today.AddDate(0, 0, s.intervalDays(difficulty.Level))
	difficulty.DueDate = &dueDate
	flashcard.Difficulty = difficulty
	return nil
}

func (s *Scheduler) lapse(level int) int {
	if s.policy.WrongPolicy == WrongPolicyHalve {
		return int(math.Round(float64(level) / 2))
	}
	return 0
}

// intervalDays spreads reviews of the same level over neighbouring days.
func (s *Scheduler) intervalDays(level int) int {
	fuzziness := s.policy.Fuzziness
	fuzz := float64(level) * (s.random.Float64()*fuzziness*2 - fuzziness)
	return int(math.Round(float64(level) + fuzz))
}

// StartOfDay returns midnight of the calendar day of t in location.
func StartOfDay(t time.Time, location *time.Location) time.Time {
	year, month, day := t.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}
