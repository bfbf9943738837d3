package review

import (
	"time"

	"github.com/at-ishikawa/recurrence/internal/notebook"
)

const DefaultForecastDays = 75

// ForecastDay is the number of flashcards expected to be due on Date.
type ForecastDay struct {
	Date time.Time
	Due  int
}

type Forecast struct {
	Days []ForecastDay
	// FirstClear is the first day without due flashcards, or nil.
	FirstClear *time.Time
}

// answer distributions drawn from by level; higher levels are answered better
var forecastAnswers = []struct {
	below   int
	answers []notebook.Answer
}{
	{below: 10, answers: []notebook.Answer{notebook.AnswerEasy, notebook.AnswerMedium, notebook.AnswerHard, notebook.AnswerWrong}},
	{below: 100, answers: []notebook.Answer{notebook.AnswerEasy, notebook.AnswerEasy, notebook.AnswerMedium, notebook.AnswerMedium, notebook.AnswerHard, notebook.AnswerWrong}},
	{below: 1000, answers: []notebook.Answer{notebook.AnswerEasy, notebook.AnswerMedium, notebook.AnswerHard}},
	{below: 10000, answers: []notebook.Answer{notebook.AnswerEasy, notebook.AnswerEasy, notebook.AnswerEasy, notebook.AnswerMedium, notebook.AnswerMedium, notebook.AnswerHard}},
}

var forecastAnswersAbove = []notebook.Answer{notebook.AnswerEasy, notebook.AnswerMedium}

func forecastAnswer(level int, random Random) notebook.Answer {
	answers := forecastAnswersAbove
	for _, bucket := range forecastAnswers {
		if level < bucket.below {
			answers = bucket.answers
			break
		}
	}
	return answers[random.Intn(len(answers))]
}

// RunForecast simulates answering every due flashcard each day for days days from start.
// The cards are copied, so neither they nor their documents change.
func RunForecast(cards []*Card, scheduler *notebook.Scheduler, random Random, start time.Time, days int, location *time.Location) (Forecast, error) {
	simulated := make([]*Card, 0, len(cards))
	for _, card := range cards {
		simulated = append(simulated, card.clone())
	}

	var forecast Forecast
	today := notebook.StartOfDay(start, location)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)

		var due []*notebook.Flashcard
		for _, card := range DueCards(simulated, date) {
			due = append(due, card.DueFlashcards(date)...)
		}
		forecast.Days = append(forecast.Days, ForecastDay{Date: date, Due: len(due)})
		if len(due) == 0 && forecast.FirstClear == nil {
			cleared := date
			forecast.FirstClear = &cleared
		}

		for _, flashcard := range due {
			level := flashcard.Difficulty.Level
			if err := scheduler.Mark(flashcard, forecastAnswer(level, random), date); err != nil {
				return Forecast{}, err
			}
		}
	}
	return forecast, nil
}
