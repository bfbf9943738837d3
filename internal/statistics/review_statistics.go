package statistics

import (
	"fmt"
	"sort"

	"github.com/at-ishikawa/recurrence/internal/learning"
	"github.com/at-ishikawa/recurrence/internal/notebook"
)

// ReviewStatistics holds statistics for a time period
type ReviewStatistics struct {
	Period  string // "2025-01"
	Reviews int    // Total answers
	Wrong   int    // Answers marked wrong
	Unique  int    // Unique flashcards answered
}

// ReviewStatisticsResult holds both per-period and aggregate statistics
type ReviewStatisticsResult struct {
	Periods   []ReviewStatistics
	Aggregate ReviewStatistics
}

type reviewPeriod struct {
	reviews int
	wrong   int
	unique  map[string]struct{}
}

// CalculateReviewStatistics counts review logs per month.
// It accepts optional year and month filters (0 means no filter).
func CalculateReviewStatistics(logs []learning.ReviewLog, year, month int) ReviewStatisticsResult {
	periods := make(map[string]*reviewPeriod)
	aggregate := &reviewPeriod{unique: make(map[string]struct{})}

	for _, log := range logs {
		if log.ReviewedAt.IsZero() {
			continue
		}
		logYear := log.ReviewedAt.Year()
		logMonth := int(log.ReviewedAt.Month())
		if !matchesFilter(logYear, logMonth, year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", logYear, logMonth)
		if _, ok := periods[period]; !ok {
			periods[period] = &reviewPeriod{unique: make(map[string]struct{})}
		}
		key := fmt.Sprintf("%s|%s|%s#%d", log.Path, log.Line, log.FlashcardType, log.FlashcardIndex)
		for _, p := range []*reviewPeriod{periods[period], aggregate} {
			p.reviews++
			if log.Answer == string(notebook.AnswerWrong) {
				p.wrong++
			}
			p.unique[key] = struct{}{}
		}
	}

	var result ReviewStatisticsResult
	for period, p := range periods {
		result.Periods = append(result.Periods, ReviewStatistics{
			Period:  period,
			Reviews: p.reviews,
			Wrong:   p.wrong,
			Unique:  len(p.unique),
		})
	}
	sort.Slice(result.Periods, func(i, j int) bool {
		return result.Periods[i].Period < result.Periods[j].Period
	})
	result.Aggregate = ReviewStatistics{
		Reviews: aggregate.reviews,
		Wrong:   aggregate.wrong,
		Unique:  len(aggregate.unique),
	}
	return result
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear != 0 && logYear != filterYear {
		return false
	}
	if filterMonth != 0 && logMonth != filterMonth {
		return false
	}
	return true
}
