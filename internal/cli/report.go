package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/at-ishikawa/recurrence/internal/learning"
	"github.com/at-ishikawa/recurrence/internal/review"
	"github.com/at-ishikawa/recurrence/internal/statistics"
)

const dateFormat = "2006-01-02"

// WriteForecast prints one line per day with a bar of half the due count.
func WriteForecast(w io.Writer, forecast review.Forecast) {
	bar := color.New(color.FgCyan)
	for _, day := range forecast.Days {
		fmt.Fprintf(w, "%s %s %d\n", day.Date.Format(dateFormat), bar.Sprint(strings.Repeat("=", day.Due/2)), day.Due)
	}
	if forecast.FirstClear == nil {
		fmt.Fprintf(w, "Still reviewing after %d days\n", len(forecast.Days))
		return
	}
	fmt.Fprintf(w, "Nothing due on %s\n", color.New(color.Bold).Sprint(forecast.FirstClear.Format(dateFormat)))
}

// WriteDeckStatistics prints a table of documents followed by their total.
func WriteDeckStatistics(w io.Writer, documents []statistics.DocumentStatistics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "DOCUMENT\tCARDS\tDUE CARDS\tDUE\tNEW\t%s\tNEXT\n", strings.Join(statistics.LevelBucketLabels, "\t"))
	total := statistics.Total(documents)
	total.Path = "total"
	rows := append(append([]statistics.DocumentStatistics{}, documents...), total)
	for _, document := range rows {
		levels := make([]string, 0, len(document.Levels))
		for _, count := range document.Levels {
			levels = append(levels, fmt.Sprint(count))
		}
		next := "-"
		if document.NextDue != nil {
			next = document.NextDue.Format(dateFormat)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			document.Path, document.Cards, document.DueCards, document.DueFlashcards, document.Unscheduled,
			strings.Join(levels, "\t"), next)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tw.Flush() > %w", err)
	}
	return nil
}

// WriteReviewStatistics prints answers per month.
func WriteReviewStatistics(w io.Writer, result statistics.ReviewStatisticsResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tREVIEWS\tWRONG\tFLASHCARDS")
	for _, period := range result.Periods {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", period.Period, period.Reviews, period.Wrong, period.Unique)
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\n", result.Aggregate.Reviews, result.Aggregate.Wrong, result.Aggregate.Unique)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tw.Flush() > %w", err)
	}
	return nil
}

// WriteReviewLogs prints review logs, one per line.
func WriteReviewLogs(w io.Writer, logs []learning.ReviewLog) {
	for _, log := range logs {
		answer := log.Answer
		if answer == "wrong" {
			answer = color.New(color.FgRed).Sprint(answer)
		}
		fmt.Fprintf(w, "%s  %-6s  %s  (%s#%d, level %d, due %s)  %s\n",
			log.ReviewedAt.Format("2006-01-02 15:04"), answer, log.Front,
			log.FlashcardType, log.FlashcardIndex, log.Level, log.DueDate.Format(dateFormat), log.Path)
	}
}
