// Package learning stores the history of review answers.
package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ReviewLog is one answer given to one flashcard.
type ReviewLog struct {
	ID             int64     `db:"id" yaml:"id"`
	SessionID      string    `db:"session_id" yaml:"session_id"`
	Path           string    `db:"path" yaml:"path"`
	Line           string    `db:"line" yaml:"line"`
	FlashcardType  string    `db:"flashcard_type" yaml:"flashcard_type"`
	FlashcardIndex int       `db:"flashcard_index" yaml:"flashcard_index"`
	Front          string    `db:"front" yaml:"front"`
	Answer         string    `db:"answer" yaml:"answer"`
	Level          int       `db:"level" yaml:"level"`
	DueDate        time.Time `db:"due_date" yaml:"due_date"`
	ReviewedAt     time.Time `db:"reviewed_at" yaml:"reviewed_at"`
	CreatedAt      time.Time `db:"created_at" yaml:"created_at"`
}

//go:generate mockgen -source=repository.go -destination=../mocks/learning/mock_repository.go -package=mock_learning ReviewLogRepository

// ReviewLogRepository defines operations for managing review logs.
type ReviewLogRepository interface {
	FindRecent(ctx context.Context, limit int) ([]ReviewLog, error)
	FindSince(ctx context.Context, since time.Time) ([]ReviewLog, error)
	Create(ctx context.Context, log *ReviewLog) error
}

// DBReviewLogRepository implements ReviewLogRepository using MySQL.
type DBReviewLogRepository struct {
	db *sqlx.DB
}

// NewDBReviewLogRepository creates a new DBReviewLogRepository.
func NewDBReviewLogRepository(db *sqlx.DB) *DBReviewLogRepository {
	return &DBReviewLogRepository{db: db}
}

// FindRecent returns the latest logs, newest first.
func (r *DBReviewLogRepository) FindRecent(ctx context.Context, limit int) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM review_logs ORDER BY reviewed_at DESC, id DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(recent review_logs) > %w", err)
	}
	return logs, nil
}

// FindSince returns the logs reviewed at or after since, oldest first.
func (r *DBReviewLogRepository) FindSince(ctx context.Context, since time.Time) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM review_logs WHERE reviewed_at >= ? ORDER BY reviewed_at, id", since); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs since) > %w", err)
	}
	return logs, nil
}

// Create inserts a new review log.
func (r *DBReviewLogRepository) Create(ctx context.Context, log *ReviewLog) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO review_logs (session_id, path, line, flashcard_type, flashcard_index, front, answer, level, due_date, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.SessionID, log.Path, log.Line, log.FlashcardType, log.FlashcardIndex, log.Front,
		log.Answer, log.Level, log.DueDate, log.ReviewedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review_log) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	log.ID = id
	return nil
}
