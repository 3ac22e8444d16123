package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
)

const defaultListLimit = 10

var _ history.Repository = (*SQLiteStore)(nil)

// SaveAttempt stores the attempt row and its missed questions in one
// transaction so a partially written attempt is never visible.
func (s *SQLiteStore) SaveAttempt(ctx context.Context, attempt history.Attempt) error {
	if attempt.ID == "" {
		return fmt.Errorf("%w: id is required", history.ErrInvalidAttempt)
	}
	if attempt.Total <= 0 {
		return fmt.Errorf("%w: total must be positive", history.ErrInvalidAttempt)
	}
	if attempt.FinishedAt.IsZero() {
		attempt.FinishedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO attempts (attempt_id, player, category, difficulty, score, total, percentage, time_limit, finished_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID,
		history.NormalizePlayer(attempt.Player),
		attempt.Category,
		string(attempt.Difficulty),
		attempt.Score,
		attempt.Total,
		attempt.Percentage,
		attempt.TimeLimit,
		attempt.FinishedAt.UnixNano(),
	)
	if err != nil {
		return err
	}

	for idx, item := range attempt.Missed {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO missed_questions (attempt_id, position, prompt, user_answer, answered, correct_answer)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			attempt.ID,
			idx,
			item.Prompt,
			item.UserAnswer,
			item.Answered,
			item.CorrectAnswer,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetAttempt(ctx context.Context, id string) (history.Attempt, error) {
	attempt, err := scanAttempt(s.db.QueryRowContext(
		ctx,
		`SELECT attempt_id, player, category, difficulty, score, total, percentage, time_limit, finished_at_unix
		 FROM attempts WHERE attempt_id = ?`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return history.Attempt{}, history.ErrAttemptNotFound
		}
		return history.Attempt{}, err
	}

	missed, err := s.missedForAttempt(ctx, id)
	if err != nil {
		return history.Attempt{}, err
	}
	attempt.Missed = missed

	return attempt, nil
}

// ListAttempts returns the newest attempts first, without their missed lists.
func (s *SQLiteStore) ListAttempts(ctx context.Context, limit int) ([]history.Attempt, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT attempt_id, player, category, difficulty, score, total, percentage, time_limit, finished_at_unix
		 FROM attempts
		 ORDER BY finished_at_unix DESC, attempt_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]history.Attempt, 0)
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	return attempts, rows.Err()
}

// Leaderboard ranks players by their best percentage. Ties go to whoever
// reached that percentage first, then to the player name.
func (s *SQLiteStore) Leaderboard(ctx context.Context, limit int) ([]history.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`WITH best AS (
			SELECT player, MAX(percentage) AS best_percentage, COUNT(*) AS attempts
			FROM attempts
			GROUP BY player
		)
		SELECT best.player, best.best_percentage, best.attempts, MIN(a.finished_at_unix) AS best_at
		FROM best
		JOIN attempts a ON a.player = best.player AND a.percentage = best.best_percentage
		GROUP BY best.player, best.best_percentage, best.attempts
		ORDER BY best.best_percentage DESC, best_at ASC, best.player ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]history.LeaderboardEntry, 0)
	for rows.Next() {
		var (
			entry  history.LeaderboardEntry
			bestAt int64
		)
		if err := rows.Scan(&entry.Player, &entry.BestPercentage, &entry.Attempts, &bestAt); err != nil {
			return nil, err
		}
		entry.BestAt = time.Unix(0, bestAt).UTC()
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) missedForAttempt(ctx context.Context, id string) ([]history.MissedQuestion, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT prompt, user_answer, answered, correct_answer
		 FROM missed_questions
		 WHERE attempt_id = ?
		 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	missed := make([]history.MissedQuestion, 0)
	for rows.Next() {
		var item history.MissedQuestion
		if err := rows.Scan(&item.Prompt, &item.UserAnswer, &item.Answered, &item.CorrectAnswer); err != nil {
			return nil, err
		}
		missed = append(missed, item)
	}

	return missed, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (history.Attempt, error) {
	var (
		attempt        history.Attempt
		difficulty     string
		finishedAtUnix int64
	)
	if err := row.Scan(
		&attempt.ID,
		&attempt.Player,
		&attempt.Category,
		&difficulty,
		&attempt.Score,
		&attempt.Total,
		&attempt.Percentage,
		&attempt.TimeLimit,
		&finishedAtUnix,
	); err != nil {
		return history.Attempt{}, err
	}

	attempt.Difficulty = opentdb.Difficulty(difficulty)
	attempt.FinishedAt = time.Unix(0, finishedAtUnix).UTC()
	return attempt, nil
}
