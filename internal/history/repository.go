package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

const anonymousPlayer = "anonymous"

var (
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrInvalidAttempt  = errors.New("invalid attempt")
)

// Attempt is one completed quiz session as it is stored.
type Attempt struct {
	ID         string             `json:"id"`
	Player     string             `json:"player"`
	Category   int                `json:"category"`
	Difficulty opentdb.Difficulty `json:"difficulty"`
	Score      int                `json:"score"`
	Total      int                `json:"total"`
	Percentage float64            `json:"percentage"`
	TimeLimit  int                `json:"time_limit"`
	FinishedAt time.Time          `json:"finished_at"`
	Missed     []MissedQuestion   `json:"missed,omitempty"`
}

type MissedQuestion struct {
	Prompt        string `json:"prompt"`
	UserAnswer    string `json:"user_answer,omitempty"`
	Answered      bool   `json:"answered"`
	CorrectAnswer string `json:"correct_answer"`
}

type LeaderboardEntry struct {
	Player         string    `json:"player"`
	BestPercentage float64   `json:"best_percentage"`
	Attempts       int       `json:"attempts"`
	BestAt         time.Time `json:"best_at"`
}

type Repository interface {
	SaveAttempt(ctx context.Context, attempt Attempt) error
	GetAttempt(ctx context.Context, id string) (Attempt, error)
	ListAttempts(ctx context.Context, limit int) ([]Attempt, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// NewAttempt captures a finished session's result under a fresh id.
func NewAttempt(player string, req quiz.FetchRequest, timeLimit int, result quiz.Result, finishedAt time.Time) Attempt {
	missed := make([]MissedQuestion, 0, len(result.Missed))
	for _, item := range result.Missed {
		missed = append(missed, MissedQuestion{
			Prompt:        item.Question.Prompt,
			UserAnswer:    item.UserAnswer,
			Answered:      item.Answered,
			CorrectAnswer: item.Question.CorrectAnswer,
		})
	}

	return Attempt{
		ID:         uuid.NewString(),
		Player:     NormalizePlayer(player),
		Category:   req.Category,
		Difficulty: req.Difficulty,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		TimeLimit:  timeLimit,
		FinishedAt: finishedAt.UTC(),
		Missed:     missed,
	}
}

func NormalizePlayer(player string) string {
	normalized := strings.ToLower(strings.TrimSpace(player))
	if normalized == "" {
		return anonymousPlayer
	}
	return normalized
}
