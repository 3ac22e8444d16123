package httpapi

import (
	"time"

	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

type createSessionRequest struct {
	Amount     int    `json:"amount"`
	Category   int    `json:"category"`
	Difficulty string `json:"difficulty"`
	// TimeLimit is a pointer so an explicit 0 (untimed) differs from omitted.
	TimeLimit *int   `json:"time_limit"`
	Player    string `json:"player"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Total     int    `json:"total"`
	TimeLimit int    `json:"time_limit"`
}

// answerRequest carries either an option index or its letter.
type answerRequest struct {
	Index  *int   `json:"index,omitempty"`
	Answer string `json:"answer,omitempty"`
}

type resultResponse struct {
	quiz.Result
	Summary   string `json:"summary"`
	AttemptID string `json:"attempt_id,omitempty"`
}

type categoriesResponse struct {
	Categories []opentdb.Category `json:"categories"`
}

type historyResponse struct {
	Attempts []history.Attempt `json:"attempts"`
}

type leaderboardResponse struct {
	Leaderboard []history.LeaderboardEntry `json:"leaderboard"`
}

type healthResponse struct {
	Status   string    `json:"status"`
	Sessions int       `json:"sessions"`
	Time     time.Time `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
