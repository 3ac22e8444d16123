package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/zkadhem/Quiz-App/internal/quiz"
)

// Session drives one server-side quiz session. It satisfies the same
// Present/Submit/Tick/Result surface as a local session, so the terminal loop
// does not care where the state lives.
type Session struct {
	client    *Client
	ID        string
	Total     int
	TimeLimit int
}

type createSessionRequest struct {
	Amount     int    `json:"amount"`
	Category   int    `json:"category"`
	Difficulty string `json:"difficulty,omitempty"`
	TimeLimit  int    `json:"time_limit"`
	Player     string `json:"player,omitempty"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Total     int    `json:"total"`
	TimeLimit int    `json:"time_limit"`
}

type answerRequest struct {
	Index int `json:"index"`
}

type resultResponse struct {
	quiz.Result
	Summary   string `json:"summary"`
	AttemptID string `json:"attempt_id,omitempty"`
}

// StartSession asks the server to fetch questions and open a session.
func (c *Client) StartSession(ctx context.Context, req quiz.FetchRequest, cfg quiz.Config, player string) (*Session, error) {
	if cfg.TimeLimit < 0 {
		return nil, quiz.ErrInvalidTimeLimit
	}

	var difficulty string
	if req.Difficulty != "" {
		difficulty = string(req.Difficulty)
	}

	var payload createSessionResponse
	err := c.doJSON(ctx, http.MethodPost, "/sessions", createSessionRequest{
		Amount:     req.Amount,
		Category:   req.Category,
		Difficulty: difficulty,
		TimeLimit:  cfg.TimeLimit,
		Player:     player,
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.SessionID == "" {
		return nil, errors.New("server returned no session id")
	}

	return &Session{
		client:    c,
		ID:        payload.SessionID,
		Total:     payload.Total,
		TimeLimit: payload.TimeLimit,
	}, nil
}

func (s *Session) path(suffix string) string {
	return "/sessions/" + url.PathEscape(s.ID) + suffix
}

func (s *Session) Present(ctx context.Context) (quiz.Presentation, error) {
	var view quiz.Presentation
	err := s.client.doJSON(ctx, http.MethodGet, s.path("/current"), nil, &view)
	return view, err
}

func (s *Session) Submit(ctx context.Context, index int) (quiz.Resolution, error) {
	var resolution quiz.Resolution
	err := s.client.doJSON(ctx, http.MethodPost, s.path("/answer"), answerRequest{Index: index}, &resolution)
	return resolution, err
}

func (s *Session) Tick(ctx context.Context) (quiz.TickResult, error) {
	var tick quiz.TickResult
	err := s.client.doJSON(ctx, http.MethodPost, s.path("/tick"), nil, &tick)
	return tick, err
}

func (s *Session) Timeout(ctx context.Context) (quiz.Resolution, error) {
	var resolution quiz.Resolution
	err := s.client.doJSON(ctx, http.MethodPost, s.path("/timeout"), nil, &resolution)
	return resolution, err
}

func (s *Session) Result(ctx context.Context) (quiz.Result, error) {
	result, _, err := s.ResultWithAttempt(ctx)
	return result, err
}

// ResultWithAttempt also returns the id under which the server recorded the
// attempt, or "" when history is disabled there.
func (s *Session) ResultWithAttempt(ctx context.Context) (quiz.Result, string, error) {
	var payload resultResponse
	if err := s.client.doJSON(ctx, http.MethodGet, s.path("/result"), nil, &payload); err != nil {
		return quiz.Result{}, "", err
	}
	return payload.Result, payload.AttemptID, nil
}

// Close discards the session on the server.
func (s *Session) Close(ctx context.Context) error {
	return s.client.doJSON(ctx, http.MethodDelete, s.path(""), nil, nil)
}
