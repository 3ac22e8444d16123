package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

const (
	defaultAmount    = 10
	defaultTimeLimit = 30
	defaultListLimit = 10
)

func (a *API) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload createSessionRequest
	if err := decodeJSON(r, &payload); err != nil {
		a.writeError(w, r, err)
		return
	}

	req, cfg, err := payload.toFetchRequest()
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	session, err := quiz.Start(r.Context(), a.source, req, cfg)
	if err != nil {
		a.logger.Warn("session start failed", requestFields(r, err)...)
		a.writeError(w, r, err)
		return
	}

	id := a.sessions.add(&sessionEntry{
		session: session,
		request: req,
		player:  payload.Player,
	})
	a.logger.Info("session started",
		zap.String("session_id", id),
		zap.Int("questions", session.Total()),
		zap.Int("category", req.Category),
		zap.Stringer("difficulty", req.Difficulty),
		zap.Int("time_limit", session.TimeLimit()),
	)

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: id,
		Total:     session.Total(),
		TimeLimit: session.TimeLimit(),
	})
}

func (p createSessionRequest) toFetchRequest() (quiz.FetchRequest, quiz.Config, error) {
	difficulty, err := opentdb.ParseDifficulty(p.Difficulty)
	if err != nil {
		return quiz.FetchRequest{}, quiz.Config{}, err
	}

	amount := p.Amount
	if amount == 0 {
		amount = defaultAmount
	}
	timeLimit := defaultTimeLimit
	if p.TimeLimit != nil {
		timeLimit = *p.TimeLimit
	}
	if timeLimit < 0 {
		return quiz.FetchRequest{}, quiz.Config{}, fmt.Errorf("%w: got %d", quiz.ErrInvalidTimeLimit, timeLimit)
	}

	req := quiz.FetchRequest{Amount: amount, Category: p.Category, Difficulty: difficulty}
	probe := opentdb.Request{Amount: req.Amount, Category: req.Category, Difficulty: req.Difficulty}
	if err := probe.Validate(); err != nil {
		return quiz.FetchRequest{}, quiz.Config{}, err
	}
	return req, quiz.Config{TimeLimit: timeLimit}, nil
}

func (a *API) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(entry *sessionEntry) (int, any, error) {
		view, err := entry.session.Present()
		return http.StatusOK, view, err
	})
}

func (a *API) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var payload answerRequest
	if err := decodeJSON(r, &payload); err != nil {
		a.writeError(w, r, err)
		return
	}

	index := quiz.ParseOptionLetter(payload.Answer)
	if payload.Index != nil {
		index = *payload.Index
	}

	a.withSession(w, r, func(entry *sessionEntry) (int, any, error) {
		resolution, err := entry.session.Submit(index)
		return http.StatusOK, resolution, err
	})
}

func (a *API) HandleTick(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(entry *sessionEntry) (int, any, error) {
		tick, err := entry.session.Tick()
		return http.StatusOK, tick, err
	})
}

func (a *API) HandleTimeout(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(entry *sessionEntry) (int, any, error) {
		resolution, err := entry.session.Timeout()
		return http.StatusOK, resolution, err
	})
}

// HandleResult returns the final score. The first successful call for a
// session records the attempt in history.
func (a *API) HandleResult(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(entry *sessionEntry) (int, any, error) {
		result, err := entry.session.Result()
		if err != nil {
			return 0, nil, err
		}
		a.recordAttempt(r, entry, result)

		return http.StatusOK, resultResponse{
			Result:    result,
			Summary:   result.Summary(),
			AttemptID: entry.attemptID,
		}, nil
	})
}

func (a *API) recordAttempt(r *http.Request, entry *sessionEntry, result quiz.Result) {
	if a.history == nil || entry.recorded {
		return
	}

	attempt := history.NewAttempt(entry.player, entry.request, entry.session.TimeLimit(), result, a.now())
	if err := a.history.SaveAttempt(r.Context(), attempt); err != nil {
		a.logger.Warn("failed to record attempt", requestFields(r, err)...)
		return
	}
	entry.recorded = true
	entry.attemptID = attempt.ID
	a.logger.Info("attempt recorded",
		zap.String("attempt_id", attempt.ID),
		zap.String("player", attempt.Player),
		zap.String("score", result.Summary()),
	)
}

func (a *API) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.remove(chi.URLParam(r, "sessionID")); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: opentdb.Categories()})
}

func (a *API) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		a.writeError(w, r, errHistoryDisabled)
		return
	}
	limit, err := parseLimit(r, defaultListLimit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	attempts, err := a.history.ListAttempts(r.Context(), limit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Attempts: attempts})
}

func (a *API) HandleAttempt(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		a.writeError(w, r, errHistoryDisabled)
		return
	}

	attempt, err := a.history.GetAttempt(r.Context(), chi.URLParam(r, "attemptID"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

func (a *API) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if a.history == nil {
		a.writeError(w, r, errHistoryDisabled)
		return
	}
	limit, err := parseLimit(r, defaultListLimit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	entries, err := a.history.Leaderboard(r.Context(), limit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: entries})
}

func (a *API) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: a.sessions.len(),
		Time:     a.now().UTC(),
	})
}

// withSession looks up the session named in the path and runs fn while
// holding that session's lock.
func (a *API) withSession(w http.ResponseWriter, r *http.Request, fn func(*sessionEntry) (int, any, error)) {
	entry, err := a.sessions.get(chi.URLParam(r, "sessionID"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	entry.mu.Lock()
	status, payload, err := fn(entry)
	entry.mu.Unlock()

	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, status, payload)
}
