package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

// Error codes let clients map a failure back to a domain error without
// parsing messages.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidSelection   = "invalid_selection"
	CodeSessionNotFound    = "session_not_found"
	CodeSessionComplete    = "session_complete"
	CodeSessionNotComplete = "session_not_complete"
	CodeUntimed            = "untimed"
	CodeSourceUnavailable  = "source_unavailable"
	CodeSourceRejected     = "source_rejected"
	CodeInvalidResponse    = "invalid_response"
	CodeEmptyQuestionSet   = "empty_question_set"
	CodeAttemptNotFound    = "attempt_not_found"
	CodeHistoryDisabled    = "history_disabled"
	CodeInternal           = "internal"
)

const maxRequestBytes = 1 << 16

var (
	errInvalidRequest  = errors.New("invalid request")
	errHistoryDisabled = errors.New("history is disabled")
)

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, errSessionNotFound):
		return http.StatusNotFound, CodeSessionNotFound
	case errors.Is(err, history.ErrAttemptNotFound):
		return http.StatusNotFound, CodeAttemptNotFound
	case errors.Is(err, errHistoryDisabled):
		return http.StatusNotFound, CodeHistoryDisabled
	case errors.Is(err, quiz.ErrInvalidSelection):
		return http.StatusBadRequest, CodeInvalidSelection
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, quiz.ErrInvalidTimeLimit),
		errors.Is(err, opentdb.ErrInvalidAmount),
		errors.Is(err, opentdb.ErrUnknownCategory),
		errors.Is(err, opentdb.ErrInvalidDifficulty):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, quiz.ErrSessionComplete):
		return http.StatusConflict, CodeSessionComplete
	case errors.Is(err, quiz.ErrSessionNotComplete):
		return http.StatusConflict, CodeSessionNotComplete
	case errors.Is(err, quiz.ErrUntimed):
		return http.StatusConflict, CodeUntimed
	case errors.Is(err, quiz.ErrSourceUnavailable):
		return http.StatusBadGateway, CodeSourceUnavailable
	case errors.Is(err, quiz.ErrSourceRejected):
		return http.StatusUnprocessableEntity, CodeSourceRejected
	case errors.Is(err, quiz.ErrInvalidResponse):
		return http.StatusBadGateway, CodeInvalidResponse
	case errors.Is(err, quiz.ErrEmptyQuestionSet):
		return http.StatusBadGateway, CodeEmptyQuestionSet
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", requestFields(r, err)...)
		message = "request failed"
	}
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return nil
}

// parseLimit reads an optional positive limit query parameter.
func parseLimit(r *http.Request, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get("limit"))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", errInvalidRequest)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
