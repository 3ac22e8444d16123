package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

const defaultServer = "http://127.0.0.1:8080"

var (
	ErrServiceUnavailable = errors.New("quiz service unavailable")
	ErrSessionNotFound    = errors.New("session not found")
	ErrHistoryDisabled    = errors.New("history is disabled on the server")
)

// codeErrors maps server error codes back to the errors the local session
// would have returned.
var codeErrors = map[string]error{
	"invalid_selection":    quiz.ErrInvalidSelection,
	"session_complete":     quiz.ErrSessionComplete,
	"session_not_complete": quiz.ErrSessionNotComplete,
	"untimed":              quiz.ErrUntimed,
	"source_unavailable":   quiz.ErrSourceUnavailable,
	"source_rejected":      quiz.ErrSourceRejected,
	"invalid_response":     quiz.ErrInvalidResponse,
	"empty_question_set":   quiz.ErrEmptyQuestionSet,
	"session_not_found":    ErrSessionNotFound,
	"attempt_not_found":    history.ErrAttemptNotFound,
	"history_disabled":     ErrHistoryDisabled,
}

type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return codeErrors[e.Code]
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultServer
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Categories(ctx context.Context) ([]opentdb.Category, error) {
	var payload categoriesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Categories, nil
}

func (c *Client) History(ctx context.Context, limit int) ([]history.Attempt, error) {
	var payload historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/history?"+limitQuery(limit), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Attempts, nil
}

func (c *Client) Attempt(ctx context.Context, id string) (history.Attempt, error) {
	if strings.TrimSpace(id) == "" {
		return history.Attempt{}, errors.New("attempt id is required")
	}

	var attempt history.Attempt
	if err := c.doJSON(ctx, http.MethodGet, "/history/"+url.PathEscape(id), nil, &attempt); err != nil {
		return history.Attempt{}, err
	}
	return attempt, nil
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]history.LeaderboardEntry, error) {
	var payload leaderboardResponse
	if err := c.doJSON(ctx, http.MethodGet, "/leaderboard?"+limitQuery(limit), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Leaderboard, nil
}

func limitQuery(limit int) string {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query.Encode()
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil {
			apiErr.Code = payload.Code
			apiErr.Message = strings.TrimSpace(payload.Error)
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
