package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultBaseURL = "https://opentdb.com/api.php"
	MinAmount      = 1
	MaxAmount      = 50
)

var (
	ErrSourceUnavailable = errors.New("question source unavailable")
	ErrSourceRejected    = errors.New("question source rejected the request")
	ErrInvalidResponse   = errors.New("invalid question source response")

	ErrInvalidAmount = fmt.Errorf("amount must be between %d and %d", MinAmount, MaxAmount)
)

// RawQuestion mirrors the OpenTriviaDB question payload. Text fields are
// HTML-entity escaped exactly as the API returns them.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

// Request selects which questions to fetch. A zero Category and an empty
// Difficulty mean "any".
type Request struct {
	Amount     int
	Category   int
	Difficulty Difficulty
}

// Validate checks the request against the API's accepted ranges without
// performing any I/O.
func (r Request) Validate() error {
	if r.Amount < MinAmount || r.Amount > MaxAmount {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, r.Amount)
	}
	if r.Category != AnyCategory {
		if _, ok := LookupCategory(r.Category); !ok {
			return fmt.Errorf("%w: %d", ErrUnknownCategory, r.Category)
		}
	}
	switch r.Difficulty {
	case DifficultyAny, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidDifficulty, r.Difficulty)
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
	}
}

// WithBaseURL returns a copy of the client that talks to baseURL instead of
// the public endpoint. An empty value keeps the current one.
func (c *Client) WithBaseURL(baseURL string) *Client {
	clone := *c
	if baseURL != "" {
		clone.baseURL = baseURL
	}
	return &clone
}

func (c *Client) FetchQuestions(ctx context.Context, req Request) ([]RawQuestion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reqURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: opentdb returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("%w: opentdb response_code=%d (%s)", ErrSourceRejected, payload.ResponseCode, describeResponseCode(payload.ResponseCode))
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w: opentdb returned no questions", ErrSourceRejected)
	}

	for idx, item := range payload.Results {
		if item.Question == "" || item.CorrectAnswer == "" {
			return nil, fmt.Errorf("%w: result %d is missing question text or correct answer", ErrInvalidResponse, idx)
		}
	}

	return payload.Results, nil
}

func (c *Client) buildURL(req Request) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	query := base.Query()
	query.Set("amount", strconv.Itoa(req.Amount))
	if req.Category != AnyCategory {
		query.Set("category", strconv.Itoa(req.Category))
	}
	if req.Difficulty != DifficultyAny {
		query.Set("difficulty", string(req.Difficulty))
	}
	base.RawQuery = query.Encode()

	return base.String(), nil
}

func describeResponseCode(code int) string {
	switch code {
	case 1:
		return "not enough questions for the query"
	case 2:
		return "invalid parameter"
	case 3:
		return "session token not found"
	case 4:
		return "session token exhausted"
	case 5:
		return "rate limited"
	default:
		return "unknown response code"
	}
}
