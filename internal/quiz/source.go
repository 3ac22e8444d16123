package quiz

import (
	"context"

	"github.com/zkadhem/Quiz-App/internal/opentdb"
)

// FetchRequest selects the questions for one session. Zero Category and empty
// Difficulty mean "any".
type FetchRequest struct {
	Amount     int
	Category   int
	Difficulty opentdb.Difficulty
}

// Source supplies decoded questions for a new session.
type Source interface {
	Fetch(ctx context.Context, req FetchRequest) ([]Question, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context, req FetchRequest) ([]Question, error)

func (f SourceFunc) Fetch(ctx context.Context, req FetchRequest) ([]Question, error) {
	return f(ctx, req)
}

type QuestionsFetcher func(ctx context.Context, req opentdb.Request) ([]opentdb.RawQuestion, error)

// OpenTDBSource decodes OpenTriviaDB payloads into questions. Fetch errors are
// returned unchanged so callers can match the opentdb sentinels.
type OpenTDBSource struct {
	fetcher QuestionsFetcher
}

func NewOpenTDBSource(fetcher QuestionsFetcher) *OpenTDBSource {
	return &OpenTDBSource{fetcher: fetcher}
}

func (s *OpenTDBSource) Fetch(ctx context.Context, req FetchRequest) ([]Question, error) {
	raw, err := s.fetcher(ctx, opentdb.Request{
		Amount:     req.Amount,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return nil, err
	}
	return BuildQuestions(raw), nil
}

// Start fetches questions and opens a session over them. A fetch failure
// aborts session creation and is returned as is.
func Start(ctx context.Context, source Source, req FetchRequest, cfg Config) (*Session, error) {
	questions, err := source.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return NewSession(questions, cfg)
}
