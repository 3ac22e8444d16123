package quiz

import (
	"fmt"
	"math"
)

// Config controls per-session behavior. TimeLimit is the per-question
// countdown in seconds; zero leaves the session untimed.
type Config struct {
	TimeLimit int
}

// Presentation is what a front-end renders for the current question.
type Presentation struct {
	Number    int      `json:"number"`
	Total     int      `json:"total"`
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"time_limit"`
	Remaining int      `json:"remaining"`
}

// Resolution reports how the question that was just resolved turned out.
type Resolution struct {
	AnsweredQuestion
	Complete bool `json:"complete"`
}

type TickResult struct {
	Remaining  int        `json:"remaining"`
	Expired    bool       `json:"expired"`
	Resolution Resolution `json:"resolution"`
}

type Result struct {
	Score      int                `json:"score"`
	Total      int                `json:"total"`
	Percentage float64            `json:"percentage"`
	Missed     []AnsweredQuestion `json:"missed"`
}

// Summary formats the result the way the score dialog shows it.
func (r Result) Summary() string {
	return fmt.Sprintf("%d/%d (%.1f%%)", r.Score, r.Total, r.Percentage)
}

// Session drives a fixed list of questions from the first presentation to the
// final result. It is not safe for concurrent use; callers serialize access.
//
// Invariants:
//   - 0 <= current <= len(questions); the session is complete at len(questions).
//   - score + len(missed) == current.
//   - while presented, options[correctIndex] is the current correct answer.
type Session struct {
	questions []Question
	timeLimit int

	current int
	score   int
	missed  []AnsweredQuestion

	presented    bool
	options      []string
	correctIndex int
	remaining    int

	shuffle shuffleFunc
}

func NewSession(questions []Question, cfg Config) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}
	if cfg.TimeLimit < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTimeLimit, cfg.TimeLimit)
	}

	owned := make([]Question, len(questions))
	for idx, question := range questions {
		owned[idx] = question.clone()
	}

	return &Session{
		questions: owned,
		timeLimit: cfg.TimeLimit,
		missed:    make([]AnsweredQuestion, 0),
	}, nil
}

// Present returns the current question. Options are shuffled the first time a
// question is presented; later calls return the same order.
func (s *Session) Present() (Presentation, error) {
	if s.Complete() {
		return Presentation{}, ErrSessionComplete
	}
	s.ensurePresented()

	options := make([]string, len(s.options))
	copy(options, s.options)

	return Presentation{
		Number:    s.current + 1,
		Total:     len(s.questions),
		Prompt:    s.questions[s.current].Prompt,
		Options:   options,
		TimeLimit: s.timeLimit,
		Remaining: s.remaining,
	}, nil
}

// Submit resolves the current question with the option at index. An
// out-of-range index leaves the session untouched.
func (s *Session) Submit(index int) (Resolution, error) {
	if s.Complete() {
		return Resolution{}, ErrSessionComplete
	}
	s.ensurePresented()

	if index < 0 || index >= len(s.options) {
		return Resolution{}, fmt.Errorf("%w: %d is not between 0 and %d", ErrInvalidSelection, index, len(s.options)-1)
	}

	record := AnsweredQuestion{
		Question:   s.questions[s.current].clone(),
		UserAnswer: s.options[index],
		Answered:   true,
		WasCorrect: index == s.correctIndex,
	}
	return s.resolve(record), nil
}

// Timeout resolves the current question as unanswered.
func (s *Session) Timeout() (Resolution, error) {
	if s.timeLimit == 0 {
		return Resolution{}, ErrUntimed
	}
	if s.Complete() {
		return Resolution{}, ErrSessionComplete
	}
	return s.timeout(), nil
}

// Tick advances the countdown by one second. When it reaches zero the current
// question times out and the resolution is returned with Expired set.
func (s *Session) Tick() (TickResult, error) {
	if s.timeLimit == 0 {
		return TickResult{}, ErrUntimed
	}
	if s.Complete() {
		return TickResult{}, ErrSessionComplete
	}
	s.ensurePresented()

	s.remaining--
	if s.remaining > 0 {
		return TickResult{Remaining: s.remaining}, nil
	}

	return TickResult{
		Expired:    true,
		Resolution: s.timeout(),
	}, nil
}

func (s *Session) Result() (Result, error) {
	if !s.Complete() {
		return Result{}, ErrSessionNotComplete
	}

	total := len(s.questions)
	percentage := float64(s.score) / float64(total) * 100
	return Result{
		Score:      s.score,
		Total:      total,
		Percentage: math.Round(percentage*10) / 10,
		Missed:     s.Missed(),
	}, nil
}

func (s *Session) CurrentIndex() int {
	return s.current
}

func (s *Session) Score() int {
	return s.score
}

func (s *Session) Total() int {
	return len(s.questions)
}

func (s *Session) TimeLimit() int {
	return s.timeLimit
}

// Remaining is the countdown for the current question, or zero when untimed.
func (s *Session) Remaining() int {
	return s.remaining
}

func (s *Session) Complete() bool {
	return s.current == len(s.questions)
}

// Missed returns a copy of the questions resolved incorrectly or without an
// answer, in resolution order.
func (s *Session) Missed() []AnsweredQuestion {
	out := make([]AnsweredQuestion, len(s.missed))
	for idx, item := range s.missed {
		item.Question = item.Question.clone()
		out[idx] = item
	}
	return out
}

func (s *Session) ensurePresented() {
	if s.presented {
		return
	}
	s.options, s.correctIndex = shuffleOptions(s.questions[s.current], s.shuffle)
	s.remaining = s.timeLimit
	s.presented = true
}

func (s *Session) timeout() Resolution {
	return s.resolve(AnsweredQuestion{
		Question: s.questions[s.current].clone(),
	})
}

func (s *Session) resolve(record AnsweredQuestion) Resolution {
	if record.WasCorrect {
		s.score++
	} else {
		s.missed = append(s.missed, record)
	}

	s.current++
	s.presented = false
	s.options = nil
	s.correctIndex = -1
	s.remaining = 0

	record.Question = record.Question.clone()
	return Resolution{
		AnsweredQuestion: record,
		Complete:         s.Complete(),
	}
}
