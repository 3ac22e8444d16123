package quiz

import (
	"html"
	"math/rand"
	"strings"

	"github.com/zkadhem/Quiz-App/internal/opentdb"
)

// Question is a decoded trivia record. It is never mutated after it is built.
type Question struct {
	Prompt           string   `json:"prompt"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// AnsweredQuestion is the outcome recorded when a question is resolved.
// Answered is false when the question timed out without a selection.
type AnsweredQuestion struct {
	Question   Question `json:"question"`
	UserAnswer string   `json:"user_answer,omitempty"`
	Answered   bool     `json:"answered"`
	WasCorrect bool     `json:"was_correct"`
}

func BuildQuestions(raw []opentdb.RawQuestion) []Question {
	questions := make([]Question, 0, len(raw))
	for _, item := range raw {
		questions = append(questions, buildQuestion(item))
	}
	return questions
}

func buildQuestion(raw opentdb.RawQuestion) Question {
	incorrect := make([]string, 0, len(raw.IncorrectAnswers))
	for _, answer := range raw.IncorrectAnswers {
		incorrect = append(incorrect, html.UnescapeString(answer))
	}

	return Question{
		Prompt:           html.UnescapeString(raw.Question),
		CorrectAnswer:    html.UnescapeString(raw.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}
}

func (q Question) clone() Question {
	incorrect := make([]string, len(q.IncorrectAnswers))
	copy(incorrect, q.IncorrectAnswers)
	q.IncorrectAnswers = incorrect
	return q
}

type shuffleFunc func(n int, swap func(i, j int))

// shuffleOptions returns the question's answers in a uniformly random order
// together with the position of the correct answer.
func shuffleOptions(question Question, shuffle shuffleFunc) ([]string, int) {
	type choice struct {
		text      string
		isCorrect bool
	}

	choices := make([]choice, 0, len(question.IncorrectAnswers)+1)
	for _, incorrect := range question.IncorrectAnswers {
		choices = append(choices, choice{text: incorrect})
	}
	choices = append(choices, choice{text: question.CorrectAnswer, isCorrect: true})

	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	options := make([]string, len(choices))
	correctIndex := -1
	for idx, candidate := range choices {
		options[idx] = candidate.text
		if candidate.isCorrect {
			correctIndex = idx
		}
	}

	return options, correctIndex
}

// OptionLetter maps a zero-based option index to its display letter.
func OptionLetter(index int) string {
	return string(rune('A' + index))
}

// ParseOptionLetter is the inverse of OptionLetter. It returns -1 for
// anything that is not a single letter.
func ParseOptionLetter(answer string) int {
	letter := NormalizeLetter(answer)
	if letter == "" {
		return -1
	}
	if letter[0] < 'A' || letter[0] > 'Z' {
		return -1
	}
	return int(letter[0] - 'A')
}

func NormalizeLetter(answer string) string {
	letter := strings.ToUpper(strings.TrimSpace(answer))
	if len(letter) != 1 {
		return ""
	}
	return letter
}
