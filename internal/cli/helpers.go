package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/zkadhem/Quiz-App/internal/i18n"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

// readLines feeds input lines to the returned channel until in is exhausted or
// ctx is cancelled, so the question loop can select on input and ticks together.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func printQuestion(out io.Writer, tr *i18n.Translator, view quiz.Presentation) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, tr.Td("question_header", map[string]any{"Number": view.Number, "Total": view.Total}))
	fmt.Fprintf(out, "%s\n\n", view.Prompt)
	for idx, option := range view.Options {
		fmt.Fprintf(out, "%s. %s\n", quiz.OptionLetter(idx), option)
	}
	fmt.Fprintln(out)
}

func printRemaining(out io.Writer, tr *i18n.Translator, seconds int) {
	fmt.Fprintln(out, tr.Td("time_remaining", map[string]any{"Seconds": seconds}))
}

func printResolution(out io.Writer, tr *i18n.Translator, resolution quiz.Resolution, expired bool) {
	data := map[string]any{"Answer": resolution.Question.CorrectAnswer}
	switch {
	case expired:
		fmt.Fprintln(out, tr.Td("times_up", data))
	case resolution.WasCorrect:
		fmt.Fprintln(out, tr.T("answer_correct"))
	default:
		fmt.Fprintln(out, tr.Td("answer_wrong", data))
	}
}

func printReview(out io.Writer, tr *i18n.Translator, missed []quiz.AnsweredQuestion) {
	for idx, item := range missed {
		fmt.Fprintln(out)
		fmt.Fprintln(out, tr.Td("review_question", map[string]any{"Number": idx + 1}))
		fmt.Fprintln(out, item.Question.Prompt)
		if item.Answered {
			fmt.Fprintln(out, tr.Td("review_your_answer", map[string]any{"Answer": item.UserAnswer}))
		} else {
			fmt.Fprintln(out, tr.T("review_no_answer"))
		}
		fmt.Fprintln(out, tr.Td("review_correct_answer", map[string]any{"Answer": item.Question.CorrectAnswer}))
	}
}

func parseYesNo(line string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true, true
	case "n", "no", "н", "нет":
		return false, true
	default:
		return false, false
	}
}
