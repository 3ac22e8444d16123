package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/zkadhem/Quiz-App/internal/i18n"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

const defaultTickInterval = time.Second

// ErrAbandoned is returned when input ends before the session completes.
var ErrAbandoned = errors.New("quiz abandoned")

type Options struct {
	Translator *i18n.Translator
	Logger     *zap.Logger
	// TickInterval is the wall-clock length of one countdown second.
	TickInterval time.Duration
}

type app struct {
	driver       Driver
	lines        <-chan string
	out          io.Writer
	tr           *i18n.Translator
	logger       *zap.Logger
	tickInterval time.Duration
}

// Run plays the session behind driver to completion, reading answers from in
// and rendering to out, then offers a review of the missed questions.
func Run(ctx context.Context, driver Driver, in io.Reader, out io.Writer, opts Options) (quiz.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := &app{
		driver:       driver,
		lines:        readLines(ctx, in),
		out:          out,
		tr:           opts.Translator,
		logger:       opts.Logger,
		tickInterval: opts.TickInterval,
	}
	if a.tr == nil {
		a.tr = i18n.MustNew("en")
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.tickInterval <= 0 {
		a.tickInterval = defaultTickInterval
	}

	for {
		view, err := a.driver.Present(ctx)
		if err != nil {
			return quiz.Result{}, err
		}
		printQuestion(a.out, a.tr, view)

		resolution, expired, err := a.askQuestion(ctx, view)
		if err != nil {
			if errors.Is(err, ErrAbandoned) {
				fmt.Fprintln(a.out)
				fmt.Fprintln(a.out, a.tr.T("quiz_abandoned"))
			}
			return quiz.Result{}, err
		}
		printResolution(a.out, a.tr, resolution, expired)

		if resolution.Complete {
			break
		}
	}

	result, err := a.driver.Result(ctx)
	if err != nil {
		return quiz.Result{}, err
	}
	a.logger.Debug("quiz finished",
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Float64("percentage", result.Percentage),
	)

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, a.tr.Td("final_score", map[string]any{"Summary": result.Summary()}))
	a.offerReview(ctx, result)

	return result, nil
}

// askQuestion waits for either a valid answer or the countdown to expire.
// Invalid letters are rejected by the session and re-prompted.
func (a *app) askQuestion(ctx context.Context, view quiz.Presentation) (quiz.Resolution, bool, error) {
	var ticks <-chan time.Time
	if view.TimeLimit > 0 {
		ticker := time.NewTicker(a.tickInterval)
		defer ticker.Stop()
		ticks = ticker.C
		printRemaining(a.out, a.tr, view.Remaining)
	}

	last := quiz.OptionLetter(len(view.Options) - 1)
	fmt.Fprint(a.out, a.tr.Td("answer_prompt", map[string]any{"Last": last}))

	for {
		select {
		case <-ctx.Done():
			return quiz.Resolution{}, false, ctx.Err()

		case line, ok := <-a.lines:
			if !ok {
				return quiz.Resolution{}, false, ErrAbandoned
			}
			resolution, err := a.driver.Submit(ctx, quiz.ParseOptionLetter(line))
			if errors.Is(err, quiz.ErrInvalidSelection) {
				fmt.Fprintln(a.out, a.tr.Td("invalid_selection", map[string]any{"Last": last}))
				fmt.Fprint(a.out, a.tr.Td("answer_prompt", map[string]any{"Last": last}))
				continue
			}
			return resolution, false, err

		case <-ticks:
			tick, err := a.driver.Tick(ctx)
			if err != nil {
				return quiz.Resolution{}, false, err
			}
			if tick.Expired {
				fmt.Fprintln(a.out)
				return tick.Resolution, true, nil
			}
			if tick.Remaining%10 == 0 || tick.Remaining <= 5 {
				fmt.Fprintln(a.out)
				printRemaining(a.out, a.tr, tick.Remaining)
				fmt.Fprint(a.out, a.tr.Td("answer_prompt", map[string]any{"Last": last}))
			}
		}
	}
}

func (a *app) offerReview(ctx context.Context, result quiz.Result) {
	if len(result.Missed) == 0 {
		fmt.Fprintln(a.out, a.tr.T("perfect_score"))
		return
	}

	for {
		fmt.Fprint(a.out, a.tr.T("review_prompt"))

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return
		case line, ok = <-a.lines:
		}
		if !ok {
			fmt.Fprintln(a.out)
			return
		}

		answer, valid := parseYesNo(line)
		if !valid {
			fmt.Fprintln(a.out, a.tr.T("yes_no_retry"))
			continue
		}
		if answer {
			printReview(a.out, a.tr, result.Missed)
		}
		return
	}
}
