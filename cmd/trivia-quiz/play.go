package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zkadhem/Quiz-App/internal/cli"
	"github.com/zkadhem/Quiz-App/internal/config"
	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/quiz"
	"github.com/zkadhem/Quiz-App/internal/remote"
)

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE:  runPlay,
	}
	f := cmd.Flags()
	f.IntP("amount", "n", config.DefaultAmount, "Number of questions (1-50)")
	f.IntP("category", "c", opentdb.AnyCategory, "Category id (0 = any, see `categories`)")
	f.StringP("difficulty", "d", "any", "Difficulty (any, easy, medium, hard)")
	f.IntP("time-limit", "t", config.DefaultTimeLimit, "Seconds per question (0 = untimed)")
	f.StringP("player", "p", "", "Player name recorded in history")
	f.StringP("server", "s", "", "Play on a trivia-quiz server instead of locally")
	return cmd
}

func runPlay(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	req := a.cfg.FetchRequest()

	fmt.Fprintln(out, a.tr.Td("fetching_questions", map[string]any{"Count": req.Amount}))

	var (
		driver cli.Driver
		record func(context.Context, history.Attempt) error
	)
	if a.cfg.Server != "" {
		client := remote.NewClient(a.cfg.Server, a.httpClient())
		session, err := client.StartSession(ctx, req, a.cfg.SessionConfig(), a.cfg.Player)
		if err != nil {
			return describeError(err, client.BaseURL())
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := session.Close(closeCtx); err != nil {
				a.logger.Debug("failed to close remote session", zap.Error(err))
			}
		}()
		driver = session
	} else {
		session, err := quiz.Start(ctx, a.questionSource(), req, a.cfg.SessionConfig())
		if err != nil {
			return describeError(err, "")
		}
		driver = cli.NewLocalDriver(session)

		store, err := a.openHistory()
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
			record = store.SaveAttempt
		}
	}

	result, err := cli.Run(ctx, driver, cmd.InOrStdin(), out, cli.Options{Translator: a.tr, Logger: a.logger})
	if errors.Is(err, cli.ErrAbandoned) || errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return describeError(err, a.cfg.Server)
	}

	if record != nil {
		attempt := history.NewAttempt(a.cfg.Player, req, a.cfg.TimeLimit, result, time.Now())
		if err := record(ctx, attempt); err != nil {
			a.logger.Warn("failed to record attempt", zap.Error(err))
		} else {
			a.logger.Debug("attempt recorded", zap.String("attempt_id", attempt.ID))
		}
	}
	return nil
}
