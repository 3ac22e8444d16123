package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zkadhem/Quiz-App/internal/config"
	"github.com/zkadhem/Quiz-App/internal/history/sqlite"
	"github.com/zkadhem/Quiz-App/internal/i18n"
	"github.com/zkadhem/Quiz-App/internal/logger"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/quiz"
	"github.com/zkadhem/Quiz-App/internal/remote"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "trivia-quiz",
		Short:        "Timed multiple-choice trivia backed by OpenTriviaDB",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default ./trivia-quiz.yaml)")
	pf.String("env", "local", "Environment (local, production)")
	pf.String("log-level", "", "Log level override (debug, info, warn, error)")
	pf.StringP("lang", "l", "en", "Terminal language (en, ru)")
	pf.String("api-url", opentdb.DefaultBaseURL, "OpenTriviaDB base URL")
	pf.Duration("http-timeout", 10*time.Second, "Timeout for outbound HTTP requests")
	pf.String("history-db", "", "SQLite path for quiz history (empty disables history)")

	play := playCmd()
	root.AddCommand(play, serveCmd(), categoriesCmd(), historyCmd())

	// Bare `trivia-quiz` plays a quiz.
	root.RunE = play.RunE
	root.Flags().AddFlagSet(play.Flags())

	return root
}

// app bundles what every command needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	tr     *i18n.Translator
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tr, err := i18n.New(cfg.Lang, log)
	if err != nil {
		return nil, fmt.Errorf("init i18n: %w", err)
	}

	return &app{cfg: cfg, logger: log, tr: tr}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: a.cfg.HTTPTimeout}
}

func (a *app) questionSource() quiz.Source {
	client := opentdb.NewClient(a.httpClient()).WithBaseURL(a.cfg.APIURL)
	return quiz.NewOpenTDBSource(client.FetchQuestions)
}

func (a *app) openHistory() (*sqlite.SQLiteStore, error) {
	if a.cfg.HistoryDB == "" {
		return nil, nil
	}
	store, err := sqlite.NewSQLiteStore(a.cfg.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	return store, nil
}

// describeError turns transport failures into messages a player can act on.
func describeError(err error, serverURL string) error {
	switch {
	case errors.Is(err, remote.ErrServiceUnavailable):
		return fmt.Errorf("quiz service unavailable at %s", serverURL)
	case errors.Is(err, quiz.ErrSourceUnavailable):
		return fmt.Errorf("could not reach the trivia database, check your connection: %w", err)
	case errors.Is(err, quiz.ErrSourceRejected):
		return fmt.Errorf("the trivia database has no questions for these filters: %w", err)
	case errors.Is(err, quiz.ErrInvalidResponse):
		return fmt.Errorf("the trivia database sent an unexpected response: %w", err)
	default:
		return err
	}
}
