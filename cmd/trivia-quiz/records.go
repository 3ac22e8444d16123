package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
	"github.com/zkadhem/Quiz-App/internal/remote"
)

const defaultRecordLimit = 10

var errHistoryNotConfigured = errors.New("history is disabled: set --history-db or TRIVIA_HISTORY_DB")

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the question categories",
		RunE:  runCategories,
	}
	cmd.Flags().StringP("server", "s", "", "Read categories from a trivia-quiz server")
	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	categories := opentdb.Categories()
	if a.cfg.Server != "" {
		client := remote.NewClient(a.cfg.Server, a.httpClient())
		if categories, err = client.Categories(cmd.Context()); err != nil {
			return describeError(err, client.BaseURL())
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%3d  %s\n", opentdb.AnyCategory, opentdb.CategoryName(opentdb.AnyCategory))
	for _, category := range categories {
		fmt.Fprintf(out, "%3d  %s\n", category.ID, category.Name)
	}
	return nil
}

// historySource is the read side of history shared by the local store and a
// remote server.
type historySource interface {
	ListAttempts(ctx context.Context, limit int) ([]history.Attempt, error)
	Leaderboard(ctx context.Context, limit int) ([]history.LeaderboardEntry, error)
}

type remoteHistory struct {
	client *remote.Client
}

func (r remoteHistory) ListAttempts(ctx context.Context, limit int) ([]history.Attempt, error) {
	return r.client.History(ctx, limit)
}

func (r remoteHistory) Leaderboard(ctx context.Context, limit int) ([]history.LeaderboardEntry, error) {
	return r.client.Leaderboard(ctx, limit)
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent quiz attempts or the leaderboard",
		RunE:  runHistory,
	}
	f := cmd.Flags()
	f.Int("limit", defaultRecordLimit, "Maximum rows to show")
	f.Bool("leaderboard", false, "Show best score per player instead of recent attempts")
	f.StringP("server", "s", "", "Read history from a trivia-quiz server")
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	limit, _ := cmd.Flags().GetInt("limit")
	leaderboard, _ := cmd.Flags().GetBool("leaderboard")

	var source historySource
	serverURL := ""
	if a.cfg.Server != "" {
		client := remote.NewClient(a.cfg.Server, a.httpClient())
		serverURL = client.BaseURL()
		source = remoteHistory{client: client}
	} else {
		store, err := a.openHistory()
		if err != nil {
			return err
		}
		if store == nil {
			return errHistoryNotConfigured
		}
		defer store.Close()
		source = store
	}

	out := cmd.OutOrStdout()
	if leaderboard {
		entries, err := source.Leaderboard(cmd.Context(), limit)
		if err != nil {
			return describeError(err, serverURL)
		}
		printLeaderboard(out, entries)
		return nil
	}

	attempts, err := source.ListAttempts(cmd.Context(), limit)
	if err != nil {
		return describeError(err, serverURL)
	}
	printAttempts(out, attempts)
	return nil
}

func printAttempts(out io.Writer, attempts []history.Attempt) {
	if len(attempts) == 0 {
		fmt.Fprintln(out, "No attempts recorded yet.")
		return
	}

	fmt.Fprintln(out, "Recent attempts:")
	for idx, attempt := range attempts {
		fmt.Fprintf(out, "%d. %s %s %d/%d (%.1f%%) category=%s difficulty=%s\n",
			idx+1,
			attempt.FinishedAt.Local().Format(time.DateTime),
			attempt.Player,
			attempt.Score,
			attempt.Total,
			attempt.Percentage,
			opentdb.CategoryName(attempt.Category),
			attempt.Difficulty,
		)
	}
}

func printLeaderboard(out io.Writer, entries []history.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No leaderboard entries yet.")
		return
	}

	fmt.Fprintln(out, "Leaderboard:")
	for idx, entry := range entries {
		fmt.Fprintf(out, "%d. %s best=%.1f%% attempts=%d reached=%s\n",
			idx+1,
			entry.Player,
			entry.BestPercentage,
			entry.Attempts,
			entry.BestAt.Local().Format(time.DateTime),
		)
	}
}
