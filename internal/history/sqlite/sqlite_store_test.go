package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/opentdb"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + "-wal")
		_ = os.Remove(path + "-shm")
		_ = os.Remove(path + "-journal")
	})
	return store
}

func sampleAttempt(id, player string, percentage float64, finishedAt time.Time) history.Attempt {
	return history.Attempt{
		ID:         id,
		Player:     player,
		Category:   18,
		Difficulty: opentdb.DifficultyEasy,
		Score:      int(percentage / 10),
		Total:      10,
		Percentage: percentage,
		TimeLimit:  30,
		FinishedAt: finishedAt,
	}
}

func TestSQLiteStoreSaveAndGetAttempt(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	finishedAt := time.Unix(1700000000, 123).UTC()
	attempt := sampleAttempt("attempt-1", " Alice ", 50.0, finishedAt)
	attempt.Missed = []history.MissedQuestion{
		{Prompt: "2+2?", UserAnswer: "3", Answered: true, CorrectAnswer: "4"},
		{Prompt: "Sky color?", CorrectAnswer: "Blue"},
	}

	if err := store.SaveAttempt(ctx, attempt); err != nil {
		t.Fatalf("SaveAttempt failed: %v", err)
	}

	got, err := store.GetAttempt(ctx, "attempt-1")
	if err != nil {
		t.Fatalf("GetAttempt failed: %v", err)
	}
	if got.Player != "alice" || got.Category != 18 || got.Difficulty != opentdb.DifficultyEasy {
		t.Fatalf("unexpected attempt: %+v", got)
	}
	if got.Score != 5 || got.Total != 10 || got.Percentage != 50.0 || got.TimeLimit != 30 {
		t.Fatalf("unexpected score fields: %+v", got)
	}
	if !got.FinishedAt.Equal(finishedAt) {
		t.Fatalf("finished_at = %v, want %v", got.FinishedAt, finishedAt)
	}
	if len(got.Missed) != 2 {
		t.Fatalf("expected 2 missed questions, got %d", len(got.Missed))
	}
	if got.Missed[0] != attempt.Missed[0] || got.Missed[1] != attempt.Missed[1] {
		t.Fatalf("missed order or content not preserved: %+v", got.Missed)
	}

	_, err = store.GetAttempt(ctx, "missing")
	if !errors.Is(err, history.ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}

func TestSQLiteStoreSaveAttemptValidation(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.SaveAttempt(ctx, history.Attempt{Total: 1}); !errors.Is(err, history.ErrInvalidAttempt) {
		t.Fatalf("expected ErrInvalidAttempt for missing id, got %v", err)
	}
	if err := store.SaveAttempt(ctx, history.Attempt{ID: "x"}); !errors.Is(err, history.ErrInvalidAttempt) {
		t.Fatalf("expected ErrInvalidAttempt for zero total, got %v", err)
	}
}

func TestSQLiteStoreSaveAttemptDuplicateIDRollsBack(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first := sampleAttempt("dup", "alice", 80, time.Unix(100, 0))
	if err := store.SaveAttempt(ctx, first); err != nil {
		t.Fatalf("SaveAttempt failed: %v", err)
	}

	second := sampleAttempt("dup", "bob", 10, time.Unix(200, 0))
	second.Missed = []history.MissedQuestion{{Prompt: "p", CorrectAnswer: "c"}}
	if err := store.SaveAttempt(ctx, second); err == nil {
		t.Fatalf("expected primary key violation for duplicate id")
	}

	got, err := store.GetAttempt(ctx, "dup")
	if err != nil {
		t.Fatalf("GetAttempt failed: %v", err)
	}
	if got.Player != "alice" || len(got.Missed) != 0 {
		t.Fatalf("duplicate save leaked rows: %+v", got)
	}
}

func TestSQLiteStoreListAttempts(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	for idx := 0; idx < 12; idx++ {
		attempt := sampleAttempt(fmt.Sprintf("attempt-%02d", idx), "alice", 70, time.Unix(int64(100+idx), 0))
		if err := store.SaveAttempt(ctx, attempt); err != nil {
			t.Fatalf("SaveAttempt #%d failed: %v", idx, err)
		}
	}

	// limit<=0 defaults to 10 rows.
	recent, err := store.ListAttempts(ctx, 0)
	if err != nil {
		t.Fatalf("ListAttempts default failed: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected default 10 attempts, got %d", len(recent))
	}
	if recent[0].ID != "attempt-11" {
		t.Fatalf("expected newest attempt first, got %q", recent[0].ID)
	}
	for idx := 1; idx < len(recent); idx++ {
		if recent[idx-1].FinishedAt.Before(recent[idx].FinishedAt) {
			t.Fatalf("attempts not sorted desc by finished_at: %+v", recent)
		}
	}

	top3, err := store.ListAttempts(ctx, 3)
	if err != nil {
		t.Fatalf("ListAttempts(3) failed: %v", err)
	}
	if len(top3) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(top3))
	}
}

func TestSQLiteStoreLeaderboardOrdering(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	seed := []history.Attempt{
		sampleAttempt("b1", "bob", 90, time.Unix(400, 0)),
		sampleAttempt("b2", "bob", 40, time.Unix(500, 0)),
		sampleAttempt("a1", "alice", 60, time.Unix(100, 0)),
		sampleAttempt("a2", "alice", 90, time.Unix(200, 0)),
		sampleAttempt("c1", "carol", 50, time.Unix(600, 0)),
		sampleAttempt("d1", "dave", 50, time.Unix(600, 0)),
	}
	for _, attempt := range seed {
		if err := store.SaveAttempt(ctx, attempt); err != nil {
			t.Fatalf("SaveAttempt(%s) failed: %v", attempt.ID, err)
		}
	}

	board, err := store.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board) != 4 {
		t.Fatalf("expected 4 leaderboard rows, got %d", len(board))
	}

	// Best: alice=90 (at 200), bob=90 (at 400), carol=50, dave=50 (same time).
	wantOrder := []string{"alice", "bob", "carol", "dave"}
	for idx := range wantOrder {
		if board[idx].Player != wantOrder[idx] {
			t.Fatalf("unexpected leaderboard order at %d: %+v", idx, board)
		}
	}
	if board[0].Attempts != 2 || board[0].BestPercentage != 90 || !board[0].BestAt.Equal(time.Unix(200, 0)) {
		t.Fatalf("unexpected alice entry: %+v", board[0])
	}

	top1, err := store.Leaderboard(ctx, 1)
	if err != nil {
		t.Fatalf("Leaderboard(1) failed: %v", err)
	}
	if len(top1) != 1 || top1[0].Player != "alice" {
		t.Fatalf("unexpected limited leaderboard: %+v", top1)
	}
}
