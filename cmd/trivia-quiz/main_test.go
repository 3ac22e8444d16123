package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zkadhem/Quiz-App/internal/quiz"
	"github.com/zkadhem/Quiz-App/internal/remote"
)

func newTriviaServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("amount") != "1" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response_code":0,"results":[{"type":"boolean","difficulty":"easy","category":"General Knowledge","question":"Is this &quot;trivia&quot;?","correct_answer":"Yes","incorrect_answers":[]}]}`)
	}))
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlayRecordsHistory(t *testing.T) {
	trivia := newTriviaServer(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	out, err := execute(t, "A\n",
		"play", "--api-url", trivia.URL, "-n", "1", "-t", "0", "-p", "Alice", "--history-db", dbPath, "--log-level", "error")
	if err != nil {
		t.Fatalf("play failed: %v\n%s", err, out)
	}
	for _, want := range []string{`Is this "trivia"?`, "A. Yes", "✓ Correct!", "Your score: 1/1 (100.0%)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("play output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "", "history", "--history-db", dbPath, "--log-level", "error")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "alice 1/1 (100.0%)") {
		t.Fatalf("history output missing attempt:\n%s", out)
	}

	out, err = execute(t, "", "history", "--leaderboard", "--history-db", dbPath, "--log-level", "error")
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if !strings.Contains(out, "1. alice best=100.0% attempts=1") {
		t.Fatalf("leaderboard output missing entry:\n%s", out)
	}
}

func TestPlayRejectsInvalidFlags(t *testing.T) {
	if _, err := execute(t, "", "play", "-n", "51"); err == nil {
		t.Fatalf("expected amount validation error")
	}
	if _, err := execute(t, "", "play", "-d", "extreme"); err == nil {
		t.Fatalf("expected difficulty validation error")
	}
}

func TestHistoryRequiresDatabase(t *testing.T) {
	if _, err := execute(t, "", "history"); !errors.Is(err, errHistoryNotConfigured) {
		t.Fatalf("expected errHistoryNotConfigured, got %v", err)
	}
}

func TestCategoriesListsCatalog(t *testing.T) {
	out, err := execute(t, "", "categories")
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	if !strings.Contains(out, "  0  Any") || !strings.Contains(out, " 32  Entertainment: Cartoon & Animations") {
		t.Fatalf("unexpected categories output:\n%s", out)
	}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "service", err: fmt.Errorf("%w: dial", remote.ErrServiceUnavailable), want: "quiz service unavailable at http://quiz.test"},
		{name: "unavailable", err: quiz.ErrSourceUnavailable, want: "could not reach the trivia database"},
		{name: "rejected", err: quiz.ErrSourceRejected, want: "no questions for these filters"},
		{name: "invalid", err: quiz.ErrInvalidResponse, want: "unexpected response"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := describeError(tc.err, "http://quiz.test")
			if !strings.Contains(got.Error(), tc.want) {
				t.Fatalf("describeError = %q, want it to contain %q", got, tc.want)
			}
		})
	}

	other := errors.New("other")
	if describeError(other, "") != other {
		t.Fatalf("unrelated errors should pass through")
	}
}
