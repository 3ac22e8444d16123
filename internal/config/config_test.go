package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/zkadhem/Quiz-App/internal/opentdb"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.Int("amount", DefaultAmount, "")
	flags.Int("category", opentdb.AnyCategory, "")
	flags.String("difficulty", "any", "")
	flags.Int("time-limit", DefaultTimeLimit, "")
	if err := flags.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "local" || cfg.Lang != "en" || cfg.Addr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.APIURL != opentdb.DefaultBaseURL || cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected api defaults: %+v", cfg)
	}
	if cfg.Amount != DefaultAmount || cfg.TimeLimit != DefaultTimeLimit || cfg.HistoryDB != "" {
		t.Fatalf("unexpected quiz defaults: %+v", cfg)
	}

	req := cfg.FetchRequest()
	if req.Amount != DefaultAmount || req.Category != opentdb.AnyCategory || req.Difficulty != opentdb.DifficultyAny {
		t.Fatalf("unexpected fetch request: %+v", req)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("TRIVIA_AMOUNT", "5")
	t.Setenv("TRIVIA_TIME_LIMIT", "12")
	t.Setenv("TRIVIA_HISTORY_DB", "/tmp/history.db")

	cfg, err := Load(newFlags(t, "--amount=7", "--difficulty=Hard"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Amount != 7 {
		t.Fatalf("amount = %d, want flag value 7", cfg.Amount)
	}
	if cfg.TimeLimit != 12 {
		t.Fatalf("time limit = %d, want env value 12", cfg.TimeLimit)
	}
	if cfg.HistoryDB != "/tmp/history.db" {
		t.Fatalf("history db = %q", cfg.HistoryDB)
	}
	if cfg.FetchRequest().Difficulty != opentdb.DifficultyHard {
		t.Fatalf("difficulty = %q, want hard", cfg.FetchRequest().Difficulty)
	}
	if cfg.SessionConfig().TimeLimit != 12 {
		t.Fatalf("session config = %+v", cfg.SessionConfig())
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trivia-quiz.yaml")
	content := "amount: 3\ncategory: 22\nlang: ru\nhttp-timeout: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(newFlags(t, "--config="+path))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Amount != 3 || cfg.Category != 22 || cfg.Lang != "ru" || cfg.HTTPTimeout != 2*time.Second {
		t.Fatalf("config file not applied: %+v", cfg)
	}
}

func TestLoadMissingExplicitConfigFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Load(newFlags(t, "--config="+path)); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		APIURL:      opentdb.DefaultBaseURL,
		HTTPTimeout: time.Second,
		Amount:      10,
		Difficulty:  "easy",
		TimeLimit:   30,
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "amount too small", mutate: func(c *Config) { c.Amount = 0 }},
		{name: "amount too large", mutate: func(c *Config) { c.Amount = 51 }},
		{name: "unknown category", mutate: func(c *Config) { c.Category = 8 }},
		{name: "bad difficulty", mutate: func(c *Config) { c.Difficulty = "extreme" }},
		{name: "negative time limit", mutate: func(c *Config) { c.TimeLimit = -1 }},
		{name: "zero http timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }},
		{name: "empty api url", mutate: func(c *Config) { c.APIURL = " " }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
