package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/zkadhem/Quiz-App/internal/config"
)

func TestNewSelectsPresetByEnv(t *testing.T) {
	dev, err := New(&config.Config{Env: "local"})
	if err != nil {
		t.Fatalf("New(local) failed: %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("development logger should enable debug")
	}

	prod, err := New(&config.Config{Env: "production"})
	if err != nil {
		t.Fatalf("New(production) failed: %v", err)
	}
	if prod.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("production logger should not enable debug")
	}
}

func TestNewAppliesLogLevel(t *testing.T) {
	log, err := New(&config.Config{Env: "local", LogLevel: "warn"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) || !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("log level override not applied")
	}

	if _, err := New(&config.Config{LogLevel: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
