package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoadQuizDifficulty(t *testing.T) {
	defer func() { flagDifficulty = "" }()

	flagDifficulty = "hard"
	cfg, fromFlag, err := loadQuiz()
	if err != nil {
		t.Fatalf("loadQuiz() failed: %v", err)
	}
	if !fromFlag {
		t.Error("a --difficulty value should skip the picker")
	}
	if cfg.Round.Lives != 2 || cfg.Round.TimeLimit != 15 {
		t.Errorf("hard preset = %+v", cfg.Round)
	}

	flagDifficulty = "brutal"
	if _, _, err := loadQuiz(); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	defer func() { flagLogLevel = "info" }()

	var buf bytes.Buffer
	flagLogLevel = "warn"
	logger, err := newLogger(&buf, "reflex")
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected log output %q", buf.String())
	}

	flagLogLevel = "loud"
	if _, err := newLogger(&buf, "reflex"); err == nil {
		t.Error("unknown level should fail")
	}
}
