package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/platform/tui"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the quiz in this terminal",
	Long: `Start the reaction quiz in this terminal.

Without --difficulty a preset picker is shown first. Every session is
recorded so it can be replayed later with 'reflex replay'.

Controls:
  1-9          - Pick an option (keys come from the config)
  Mouse        - Click an option
  Enter/Space  - Start the round
  R            - Restart (after game over)
  Esc/B        - Back to the preset picker
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  reflex play
  reflex play --difficulty easy
  reflex play --seed 42 --difficulty fixed
  reflex play --config ./my-reflex.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	quiz, fromFlag, err := loadQuiz()
	if err != nil {
		return err
	}

	// Get terminal size early for the preset picker
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog, err := openPlayLog()
	if err != nil {
		return err
	}
	defer closeLog()

	// Open recordings storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open recordings database: %v\n", err)
		// Continue without storage - the quiz still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	for {
		game := quiz
		if !fromFlag {
			selected, menuErr := tui.RunMenu(quiz, width, height)
			if menuErr != nil {
				return fmt.Errorf("menu error: %w", menuErr)
			}
			if selected == nil {
				return nil
			}
			game = *selected
		}

		backToMenu, runErr := tui.Run(game, store, cfg, logger)
		if runErr != nil {
			return fmt.Errorf("error running quiz: %w", runErr)
		}
		if !backToMenu {
			return nil
		}

		// Only the first session uses the --seed value
		cfg.Seed = 0
		fromFlag = false
	}
}

// openPlayLog sends logs to ~/.reflex/reflex.log so the alternate screen
// stays clean. Falls back to discarding logs when the file cannot be opened.
func openPlayLog() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}

	path := filepath.Join(home, ".reflex", "reflex.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		logger, lerr := newLogger(io.Discard, "reflex")
		return logger, func() {}, lerr
	}

	logger, err := newLogger(f, "reflex")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
