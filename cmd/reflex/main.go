// reflex is a terminal reaction quiz: one of several buttons is marked and
// the player must pick it before the countdown runs out.
//
// Usage:
//
//	reflex play              - Play in this terminal
//	reflex serve             - Start SSH server for remote play
//	reflex presets           - List difficulty presets
//	reflex replays           - Browse stored recordings
//	reflex replay <id>       - Re-simulate a recording
//
// Global flags:
//
//	--fps <rate>          - Set countdown refresh rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible target order
//	--db <path>           - Set database path (default: ~/.reflex/replays.db)
//	--config <path>       - Load a custom quiz config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reflex",
	Short: "TUI Reflex - a reaction quiz in your terminal",
	Long: `TUI Reflex marks one of several buttons and gives you a countdown
to pick it. Correct picks score points, wrong picks cost a life.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  presets  - Show the difficulty presets
  replays  - Browse stored recordings
  replay   - Re-simulate one recording

Examples:
  reflex play
  reflex play --difficulty hard
  reflex serve --ssh :2222
  reflex replays --plain
  reflex replay 3f2a9c1e`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Countdown refresh rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.reflex/replays.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom quiz config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger builds the CLI logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadQuiz loads the quiz config and applies --difficulty when it is set.
// The second result reports whether a preset was chosen on the command line.
func loadQuiz() (config.ReflexConfig, bool, error) {
	cfg, err := config.LoadReflex(flagConfig)
	if err != nil {
		return config.ReflexConfig{}, false, err
	}
	if flagDifficulty == "" {
		return cfg, false, nil
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.ReflexConfig{}, false, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.ReflexConfig{}, false, err
	}
	return cfg, true, nil
}
