// Package config provides YAML-based quiz configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-reflex/internal/round"
)

// ReflexConfig contains all configuration for the reaction quiz.
type ReflexConfig struct {
	Round RoundConfig `yaml:"round"`
	Keys  []string    `yaml:"keys"` // Key per option, in option order
}

// RoundConfig mirrors round.Config with YAML names.
type RoundConfig struct {
	Lives            int     `yaml:"lives"`
	TimeLimit        float64 `yaml:"time_limit"`       // Seconds
	PointsPerCorrect int     `yaml:"points_per_correct"`
	Options          int     `yaml:"options"`
}

// ToRound converts the YAML section into the engine's config.
func (c ReflexConfig) ToRound() round.Config {
	return round.Config{
		InitialLives:           c.Round.Lives,
		TimeLimitSeconds:       c.Round.TimeLimit,
		PointsPerCorrectAnswer: c.Round.PointsPerCorrect,
		OptionCount:            c.Round.Options,
	}
}

// Validate checks the round rules and that every option has a distinct key.
func (c ReflexConfig) Validate() error {
	if err := c.ToRound().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(c.Keys) < c.Round.Options {
		return fmt.Errorf("config: %d options need %d keys, got %d", c.Round.Options, c.Round.Options, len(c.Keys))
	}
	seen := make(map[string]bool, len(c.Keys))
	for _, k := range c.Keys[:c.Round.Options] {
		if k == "" {
			return errors.New("config: empty option key")
		}
		if seen[k] {
			return fmt.Errorf("config: key %q bound to more than one option", k)
		}
		seen[k] = true
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. Empty means fixed (config as loaded).
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyFixed, nil
	}
	for _, p := range Presets() {
		if DifficultyPreset(name) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// Describe returns a one-line summary of what the preset changes.
func (p DifficultyPreset) Describe() string {
	switch p {
	case DifficultyEasy:
		return "5 lives, 45 seconds"
	case DifficultyNormal:
		return "3 lives, 30 seconds"
	case DifficultyHard:
		return "2 lives, 15 seconds"
	default:
		return "settings from the config file"
	}
}
