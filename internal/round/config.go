// Package round implements the reaction quiz rules: a countdown, a set of
// selectable options with one marked target, lives and points.
//
// The engine is a pure state machine. It never renders and never reads input;
// every operation takes a State value and returns the next one together with
// the display effects a presentation surface has to apply.
package round

import (
	"errors"
	"fmt"
	"math"
)

// Config is the immutable configuration of a round.
type Config struct {
	InitialLives           int     `yaml:"lives"`
	TimeLimitSeconds       float64 `yaml:"time_limit"`
	PointsPerCorrectAnswer int     `yaml:"points_per_correct"`
	OptionCount            int     `yaml:"options"`
}

// DefaultConfig returns the layout the quiz was designed around: four buttons,
// three lives and half a minute on the clock.
func DefaultConfig() Config {
	return Config{
		InitialLives:           3,
		TimeLimitSeconds:       30,
		PointsPerCorrectAnswer: 10,
		OptionCount:            4,
	}
}

// Validate reports every field that violates the round rules.
// The returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if c.OptionCount < 2 {
		errs = append(errs, fmt.Errorf("options must be at least 2, got %d", c.OptionCount))
	}
	if c.InitialLives <= 0 {
		errs = append(errs, fmt.Errorf("lives must be positive, got %d", c.InitialLives))
	}
	if !(c.TimeLimitSeconds > 0) || math.IsInf(c.TimeLimitSeconds, 1) {
		errs = append(errs, fmt.Errorf("time limit must be a positive number of seconds, got %v", c.TimeLimitSeconds))
	}
	if c.PointsPerCorrectAnswer < 0 {
		errs = append(errs, fmt.Errorf("points per correct answer must not be negative, got %d", c.PointsPerCorrectAnswer))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
