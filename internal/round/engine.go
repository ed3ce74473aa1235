package round

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
)

var (
	// ErrInvalidConfig is returned when a Config violates the round rules.
	ErrInvalidConfig = errors.New("invalid round config")

	// ErrInvalidTransition is returned when an operation is not allowed in
	// the current phase. The state is left unchanged.
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrInvalidDelta is returned by Tick for negative or NaN deltas.
	ErrInvalidDelta = errors.New("invalid tick delta")
)

// Engine applies the round rules. It holds no round state of its own, only
// the random source targets are drawn from.
type Engine struct {
	src    Source
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transition debugging.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine drawing targets from src.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{
		src:    src,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configure validates cfg and returns a fresh Idle state.
func (e *Engine) Configure(cfg Config) (State, error) {
	if err := cfg.Validate(); err != nil {
		return State{}, fmt.Errorf("round: configure: %w", err)
	}
	return newState(cfg), nil
}

// Start moves an Idle round to Running and chooses the first target.
func (e *Engine) Start(s State) (State, []Effect, error) {
	if s.Phase != PhaseIdle {
		return s, nil, fmt.Errorf("round: start from %s: %w", s.Phase, ErrInvalidTransition)
	}
	// A zero State is Idle too; only configured states may run.
	if err := s.Config.Validate(); err != nil {
		return s, nil, fmt.Errorf("round: start: %w", err)
	}

	s.Phase = PhaseRunning
	s.TimeLeft = s.Config.TimeLimitSeconds
	effects := []Effect{e.nextTour(&s)}

	e.logger.Debug("round started", "target", s.Target, "time_limit", s.TimeLeft)
	return s, effects, nil
}

// Tick advances the countdown by delta seconds.
// Outside the Running phase it returns the state unchanged and no effects.
func (e *Engine) Tick(s State, delta float64) (State, []Effect, error) {
	if delta < 0 || math.IsNaN(delta) {
		return s, nil, fmt.Errorf("round: tick by %v: %w", delta, ErrInvalidDelta)
	}
	if s.Phase != PhaseRunning {
		return s, nil, nil
	}

	consumed := math.Min(delta, s.TimeLeft)
	s.TimeLeft -= consumed
	s.Stats.Elapsed += consumed

	if s.TimeLeft <= 0 {
		s.TimeLeft = 0
		e.end(&s, EndTime)
		return s, []Effect{RoundEnded{FinalScore: s.Points, Reason: EndTime}}, nil
	}
	return s, []Effect{TimeUpdated{SecondsLeft: s.TimeLeft}}, nil
}

// Pick evaluates the player's choice of option id.
// Outside the Running phase it returns the state unchanged and no effects.
func (e *Engine) Pick(s State, id int) (State, []Effect) {
	if s.Phase != PhaseRunning {
		return s, nil
	}

	var effects []Effect
	if id < 0 || id >= s.Config.OptionCount {
		effects = append(effects, UnknownTarget{ID: id})
	}

	if id == s.Target {
		s.Points += s.Config.PointsPerCorrectAnswer
		s.Stats.Hits++
		effects = append(effects, ScoreUpdated{Points: s.Points})
	} else {
		s.Lives--
		s.Stats.Misses++
		if s.Lives <= 0 {
			s.Lives = 0
			e.end(&s, EndLives)
			return s, append(effects, RoundEnded{FinalScore: s.Points, Reason: EndLives})
		}
		effects = append(effects, LivesUpdated{Remaining: s.Lives})
	}

	return s, append(effects, e.nextTour(&s))
}

// Restart discards the round and returns a fresh Idle state with the same
// config. A running round must end before it can be restarted.
func (e *Engine) Restart(s State) (State, error) {
	if s.Phase == PhaseRunning {
		return s, fmt.Errorf("round: restart from %s: %w", s.Phase, ErrInvalidTransition)
	}
	return newState(s.Config), nil
}

// nextTour draws a new target. Repeats of the previous target are allowed.
func (e *Engine) nextTour(s *State) Effect {
	prev := s.Target
	s.Target = e.src.Intn(s.Config.OptionCount)
	s.Stats.Tours++
	return TargetChosen{ID: s.Target, Previous: prev}
}

func (e *Engine) end(s *State, reason EndReason) {
	s.Phase = PhaseEnded
	s.Stats.EndReason = reason
	e.logger.Debug("round ended",
		"reason", reason,
		"points", s.Points,
		"hits", s.Stats.Hits,
		"misses", s.Stats.Misses,
	)
}
