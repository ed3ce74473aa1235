// Package session serializes the inputs of one player into a round engine.
// Hosts with several event sources (key presses, mouse clicks, timers) talk
// to a Session instead of the engine so every input is evaluated in order.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/replay"
	"github.com/vovakirdan/tui-reflex/internal/round"
)

// Clock supplies wall time for Advance.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Session owns the current round state of one player.
type Session struct {
	mu sync.Mutex

	engine   *round.Engine
	state    round.State
	surface  round.Surface
	clock    Clock
	logger   *log.Logger
	recorder *replay.Recorder

	lastAdvance time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the system clock used by Advance.
func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder records every accepted input.
func WithRecorder(r *replay.Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// New creates a session with an Idle round for cfg.
// Effects are applied to surface; a nil surface discards them.
func New(engine *round.Engine, cfg round.Config, surface round.Surface, opts ...Option) (*Session, error) {
	state, err := engine.Configure(cfg)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		engine:  engine,
		state:   state,
		surface: surface,
		clock:   SystemClock{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins the round. The countdown is measured from this call.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, effects, err := s.engine.Start(s.state)
	if err != nil {
		return err
	}
	s.state = next
	s.lastAdvance = s.clock.Now()
	if s.recorder != nil {
		s.recorder.Start()
	}

	s.logger.Info("round started",
		"lives", next.Lives,
		"time_limit", next.Config.TimeLimitSeconds,
		"options", next.Config.OptionCount,
	)
	s.apply(effects)
	return nil
}

// Pick submits the player's choice. Picks outside a running round are
// ignored and not recorded.
func (s *Session) Pick(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Running() {
		return
	}
	next, effects := s.engine.Pick(s.state, id)
	s.state = next
	if s.recorder != nil {
		s.recorder.Pick(id)
	}
	s.apply(effects)
}

// Tick advances the countdown by delta seconds.
func (s *Session) Tick(delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(delta)
}

// Advance ticks by the wall time elapsed since the previous Advance or,
// for the first call of a round, since Start.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Running() {
		return nil
	}
	now := s.clock.Now()
	delta := now.Sub(s.lastAdvance).Seconds()
	s.lastAdvance = now
	if delta < 0 {
		delta = 0
	}
	return s.tick(delta)
}

// Restart discards a finished round and prepares a new Idle one.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.engine.Restart(s.state)
	if err != nil {
		return err
	}
	s.state = next
	if s.recorder != nil {
		s.recorder.Restart()
	}
	s.logger.Debug("round restarted")
	return nil
}

// Snapshot returns a copy of the current round state.
func (s *Session) Snapshot() round.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Recording returns everything recorded so far.
// ok is false when the session has no recorder or nothing was played.
func (s *Session) Recording() (rec replay.Recording, ok bool) {
	if s.recorder == nil || s.recorder.Len() == 0 {
		return replay.Recording{}, false
	}
	return s.recorder.Recording(), true
}

func (s *Session) tick(delta float64) error {
	if !s.state.Running() {
		// Bad deltas fail in every phase.
		_, _, err := s.engine.Tick(s.state, delta)
		return err
	}

	next, effects, err := s.engine.Tick(s.state, delta)
	if err != nil {
		return err
	}
	s.state = next
	if s.recorder != nil {
		s.recorder.Tick(delta)
	}
	s.apply(effects)
	return nil
}

// apply logs effects and forwards them to the surface. Must hold mu.
func (s *Session) apply(effects []round.Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case round.UnknownTarget:
			s.logger.Warn("pick of unknown target", "id", e.ID, "options", s.state.Config.OptionCount)
		case round.RoundEnded:
			s.logger.Info("round ended",
				"points", e.FinalScore,
				"reason", e.Reason,
				"hits", s.state.Stats.Hits,
				"misses", s.state.Stats.Misses,
				"accuracy", fmt.Sprintf("%.0f%%", s.state.Stats.Accuracy()*100),
			)
		default:
			s.logger.Debug("effect", "effect", e)
		}
	}

	if s.surface != nil {
		round.Apply(s.surface, effects)
	}
}
