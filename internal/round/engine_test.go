package round

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func scenarioConfig() Config {
	return Config{
		InitialLives:           3,
		TimeLimitSeconds:       30,
		PointsPerCorrectAnswer: 10,
		OptionCount:            4,
	}
}

// startedRound returns an engine with a fixed target sequence and a Running state.
func startedRound(t *testing.T, draws ...int) (*Engine, State) {
	t.Helper()

	e := New(NewSequence(draws...))
	s, err := e.Configure(scenarioConfig())
	if err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	s, _, err = e.Start(s)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return e, s
}

func checkInvariants(t *testing.T, s State) {
	t.Helper()

	if s.Lives < 0 || s.Lives > s.Config.InitialLives {
		t.Fatalf("lives %d outside [0, %d]", s.Lives, s.Config.InitialLives)
	}
	if s.TimeLeft < 0 || s.TimeLeft > s.Config.TimeLimitSeconds {
		t.Fatalf("time left %v outside [0, %v]", s.TimeLeft, s.Config.TimeLimitSeconds)
	}
	if s.Points < 0 {
		t.Fatalf("points %d negative", s.Points)
	}
	if s.Target != NoTarget && (s.Target < 0 || s.Target >= s.Config.OptionCount) {
		t.Fatalf("target %d outside [0, %d)", s.Target, s.Config.OptionCount)
	}
}

func TestConfigure(t *testing.T) {
	e := New(NewSequence())

	s, err := e.Configure(scenarioConfig())
	if err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %s, expected idle", s.Phase)
	}
	if s.Lives != 3 || s.Points != 0 || s.TimeLeft != 30 {
		t.Errorf("unexpected fresh state: %+v", s)
	}
	if _, ok := s.ActiveTarget(); ok {
		t.Error("fresh state should have no active target")
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"one option", Config{InitialLives: 3, TimeLimitSeconds: 30, OptionCount: 1}},
		{"zero lives", Config{InitialLives: 0, TimeLimitSeconds: 30, OptionCount: 4}},
		{"negative lives", Config{InitialLives: -1, TimeLimitSeconds: 30, OptionCount: 4}},
		{"zero time", Config{InitialLives: 3, TimeLimitSeconds: 0, OptionCount: 4}},
		{"negative points", Config{InitialLives: 3, TimeLimitSeconds: 30, PointsPerCorrectAnswer: -5, OptionCount: 4}},
		{"zero value", Config{}},
	}

	e := New(NewSequence())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Configure(tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Configure(%+v) error = %v, expected ErrInvalidConfig", tt.cfg, err)
			}
		})
	}
}

// Scenario A: start yields a running round with a full clock and a target.
func TestStart(t *testing.T) {
	e := New(NewSequence(2))
	s, _ := e.Configure(scenarioConfig())

	s, effects, err := e.Start(s)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.Phase != PhaseRunning {
		t.Errorf("Phase = %s, expected running", s.Phase)
	}
	if s.TimeLeft != 30 {
		t.Errorf("TimeLeft = %v, expected 30", s.TimeLeft)
	}
	id, ok := s.ActiveTarget()
	if !ok || id != 2 {
		t.Errorf("ActiveTarget() = (%d, %v), expected (2, true)", id, ok)
	}

	want := []Effect{TargetChosen{ID: 2, Previous: NoTarget}}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %v, expected %v", effects, want)
	}
}

func TestStartOnlyFromIdle(t *testing.T) {
	e, s := startedRound(t, 1)

	next, effects, err := e.Start(s)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Start() while running error = %v, expected ErrInvalidTransition", err)
	}
	if effects != nil {
		t.Errorf("rejected Start should emit no effects, got %v", effects)
	}
	if !reflect.DeepEqual(next, s) {
		t.Error("rejected Start should leave the state unchanged")
	}
}

func TestStartZeroState(t *testing.T) {
	e := New(NewSequence())
	if _, _, err := e.Start(State{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Start(State{}) error = %v, expected ErrInvalidConfig", err)
	}
}

// Scenario B: a correct pick scores and moves to a new target.
func TestPickCorrect(t *testing.T) {
	e, s := startedRound(t, 1, 3)

	s, effects := e.Pick(s, 1)

	if s.Points != 10 {
		t.Errorf("Points = %d, expected 10", s.Points)
	}
	if s.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", s.Lives)
	}
	if s.Phase != PhaseRunning {
		t.Errorf("Phase = %s, expected running", s.Phase)
	}

	want := []Effect{
		ScoreUpdated{Points: 10},
		TargetChosen{ID: 3, Previous: 1},
	}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %v, expected %v", effects, want)
	}
	if s.Stats.Hits != 1 || s.Stats.Tours != 2 {
		t.Errorf("Stats = %+v, expected 1 hit over 2 tours", s.Stats)
	}
}

func TestPickWrongCostsLifeAndAdvances(t *testing.T) {
	e, s := startedRound(t, 0, 2)

	s, effects := e.Pick(s, 3)

	want := []Effect{
		LivesUpdated{Remaining: 2},
		TargetChosen{ID: 2, Previous: 0},
	}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %v, expected %v", effects, want)
	}
	if s.Points != 0 {
		t.Errorf("Points = %d, expected 0", s.Points)
	}
}

// Scenario C: three misses end the round without a new target.
func TestPickThreeMissesEndsRound(t *testing.T) {
	e, s := startedRound(t, 0)

	var effects []Effect
	for i := 0; i < 3; i++ {
		s, effects = e.Pick(s, 1)
	}

	if s.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", s.Lives)
	}
	if s.Phase != PhaseEnded {
		t.Errorf("Phase = %s, expected ended", s.Phase)
	}
	if s.Stats.EndReason != EndLives {
		t.Errorf("EndReason = %s, expected lives", s.Stats.EndReason)
	}

	want := []Effect{RoundEnded{FinalScore: 0, Reason: EndLives}}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("final effects = %v, expected %v", effects, want)
	}
}

func TestPickUnknownTargetIsMiss(t *testing.T) {
	e, s := startedRound(t, 0, 1)

	for _, id := range []int{-1, 4, 100} {
		t.Run("", func(t *testing.T) {
			_, effects := e.Pick(s, id)
			if len(effects) == 0 {
				t.Fatal("expected effects")
			}
			if effects[0] != (UnknownTarget{ID: id}) {
				t.Errorf("first effect = %v, expected UnknownTarget{%d}", effects[0], id)
			}
			if effects[1] != (LivesUpdated{Remaining: 2}) {
				t.Errorf("second effect = %v, expected LivesUpdated{2}", effects[1])
			}
		})
	}
}

func TestPickIgnoredOutsideRunning(t *testing.T) {
	e := New(NewSequence())
	idle, _ := e.Configure(scenarioConfig())

	s, effects := e.Pick(idle, 0)
	if effects != nil || !reflect.DeepEqual(s, idle) {
		t.Error("Pick while idle should be a no-op")
	}

	e, running := startedRound(t, 0)
	ended, _, _ := e.Tick(running, 30)
	s, effects = e.Pick(ended, 0)
	if effects != nil || !reflect.DeepEqual(s, ended) {
		t.Error("Pick after the round ended should be a no-op")
	}
}

func TestPickTargetMayRepeat(t *testing.T) {
	e, s := startedRound(t, 2, 2, 2)

	s, effects := e.Pick(s, 2)
	if effects[1] != (TargetChosen{ID: 2, Previous: 2}) {
		t.Errorf("effect = %v, expected repeated target 2", effects[1])
	}
	s, _ = e.Pick(s, 2)
	if s.Points != 20 {
		t.Errorf("Points = %d, expected 20", s.Points)
	}
}

func TestTick(t *testing.T) {
	e, s := startedRound(t, 0)

	s, effects, err := e.Tick(s, 0.5)
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if s.TimeLeft != 29.5 {
		t.Errorf("TimeLeft = %v, expected 29.5", s.TimeLeft)
	}
	want := []Effect{TimeUpdated{SecondsLeft: 29.5}}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %v, expected %v", effects, want)
	}
}

// Scenario D: one tick of the whole time limit ends the round.
func TestTickEndsRound(t *testing.T) {
	e, s := startedRound(t, 0)

	s, effects, err := e.Tick(s, 30.0)
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if s.TimeLeft != 0 {
		t.Errorf("TimeLeft = %v, expected 0", s.TimeLeft)
	}
	if s.Phase != PhaseEnded {
		t.Errorf("Phase = %s, expected ended", s.Phase)
	}
	want := []Effect{RoundEnded{FinalScore: 0, Reason: EndTime}}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %v, expected %v", effects, want)
	}
}

func TestTickClampsOvershoot(t *testing.T) {
	e, s := startedRound(t, 0)

	s, _, _ = e.Tick(s, 500)
	if s.TimeLeft != 0 {
		t.Errorf("TimeLeft = %v, expected clamp to 0", s.TimeLeft)
	}
	if s.Stats.Elapsed != 30 {
		t.Errorf("Elapsed = %v, expected 30", s.Stats.Elapsed)
	}
}

// Scenario E: ticking an idle round does nothing.
func TestTickIdle(t *testing.T) {
	e := New(NewSequence())
	idle, _ := e.Configure(scenarioConfig())

	s, effects, err := e.Tick(idle, 1)
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if effects != nil {
		t.Errorf("effects = %v, expected none", effects)
	}
	if !reflect.DeepEqual(s, idle) {
		t.Error("Tick while idle should not change state")
	}
}

func TestTickZeroIsIdempotent(t *testing.T) {
	e, s := startedRound(t, 0)
	s, _, _ = e.Tick(s, 3)
	before := s

	for i := 0; i < 10; i++ {
		var err error
		s, _, err = e.Tick(s, 0)
		if err != nil {
			t.Fatalf("Tick(0) failed: %v", err)
		}
	}

	if s.TimeLeft != before.TimeLeft || s.Lives != before.Lives || s.Points != before.Points {
		t.Errorf("Tick(0) changed state: before %+v, after %+v", before, s)
	}
}

func TestTickRejectsBadDelta(t *testing.T) {
	e, s := startedRound(t, 0)

	for _, d := range []float64{-0.1, math.NaN()} {
		next, effects, err := e.Tick(s, d)
		if !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Tick(%v) error = %v, expected ErrInvalidDelta", d, err)
		}
		if effects != nil || !reflect.DeepEqual(next, s) {
			t.Errorf("Tick(%v) should leave the state unchanged", d)
		}
	}
}

// Scenario F: restart after the round ended returns a fresh idle state.
func TestRestart(t *testing.T) {
	e, s := startedRound(t, 0, 0)
	s, _ = e.Pick(s, 0)
	s, _, _ = e.Tick(s, 30)

	s, err := e.Restart(s)
	if err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}

	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %s, expected idle", s.Phase)
	}
	if s.Lives != 3 || s.Points != 0 || s.TimeLeft != 30 {
		t.Errorf("Restart should reset counters, got %+v", s)
	}
	if _, ok := s.ActiveTarget(); ok {
		t.Error("Restart should clear the target")
	}
	if s.Stats != (Stats{}) {
		t.Errorf("Restart should clear stats, got %+v", s.Stats)
	}
}

func TestRestartWhileRunningRejected(t *testing.T) {
	e, s := startedRound(t, 0)

	next, err := e.Restart(s)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Restart() while running error = %v, expected ErrInvalidTransition", err)
	}
	if !reflect.DeepEqual(next, s) {
		t.Error("rejected Restart should leave the state unchanged")
	}
}

func TestRestartFromIdle(t *testing.T) {
	e := New(NewSequence())
	idle, _ := e.Configure(scenarioConfig())

	s, err := e.Restart(idle)
	if err != nil {
		t.Fatalf("Restart() from idle failed: %v", err)
	}
	if !reflect.DeepEqual(s, idle) {
		t.Errorf("Restart from idle = %+v, expected %+v", s, idle)
	}
}

// TestRandomWalkInvariants drives the engine with random input and checks
// value and phase invariants after every operation.
func TestRandomWalkInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := New(NewSource(99))
	s, _ := e.Configure(scenarioConfig())

	allowed := map[[2]Phase]bool{
		{PhaseIdle, PhaseIdle}:       true,
		{PhaseIdle, PhaseRunning}:    true,
		{PhaseRunning, PhaseRunning}: true,
		{PhaseRunning, PhaseEnded}:   true,
		{PhaseEnded, PhaseEnded}:     true,
		{PhaseEnded, PhaseIdle}:      true,
	}

	for i := 0; i < 5000; i++ {
		prev := s
		switch rng.Intn(4) {
		case 0:
			s, _, _ = e.Start(s)
		case 1:
			s, _, _ = e.Tick(s, rng.Float64()*2)
		case 2:
			s, _ = e.Pick(s, rng.Intn(6)-1)
		case 3:
			s, _ = e.Restart(s)
		}

		checkInvariants(t, s)
		if !allowed[[2]Phase{prev.Phase, s.Phase}] {
			t.Fatalf("step %d: transition %s -> %s not allowed", i, prev.Phase, s.Phase)
		}
		if prev.Phase == s.Phase && s.Phase == PhaseRunning && s.Points < prev.Points {
			t.Fatalf("step %d: points decreased from %d to %d", i, prev.Points, s.Points)
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []State {
		e := New(NewSequence(3, 1, 0, 2, 2, 1))
		s, _ := e.Configure(scenarioConfig())
		s, _, _ = e.Start(s)

		states := []State{s}
		for i, id := range []int{3, 0, 0, 2, 1, 1, 1} {
			s, _, _ = e.Tick(s, 0.25*float64(i))
			s, _ = e.Pick(s, id)
			states = append(states, s)
		}
		return states
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ:\n%v\n%v", first, second)
	}
}

func TestNewSourceDeterministic(t *testing.T) {
	a, b := NewSource(42), NewSource(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Intn(4), b.Intn(4); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(1, 5, -1)

	got := []int{s.Intn(4), s.Intn(4), s.Intn(4), s.Intn(4)}
	want := []int{1, 1, 3, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("draws = %v, expected %v", got, want)
	}
	if s.Draws() != 4 {
		t.Errorf("Draws() = %d, expected 4", s.Draws())
	}
}
