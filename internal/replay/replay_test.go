package replay

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-reflex/internal/round"
)

// playLive drives a real engine with the same inputs a recorder captures.
// Each entry of hits decides whether the next pick is correct.
func playLive(t *testing.T, seed int64, rec *Recorder, hits []bool) round.State {
	t.Helper()

	e := round.New(round.NewSource(seed))
	s, err := e.Configure(round.DefaultConfig())
	if err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	s, _, err = e.Start(s)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	rec.Start()

	for _, hit := range hits {
		if !s.Running() {
			break
		}
		id := (s.Target + 1) % s.Config.OptionCount
		if hit {
			id = s.Target
		}
		s, _, _ = e.Tick(s, 0.25)
		rec.Tick(0.25)
		s, _ = e.Pick(s, id)
		rec.Pick(id)
	}
	return s
}

func TestRunMatchesLiveRound(t *testing.T) {
	const seed = 42
	rec := NewRecorder(seed, round.DefaultConfig())

	live := playLive(t, seed, rec, []bool{true, false, true, false, false})
	if !live.Over() || live.Points != 20 {
		t.Fatalf("live round = %+v, expected it to end with 20 points", live)
	}

	outcomes, err := Run(rec.Recording(), nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("got %d outcomes, expected 1", len(outcomes))
	}

	got := outcomes[0]
	if got.Points != live.Points || got.Hits != live.Stats.Hits || got.Misses != live.Stats.Misses {
		t.Errorf("replay outcome %+v does not match live round %+v", got, live.Stats)
	}
	if got.Reason != live.Stats.EndReason {
		t.Errorf("Reason = %v, expected %v", got.Reason, live.Stats.EndReason)
	}
}

func TestRunMultipleRounds(t *testing.T) {
	cfg := round.Config{InitialLives: 1, TimeLimitSeconds: 5, PointsPerCorrectAnswer: 10, OptionCount: 4}
	rec := Recording{
		Seed:   7,
		Config: cfg,
		Events: []Event{
			{Kind: KindStart},
			{Kind: KindTick, Delta: 6},
			{Kind: KindRestart},
			{Kind: KindStart},
			{Kind: KindPick, Target: -1},
			{Kind: KindRestart},
			{Kind: KindStart},
			{Kind: KindTick, Delta: 1},
		},
	}

	outcomes, err := Run(rec, nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, expected 2 (last round still running)", len(outcomes))
	}
	if outcomes[0].Reason != round.EndTime {
		t.Errorf("first round reason = %v, expected time", outcomes[0].Reason)
	}
	if outcomes[0].Elapsed != 5 {
		t.Errorf("first round elapsed = %v, expected 5", outcomes[0].Elapsed)
	}
	if outcomes[1].Reason != round.EndLives || outcomes[1].Misses != 1 {
		t.Errorf("second round = %+v, expected one miss ending on lives", outcomes[1])
	}
	if rec.Rounds() != 3 {
		t.Errorf("Rounds() = %d, expected 3", rec.Rounds())
	}
}

func TestRunRejectsBadLog(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		target error
	}{
		{"double start", []Event{{Kind: KindStart}, {Kind: KindStart}}, round.ErrInvalidTransition},
		{"restart while running", []Event{{Kind: KindStart}, {Kind: KindRestart}}, round.ErrInvalidTransition},
		{"negative tick", []Event{{Kind: KindStart}, {Kind: KindTick, Delta: -1}}, round.ErrInvalidDelta},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := Recording{Seed: 1, Config: round.DefaultConfig(), Events: tc.events}
			_, err := Run(rec, nil)
			if !errors.Is(err, tc.target) {
				t.Errorf("Run() error = %v, expected %v", err, tc.target)
			}
		})
	}

	if _, err := Run(Recording{Events: []Event{{Kind: "jump"}}, Config: round.DefaultConfig()}, nil); err == nil {
		t.Error("unknown kind should fail")
	}
	if _, err := Run(Recording{}, nil); !errors.Is(err, round.ErrInvalidConfig) {
		t.Errorf("zero config error = %v, expected ErrInvalidConfig", err)
	}
}

type countingSurface struct {
	marks, gameOvers int
}

func (c *countingSurface) MarkTarget(int) { c.marks++ }
func (c *countingSurface) UnmarkTarget(int) {}
func (c *countingSurface) ShowTime(float64) {}
func (c *countingSurface) ShowScore(int) {}
func (c *countingSurface) ShowLives(int) {}
func (c *countingSurface) ShowGameOver(int) { c.gameOvers++ }

func TestRunAppliesEffects(t *testing.T) {
	rec := Recording{
		Seed:   3,
		Config: round.DefaultConfig(),
		Events: []Event{{Kind: KindStart}, {Kind: KindPick, Target: 9}, {Kind: KindTick, Delta: 100}},
	}

	dst := &countingSurface{}
	if _, err := Run(rec, dst); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if dst.marks != 2 {
		t.Errorf("marks = %d, expected 2 (start and after the miss)", dst.marks)
	}
	if dst.gameOvers != 1 {
		t.Errorf("gameOvers = %d, expected 1", dst.gameOvers)
	}
}

func TestRecorderSnapshot(t *testing.T) {
	rec := NewRecorder(9, round.DefaultConfig())
	rec.Start()
	rec.Pick(2)

	a := rec.Recording()
	rec.Tick(1)
	b := rec.Recording()

	if len(a.Events) != 2 || len(b.Events) != 3 {
		t.Errorf("snapshots have %d and %d events, expected 2 and 3", len(a.Events), len(b.Events))
	}
	if a.ID == b.ID {
		t.Error("each recording should get its own ID")
	}
	if a.Seed != 9 || a.Events[1] != (Event{Kind: KindPick, Target: 2}) {
		t.Errorf("unexpected recording %+v", a)
	}
	if rec.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", rec.Len())
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindStart, KindTick, KindPick, KindRestart} {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = (%q, %v)", k, got, err)
		}
	}
	if _, err := ParseKind("flap"); err == nil {
		t.Error("ParseKind should reject unknown kinds")
	}
}
