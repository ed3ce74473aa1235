package replay

import (
	"fmt"

	"github.com/vovakirdan/tui-reflex/internal/round"
)

// Outcome summarizes one finished round of a replay.
type Outcome struct {
	Points  int
	Hits    int
	Misses  int
	Elapsed float64
	Reason  round.EndReason
}

// Run re-simulates rec with a fresh engine seeded like the recorded one.
// Effects are applied to dst when it is not nil. One Outcome is returned
// per round that ended; a round still running at the end of the log is
// not reported.
func Run(rec Recording, dst round.Surface) ([]Outcome, error) {
	engine := round.New(round.NewSource(rec.Seed))

	s, err := engine.Configure(rec.Config)
	if err != nil {
		return nil, fmt.Errorf("replay: %s: %w", rec.ID, err)
	}

	var outcomes []Outcome
	for i, ev := range rec.Events {
		var effects []round.Effect
		wasRunning := s.Running()

		switch ev.Kind {
		case KindStart:
			s, effects, err = engine.Start(s)
		case KindTick:
			s, effects, err = engine.Tick(s, ev.Delta)
		case KindPick:
			s, effects = engine.Pick(s, ev.Target)
		case KindRestart:
			s, err = engine.Restart(s)
		default:
			err = fmt.Errorf("unknown event kind %q", ev.Kind)
		}
		if err != nil {
			return outcomes, fmt.Errorf("replay: %s: event %d (%s): %w", rec.ID, i, ev.Kind, err)
		}

		if dst != nil {
			round.Apply(dst, effects)
		}
		if wasRunning && s.Over() {
			outcomes = append(outcomes, Outcome{
				Points:  s.Points,
				Hits:    s.Stats.Hits,
				Misses:  s.Stats.Misses,
				Elapsed: s.Stats.Elapsed,
				Reason:  s.Stats.EndReason,
			})
		}
	}

	return outcomes, nil
}
