// Package replay records the inputs of a quiz session and re-simulates them.
// A recording holds only the seed, the round config and the input log;
// outcomes are always recomputed by running the engine again.
package replay

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-reflex/internal/round"
)

// Kind identifies a recorded input.
type Kind string

const (
	KindStart   Kind = "start"
	KindTick    Kind = "tick"
	KindPick    Kind = "pick"
	KindRestart Kind = "restart"
)

// ParseKind converts a stored kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindStart, KindTick, KindPick, KindRestart:
		return k, nil
	}
	return "", fmt.Errorf("replay: unknown event kind %q", s)
}

// Event is one accepted input. Delta is set for ticks, Target for picks.
type Event struct {
	Kind   Kind
	Delta  float64
	Target int
}

// Recording is a complete, replayable session.
type Recording struct {
	ID        uuid.UUID
	Seed      int64
	Config    round.Config
	Events    []Event
	CreatedAt time.Time
}

// Rounds returns how many rounds were started in the recording.
func (r Recording) Rounds() int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind == KindStart {
			n++
		}
	}
	return n
}

// Recorder captures the inputs accepted by a session.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	seed   int64
	config round.Config
	events []Event
}

// NewRecorder creates a recorder for a session whose engine draws from
// round.NewSource(seed).
func NewRecorder(seed int64, cfg round.Config) *Recorder {
	return &Recorder{seed: seed, config: cfg}
}

// Start records a round start.
func (r *Recorder) Start() {
	r.add(Event{Kind: KindStart})
}

// Tick records a countdown advance.
func (r *Recorder) Tick(delta float64) {
	r.add(Event{Kind: KindTick, Delta: delta})
}

// Pick records a pick of option id.
func (r *Recorder) Pick(id int) {
	r.add(Event{Kind: KindPick, Target: id})
}

// Restart records a restart.
func (r *Recorder) Restart() {
	r.add(Event{Kind: KindRestart})
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Recording returns a snapshot of everything recorded so far under a new ID.
func (r *Recorder) Recording() Recording {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Recording{
		ID:        uuid.New(),
		Seed:      r.seed,
		Config:    r.config,
		Events:    append([]Event(nil), r.events...),
		CreatedAt: time.Now().UTC(),
	}
}

func (r *Recorder) add(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}
