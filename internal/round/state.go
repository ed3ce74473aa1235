package round

// Phase is the coarse lifecycle position of a round.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason records which condition finished a round.
type EndReason int

const (
	EndNone  EndReason = iota // Round still in progress or not started
	EndLives                  // Last life lost on a wrong pick
	EndTime                   // Countdown reached zero
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndLives:
		return "lives"
	case EndTime:
		return "time"
	default:
		return "unknown"
	}
}

// NoTarget marks a state whose first tour has not been chosen yet.
const NoTarget = -1

// Stats are per-round counters kept alongside the rules state.
type Stats struct {
	Hits      int       // Correct picks
	Misses    int       // Wrong or unknown picks
	Tours     int       // Targets chosen so far
	Elapsed   float64   // Seconds consumed by ticks
	EndReason EndReason // Why the round ended
}

// Accuracy returns the share of picks that hit the target, in [0, 1].
func (s Stats) Accuracy() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// State is the full rules state of one round.
// It is a value: engine operations return a modified copy and never
// touch the caller's instance.
type State struct {
	Config   Config
	Phase    Phase
	Lives    int
	Points   int
	TimeLeft float64
	Target   int
	Stats    Stats
}

// newState builds the Idle state for cfg.
func newState(cfg Config) State {
	return State{
		Config:   cfg,
		Phase:    PhaseIdle,
		Lives:    cfg.InitialLives,
		Points:   0,
		TimeLeft: cfg.TimeLimitSeconds,
		Target:   NoTarget,
	}
}

// ActiveTarget returns the current target and whether one has been chosen.
func (s State) ActiveTarget() (int, bool) {
	if s.Target == NoTarget {
		return 0, false
	}
	return s.Target, true
}

// Running reports whether the round accepts ticks and picks.
func (s State) Running() bool {
	return s.Phase == PhaseRunning
}

// Over reports whether the round has ended.
func (s State) Over() bool {
	return s.Phase == PhaseEnded
}
