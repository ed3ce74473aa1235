package round

import "fmt"

// Effect is a display update produced by an engine operation.
// The set of effects is closed; use a type switch or Apply to consume them.
type Effect interface {
	fmt.Stringer
	effect()
}

// TargetChosen asks the surface to mark option ID.
// Previous is the option to unmark, or NoTarget on the first tour.
type TargetChosen struct {
	ID       int
	Previous int
}

// TimeUpdated carries the remaining countdown in seconds.
type TimeUpdated struct {
	SecondsLeft float64
}

// ScoreUpdated carries the new point total.
type ScoreUpdated struct {
	Points int
}

// LivesUpdated carries the number of lives left after a miss.
type LivesUpdated struct {
	Remaining int
}

// RoundEnded carries the final score.
type RoundEnded struct {
	FinalScore int
	Reason     EndReason
}

// UnknownTarget reports a pick outside the option range.
// The pick still counts as a miss; hosts log it as an anomaly.
type UnknownTarget struct {
	ID int
}

func (TargetChosen) effect()  {}
func (TimeUpdated) effect()   {}
func (ScoreUpdated) effect()  {}
func (LivesUpdated) effect()  {}
func (RoundEnded) effect()    {}
func (UnknownTarget) effect() {}

func (e TargetChosen) String() string {
	return fmt.Sprintf("target_chosen(id=%d previous=%d)", e.ID, e.Previous)
}

func (e TimeUpdated) String() string {
	return fmt.Sprintf("time_updated(%.3fs)", e.SecondsLeft)
}

func (e ScoreUpdated) String() string {
	return fmt.Sprintf("score_updated(%d)", e.Points)
}

func (e LivesUpdated) String() string {
	return fmt.Sprintf("lives_updated(%d)", e.Remaining)
}

func (e RoundEnded) String() string {
	return fmt.Sprintf("round_ended(score=%d reason=%s)", e.FinalScore, e.Reason)
}

func (e UnknownTarget) String() string {
	return fmt.Sprintf("unknown_target(%d)", e.ID)
}
