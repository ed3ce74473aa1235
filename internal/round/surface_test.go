package round

import (
	"fmt"
	"reflect"
	"testing"
)

// recordingSurface logs every call it receives.
type recordingSurface struct {
	calls []string
}

func (r *recordingSurface) MarkTarget(id int)   { r.add("mark %d", id) }
func (r *recordingSurface) UnmarkTarget(id int) { r.add("unmark %d", id) }
func (r *recordingSurface) ShowTime(s float64)  { r.add("time %.1f", s) }
func (r *recordingSurface) ShowScore(p int)     { r.add("score %d", p) }
func (r *recordingSurface) ShowLives(n int)     { r.add("lives %d", n) }
func (r *recordingSurface) ShowGameOver(p int)  { r.add("over %d", p) }

func (r *recordingSurface) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func TestApply(t *testing.T) {
	var dst recordingSurface

	Apply(&dst, []Effect{
		TargetChosen{ID: 1, Previous: NoTarget},
		TimeUpdated{SecondsLeft: 12.5},
		ScoreUpdated{Points: 10},
		TargetChosen{ID: 3, Previous: 1},
		UnknownTarget{ID: 9},
		LivesUpdated{Remaining: 1},
		RoundEnded{FinalScore: 10, Reason: EndLives},
	})

	want := []string{
		"mark 1",
		"time 12.5",
		"score 10",
		"unmark 1",
		"mark 3",
		"lives 1",
		"over 10",
	}
	if !reflect.DeepEqual(dst.calls, want) {
		t.Errorf("calls = %v, expected %v", dst.calls, want)
	}
}

func TestApplyFullRound(t *testing.T) {
	var dst recordingSurface
	e := New(NewSequence(0, 2))

	s, _ := e.Configure(scenarioConfig())
	s, effects, _ := e.Start(s)
	Apply(&dst, effects)
	s, effects = e.Pick(s, 0)
	Apply(&dst, effects)
	_, effects, _ = e.Tick(s, 30)
	Apply(&dst, effects)

	want := []string{"mark 0", "score 10", "unmark 0", "mark 2", "over 10"}
	if !reflect.DeepEqual(dst.calls, want) {
		t.Errorf("calls = %v, expected %v", dst.calls, want)
	}
}
