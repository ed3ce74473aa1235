package round

// Surface is the presentation side of a round. Implementations own every
// visual resource (icons, labels, buttons) and reconcile them from the
// effects the engine emits.
type Surface interface {
	MarkTarget(id int)
	UnmarkTarget(id int)
	ShowTime(secondsLeft float64)
	ShowScore(points int)
	ShowLives(remaining int)
	ShowGameOver(finalScore int)
}

// Apply forwards effects to dst in order.
// UnknownTarget has no visual counterpart and is skipped.
func Apply(dst Surface, effects []Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case TargetChosen:
			if e.Previous != NoTarget {
				dst.UnmarkTarget(e.Previous)
			}
			dst.MarkTarget(e.ID)
		case TimeUpdated:
			dst.ShowTime(e.SecondsLeft)
		case ScoreUpdated:
			dst.ShowScore(e.Points)
		case LivesUpdated:
			dst.ShowLives(e.Remaining)
		case RoundEnded:
			dst.ShowGameOver(e.FinalScore)
		}
	}
}
