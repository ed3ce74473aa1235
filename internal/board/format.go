package board

import (
	"fmt"
	"math"
)

// FormatClock renders seconds as MM:SS. Seconds are rounded half-to-even to
// whole seconds first; negative values show as 00:00.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int(math.RoundToEven(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatScore renders the score label.
func FormatScore(points int) string {
	return fmt.Sprintf("Score: %d", points)
}

// FormatGameOver renders the game-over summary.
func FormatGameOver(score int) string {
	return fmt.Sprintf("Game over. Your score: %d.", score)
}
