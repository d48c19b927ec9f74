package render

import (
	"math"
	"strconv"
)

// Display converts a score to the 0-10 scale shown to the user. Scores above
// 10 are treated as percentages and rounded; zero or missing scores show as 0.
func Display(score float64) float64 {
	if score == 0 || math.IsNaN(score) {
		return 0
	}
	if score > 10 {
		return math.Round(score / 10)
	}
	return score
}

// FormatScore renders Display(score) without trailing zeros.
func FormatScore(score float64) string {
	return strconv.FormatFloat(Display(score), 'f', -1, 64)
}
