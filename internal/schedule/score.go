package schedule

import (
	"math"
	"sort"
)

// sideStrength is the geometric mean of two ratings. Compared to the
// arithmetic mean it punishes a large rating gap within a side, so the
// optimizer prefers genuinely balanced pairings over merely
// average-correct ones.
func sideStrength(x, y float64) float64 {
	return math.Sqrt(x * y)
}

// MatchTension returns the absolute strength gap between the two sides
// of m. ratings is indexed by player ID.
func MatchTension(m Match, ratings []float64) float64 {
	a := sideStrength(ratings[m[SeatA1]], ratings[m[SeatA2]])
	b := sideStrength(ratings[m[SeatB1]], ratings[m[SeatB2]])
	return math.Abs(a - b)
}

// Score sums MatchTension over the whole schedule. Lower is fairer;
// this is the sole objective the optimizer minimizes.
func Score(s Schedule, ratings []float64) float64 {
	total := 0.0
	for _, m := range s {
		total += MatchTension(m, ratings)
	}
	return total
}

// Summarize reports the minimum, median, and maximum of a sampled
// score population. It does not modify scores.
func Summarize(scores []float64) (min, median, max float64) {
	if len(scores) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	min = sorted[0]
	max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}
	return min, median, max
}
