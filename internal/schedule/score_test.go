package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validFour is a hand-checked valid schedule for 4 players: every seat
// column is a permutation of 1..4, and no pair repeats on the same side.
func validFour() Schedule {
	return Schedule{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{3, 1, 4, 2},
		{2, 4, 1, 3},
	}
}

func TestMatchTension(t *testing.T) {
	t.Run("equal sides have zero tension", func(t *testing.T) {
		// sqrt(2000*1000) on both sides
		ratings := []float64{0, 2000, 1000, 2000, 1000}
		assert.Zero(t, MatchTension(Match{1, 2, 3, 4}, ratings))
	})

	t.Run("lopsided pairing is penalized", func(t *testing.T) {
		// {2000,2000} vs {1000,1000}: geometric means 2000 and 1000
		ratings := []float64{0, 2000, 1000, 2000, 1000}
		assert.InDelta(t, 1000, MatchTension(Match{1, 3, 2, 4}, ratings), 1e-9)
	})
}

func TestScore(t *testing.T) {
	t.Run("equal ratings score exactly zero", func(t *testing.T) {
		ratings := []float64{0, 1000, 1000, 1000, 1000}
		assert.Zero(t, Score(validFour(), ratings))
	})

	t.Run("known schedule scores its tension sum", func(t *testing.T) {
		// Matches 1 and 2 pair strong with weak (tension 0); matches 3
		// and 4 pair strong with strong (tension 1000 each).
		ratings := []float64{0, 2000, 1000, 2000, 1000}
		assert.InDelta(t, 2000, Score(validFour(), ratings), 1e-9)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		ratings := []float64{0, 1850, 1620, 1710, 1540}
		s := validFour()
		require.Equal(t, Score(s, ratings), Score(s, ratings))
	})
}

func TestSummarize(t *testing.T) {
	t.Run("odd count", func(t *testing.T) {
		min, median, max := Summarize([]float64{3, 1, 2})
		assert.Equal(t, 1.0, min)
		assert.Equal(t, 2.0, median)
		assert.Equal(t, 3.0, max)
	})

	t.Run("even count averages the middle pair", func(t *testing.T) {
		min, median, max := Summarize([]float64{4, 1, 3, 2})
		assert.Equal(t, 1.0, min)
		assert.Equal(t, 2.5, median)
		assert.Equal(t, 4.0, max)
	})

	t.Run("does not reorder its input", func(t *testing.T) {
		scores := []float64{4, 1, 3, 2}
		Summarize(scores)
		assert.Equal(t, []float64{4, 1, 3, 2}, scores)
	})

	t.Run("empty population", func(t *testing.T) {
		min, median, max := Summarize(nil)
		assert.Zero(t, min)
		assert.Zero(t, median)
		assert.Zero(t, max)
	})
}
