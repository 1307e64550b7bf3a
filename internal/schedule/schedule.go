// Package schedule generates and optimizes rotation-tournament
// schedules: n players, n matches, four seats per match split into two
// sides of two. Every player sits in every seat exactly once across the
// schedule, no two-player side recurs on the same side of another
// match, and the optimizer minimizes the total skill imbalance between
// opposing sides.
package schedule

// Seat indices within a match. Seats A1 and A2 form side A, seats B1
// and B2 form side B.
const (
	SeatA1 = iota
	SeatA2
	SeatB1
	SeatB2

	NumSeats
)

// Match is one contest: four player IDs, one per seat.
type Match [NumSeats]int

// SideA returns the two player IDs on side A.
func (m Match) SideA() (int, int) { return m[SeatA1], m[SeatA2] }

// SideB returns the two player IDs on side B.
func (m Match) SideB() (int, int) { return m[SeatB1], m[SeatB2] }

// Schedule is an ordered sequence of matches, one per player.
type Schedule []Match

// pairKey identifies an unordered two-player side in canonical
// (low, high) form. It is only ever used as a set-membership key.
type pairKey struct {
	lo, hi int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}
