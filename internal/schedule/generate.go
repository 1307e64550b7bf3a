package schedule

import "math/rand"

const (
	// repairPassFactor bounds the repair loop to n×20 full-scan passes.
	repairPassFactor = 20
	// maxRestarts bounds fresh-shuffle attempts before escalating to
	// rejection sampling.
	maxRestarts = 200
)

// genState drives the bounded-retry escalation. Keeping the states
// explicit makes the termination guarantee auditable: Repairing and
// Restarting are budgeted, FallingBack terminates for n >= 4.
type genState int

const (
	stateRepairing genState = iota
	stateRestarting
	stateFallingBack
	stateDone
)

// Generator builds valid schedules for n players from one private
// random source. Its seat pools and output buffer are reused across
// calls, so a caller that keeps a schedule must copy it first.
type Generator struct {
	n     int
	rng   *rand.Rand
	pools [NumSeats][]int // one permutation of 1..n per seat
	out   Schedule
}

// NewGenerator allocates a generator for n players. n must be at least
// 4; smaller rosters are rejected by the optimizer before a generator
// exists.
func NewGenerator(n int, rng *rand.Rand) *Generator {
	g := &Generator{n: n, rng: rng, out: make(Schedule, n)}
	for seat := range g.pools {
		g.pools[seat] = make([]int, n)
		for i := range g.pools[seat] {
			g.pools[seat][i] = i + 1
		}
	}
	return g
}

// Generate returns a schedule satisfying all structural invariants. It
// repairs conflicts in shuffled seat pools, restarts with fresh
// shuffles when repair stalls, and falls back to rejection sampling
// after maxRestarts, so it never returns an invalid schedule. The
// result aliases the generator's output buffer and is only valid until
// the next call.
func (g *Generator) Generate() Schedule {
	restarts := 0
	state := stateRepairing
	g.shufflePools()

	for {
		switch state {
		case stateRepairing:
			g.repair()
			if g.poolsValid() {
				state = stateDone
			} else {
				state = stateRestarting
			}
		case stateRestarting:
			restarts++
			if restarts > maxRestarts {
				state = stateFallingBack
			} else {
				g.shufflePools()
				state = stateRepairing
			}
		case stateFallingBack:
			g.rejectionSample()
			state = stateDone
		case stateDone:
			return g.snapshot()
		}
	}
}

// match derives match i from the seat pools.
func (g *Generator) match(i int) Match {
	return Match{g.pools[SeatA1][i], g.pools[SeatA2][i], g.pools[SeatB1][i], g.pools[SeatB2][i]}
}

// snapshot writes the current pools into the output buffer.
func (g *Generator) snapshot() Schedule {
	for i := range g.out {
		g.out[i] = g.match(i)
	}
	return g.out
}

func (g *Generator) poolsValid() bool {
	return Validate(g.snapshot(), g.n) == nil
}

func (g *Generator) shufflePools() {
	for seat := range g.pools {
		pool := g.pools[seat]
		g.rng.Shuffle(g.n, func(a, b int) {
			pool[a], pool[b] = pool[b], pool[a]
		})
	}
}

// repair runs up to n×repairPassFactor full-scan passes. Shuffled seat
// pools already satisfy the per-seat permutation invariant, so only
// within-match duplicates and repeated side pairs need fixing, and a
// seat swap between two matches preserves the permutation. Conflicts
// left unresolved by one pass are picked up by the next pass's rescan.
func (g *Generator) repair() {
	passes := g.n * repairPassFactor
	for pass := 0; pass < passes; pass++ {
		if g.repairPass() {
			return
		}
	}
}

// repairPass rebuilds the side-pair usage counts, then scans every
// match once and attempts one seat swap per conflicted match. It
// reports true when the scan saw no conflicts.
func (g *Generator) repairPass() bool {
	usedA := make(map[pairKey]int, g.n)
	usedB := make(map[pairKey]int, g.n)
	for i := 0; i < g.n; i++ {
		m := g.match(i)
		usedA[newPairKey(m.SideA())]++
		usedB[newPairKey(m.SideB())]++
	}

	clean := true
	for i := 0; i < g.n; i++ {
		seat, ok := g.conflictSeat(i, usedA, usedB)
		if !ok {
			continue
		}
		clean = false
		g.trySwaps(i, seat)
	}
	return clean
}

// conflictSeat picks the seat to swap out of match i, or ok=false when
// the match is clean. A within-match duplicate outranks a repeated
// side; for a repeated side, one of its two seats is chosen at random
// to avoid a systematic bias.
func (g *Generator) conflictSeat(i int, usedA, usedB map[pairKey]int) (seat int, ok bool) {
	m := g.match(i)
	for a := 0; a < NumSeats; a++ {
		for b := a + 1; b < NumSeats; b++ {
			if m[a] == m[b] {
				return b, true
			}
		}
	}
	if usedA[newPairKey(m.SideA())] > 1 {
		return g.rng.Intn(2), true
	}
	if usedB[newPairKey(m.SideB())] > 1 {
		return SeatB1 + g.rng.Intn(2), true
	}
	return 0, false
}

// trySwaps exchanges the chosen seat of match i with the same seat of
// other matches, visited in random order, and keeps the first swap
// that leaves match i fully clean. Rejected swaps are undone. The
// partner match is deliberately not re-checked here; the next pass's
// rescan covers it.
func (g *Generator) trySwaps(i, seat int) bool {
	pool := g.pools[seat]
	for _, j := range g.rng.Perm(g.n) {
		if j == i {
			continue
		}
		pool[i], pool[j] = pool[j], pool[i]
		if g.matchClean(i) {
			return true
		}
		pool[i], pool[j] = pool[j], pool[i]
	}
	return false
}

// matchClean reports whether match i has four distinct players and two
// distinct side pairs, neither of which appears on the same side of
// any other match.
func (g *Generator) matchClean(i int) bool {
	m := g.match(i)
	for a := 0; a < NumSeats; a++ {
		for b := a + 1; b < NumSeats; b++ {
			if m[a] == m[b] {
				return false
			}
		}
	}

	ka := newPairKey(m.SideA())
	kb := newPairKey(m.SideB())
	if ka == kb {
		return false
	}
	for j := 0; j < g.n; j++ {
		if j == i {
			continue
		}
		o := g.match(j)
		if newPairKey(o.SideA()) == ka || newPairKey(o.SideB()) == kb {
			return false
		}
	}
	return true
}

// rejectionSample reshuffles one randomly chosen seat pool at a time
// until the pools form a valid schedule. The loop is unbounded but
// terminates for n >= 4; this is a correctness safety net, not a
// performance path, and is only reached when repair exhausts its
// restart budget.
func (g *Generator) rejectionSample() {
	g.shufflePools()
	for !g.poolsValid() {
		pool := g.pools[g.rng.Intn(NumSeats)]
		g.rng.Shuffle(g.n, func(a, b int) {
			pool[a], pool[b] = pool[b], pool[a]
		})
	}
}
