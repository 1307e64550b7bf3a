package schedule

import "fmt"

// Validate checks the three structural invariants of a schedule for n
// players, short-circuiting on the first failure:
//
//  1. every match fields four distinct players,
//  2. each seat, read down the schedule, is a permutation of 1..n,
//  3. no unordered pair recurs on the same side of another match.
//
// A pair may appear once as side A and once as side B of different
// matches; with only n(n-1)/2 distinct pairs available that reuse is
// unavoidable at small n. Validate never mutates its input.
func Validate(s Schedule, n int) error {
	if len(s) != n {
		return fmt.Errorf("schedule has %d matches, want %d", len(s), n)
	}

	for i, m := range s {
		for a := 0; a < NumSeats; a++ {
			if m[a] < 1 || m[a] > n {
				return fmt.Errorf("match %d: player ID %d out of range 1..%d", i+1, m[a], n)
			}
			for b := a + 1; b < NumSeats; b++ {
				if m[a] == m[b] {
					return fmt.Errorf("match %d: player %d appears twice", i+1, m[a])
				}
			}
		}
	}

	for seat := 0; seat < NumSeats; seat++ {
		seen := make([]bool, n+1)
		for i, m := range s {
			if seen[m[seat]] {
				return fmt.Errorf("seat %d: player %d repeats (match %d)", seat+1, m[seat], i+1)
			}
			seen[m[seat]] = true
		}
	}

	seenA := make(map[pairKey]int, n)
	seenB := make(map[pairKey]int, n)
	for i, m := range s {
		ka := newPairKey(m.SideA())
		if prev, ok := seenA[ka]; ok {
			return fmt.Errorf("side A pair (%d,%d) repeats in matches %d and %d", ka.lo, ka.hi, prev+1, i+1)
		}
		seenA[ka] = i

		kb := newPairKey(m.SideB())
		if prev, ok := seenB[kb]; ok {
			return fmt.Errorf("side B pair (%d,%d) repeats in matches %d and %d", kb.lo, kb.hi, prev+1, i+1)
		}
		seenB[kb] = i
	}

	return nil
}

// IsValid reports whether s satisfies all structural invariants.
func IsValid(s Schedule, n int) bool {
	return Validate(s, n) == nil
}
