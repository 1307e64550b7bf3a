// Package validator re-checks an edited schedule workbook against the
// roster. Generated workbooks always pass; the checks exist for
// schedules that were edited by hand after generation.
package validator

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/klstad/rondo/internal/excel"
	"github.com/klstad/rondo/internal/roster"
	"github.com/klstad/rondo/internal/schedule"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule workbook and checks the structural
// invariants: one match per player, four distinct players per match,
// every player once per seat, and no side pair repeating on the same
// side. Malformed result entries are reported as warnings.
func Validate(ros *roster.Roster, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	parsed, err := readMatches(f)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	var violations []Violation
	violations = append(violations, checkKnownPlayers(ros, parsed)...)

	matches := resolve(ros, parsed)
	violations = append(violations, checkMatchCount(ros, matches)...)
	violations = append(violations, checkDistinctPlayers(ros, matches)...)
	violations = append(violations, checkSeatPermutations(ros, matches)...)
	violations = append(violations, checkSideUniqueness(matches)...)
	violations = append(violations, checkCompleteness(ros, matches)...)
	violations = append(violations, checkResultFormats(parsed)...)

	return violations, nil
}

// parsedMatch is one schedule sheet row before name resolution.
type parsedMatch struct {
	Row    int // 1-based sheet row
	Names  [4]string
	Result string
}

// resolvedMatch pairs a match with its sheet row for reporting.
type resolvedMatch struct {
	Row   int
	Match schedule.Match
}

func readMatches(f *excelize.File) ([]parsedMatch, error) {
	rows, err := f.GetRows(excel.ScheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.ScheduleSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", excel.ScheduleSheet)
	}

	var parsed []parsedMatch
	for i, row := range rows {
		if i == 0 || len(row) < 3 || row[1] == "" {
			continue
		}

		a1, a2, okA := excel.ParseSideCell(row[1])
		b1, b2, okB := excel.ParseSideCell(row[2])
		if !okA || !okB {
			continue
		}

		p := parsedMatch{Row: i + 1, Names: [4]string{a1, a2, b1, b2}}
		if len(row) > 4 {
			p.Result = row[4]
		}
		parsed = append(parsed, p)
	}

	return parsed, nil
}

func checkKnownPlayers(ros *roster.Roster, parsed []parsedMatch) []Violation {
	var violations []Violation
	for _, p := range parsed {
		for _, name := range p.Names {
			if _, ok := ros.ID(name); !ok {
				violations = append(violations, Violation{
					Row:     p.Row,
					Type:    "error",
					Message: fmt.Sprintf("row %d: %q is not on the roster", p.Row, name),
				})
			}
		}
	}
	return violations
}

// resolve maps names to IDs, dropping rows with unknown players (those
// are already reported by checkKnownPlayers).
func resolve(ros *roster.Roster, parsed []parsedMatch) []resolvedMatch {
	var matches []resolvedMatch
	for _, p := range parsed {
		var m schedule.Match
		ok := true
		for seat, name := range p.Names {
			id, found := ros.ID(name)
			if !found {
				ok = false
				break
			}
			m[seat] = id
		}
		if ok {
			matches = append(matches, resolvedMatch{Row: p.Row, Match: m})
		}
	}
	return matches
}

func checkMatchCount(ros *roster.Roster, matches []resolvedMatch) []Violation {
	if len(matches) == ros.Size() {
		return nil
	}
	return []Violation{{
		Type:    "error",
		Message: fmt.Sprintf("schedule has %d matches, want %d (one per player)", len(matches), ros.Size()),
	}}
}

func checkDistinctPlayers(ros *roster.Roster, matches []resolvedMatch) []Violation {
	var violations []Violation
	for _, rm := range matches {
		for a := 0; a < schedule.NumSeats; a++ {
			for b := a + 1; b < schedule.NumSeats; b++ {
				if rm.Match[a] == rm.Match[b] {
					violations = append(violations, Violation{
						Row:     rm.Row,
						Type:    "error",
						Message: fmt.Sprintf("row %d: %s appears twice in the same match", rm.Row, ros.Name(rm.Match[a])),
					})
				}
			}
		}
	}
	return violations
}

func checkSeatPermutations(ros *roster.Roster, matches []resolvedMatch) []Violation {
	seatNames := [schedule.NumSeats]string{"A1", "A2", "B1", "B2"}

	var violations []Violation
	for seat := 0; seat < schedule.NumSeats; seat++ {
		counts := make(map[int][]int) // player ID -> sheet rows
		for _, rm := range matches {
			counts[rm.Match[seat]] = append(counts[rm.Match[seat]], rm.Row)
		}
		for id, rows := range counts {
			if len(rows) > 1 {
				violations = append(violations, Violation{
					Row:     rows[1],
					Type:    "error",
					Message: fmt.Sprintf("%s sits in seat %s %d times (rows %v), want once", ros.Name(id), seatNames[seat], len(rows), rows),
				})
			}
		}
	}
	return violations
}

func checkSideUniqueness(matches []resolvedMatch) []Violation {
	type pair struct{ lo, hi int }
	normalize := func(a, b int) pair {
		if a > b {
			a, b = b, a
		}
		return pair{a, b}
	}

	var violations []Violation
	for _, side := range []struct {
		name string
		a, b int
	}{
		{"A", schedule.SeatA1, schedule.SeatA2},
		{"B", schedule.SeatB1, schedule.SeatB2},
	} {
		seen := make(map[pair]int) // pair -> first sheet row
		for _, rm := range matches {
			k := normalize(rm.Match[side.a], rm.Match[side.b])
			if prev, ok := seen[k]; ok {
				violations = append(violations, Violation{
					Row:     rm.Row,
					Type:    "error",
					Message: fmt.Sprintf("side %s pairing repeats in rows %d and %d", side.name, prev, rm.Row),
				})
				continue
			}
			seen[k] = rm.Row
		}
	}
	return violations
}

func checkCompleteness(ros *roster.Roster, matches []resolvedMatch) []Violation {
	counts := make(map[int]int)
	for _, rm := range matches {
		for _, id := range rm.Match {
			counts[id]++
		}
	}

	var violations []Violation
	for _, p := range ros.Players() {
		if counts[p.ID] == 0 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has no matches scheduled", p.Name),
			})
		}
	}
	return violations
}

func checkResultFormats(parsed []parsedMatch) []Violation {
	var violations []Violation
	for _, p := range parsed {
		if p.Result == "" {
			continue
		}
		if _, _, ok := excel.ParseResultCell(p.Result); !ok {
			violations = append(violations, Violation{
				Row:     p.Row,
				Type:    "warning",
				Message: fmt.Sprintf("row %d: result %q is not a \"21-15\"-style score", p.Row, p.Result),
			})
		}
	}
	return violations
}
