// Package standings tallies per-player results for a rotation
// tournament. Sides change every match, so wins and point differential
// accrue to individual players rather than fixed teams.
package standings

import (
	"sort"

	"github.com/klstad/rondo/internal/roster"
	"github.com/klstad/rondo/internal/schedule"
)

// MatchResult records the final score of one played match.
type MatchResult struct {
	Match schedule.Match
	PtsA  int // points scored by side A
	PtsB  int // points scored by side B
}

// Row is one player's line in the standings table.
type Row struct {
	Player        roster.Player
	Played        int
	Wins          int
	Losses        int
	Draws         int
	PointsFor     int
	PointsAgainst int
}

// Diff returns the player's point differential.
func (r Row) Diff() int {
	return r.PointsFor - r.PointsAgainst
}

// Compute tallies standings from recorded results. Every roster player
// gets a row, including those with no recorded matches yet. Rows are
// ordered by wins, then point differential, then points for, then
// name, so the ordering is stable across runs.
func Compute(results []MatchResult, ros *roster.Roster) []Row {
	byID := make(map[int]*Row, ros.Size())
	rows := make([]Row, ros.Size())
	for i, p := range ros.Players() {
		rows[i] = Row{Player: p}
		byID[p.ID] = &rows[i]
	}

	for _, res := range results {
		a1, a2 := res.Match.SideA()
		b1, b2 := res.Match.SideB()
		for _, id := range []int{a1, a2} {
			record(byID[id], res.PtsA, res.PtsB)
		}
		for _, id := range []int{b1, b2} {
			record(byID[id], res.PtsB, res.PtsA)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		if rows[i].Diff() != rows[j].Diff() {
			return rows[i].Diff() > rows[j].Diff()
		}
		if rows[i].PointsFor != rows[j].PointsFor {
			return rows[i].PointsFor > rows[j].PointsFor
		}
		return rows[i].Player.Name < rows[j].Player.Name
	})

	return rows
}

func record(r *Row, scored, conceded int) {
	if r == nil {
		return
	}
	r.Played++
	r.PointsFor += scored
	r.PointsAgainst += conceded
	switch {
	case scored > conceded:
		r.Wins++
	case scored < conceded:
		r.Losses++
	default:
		r.Draws++
	}
}
