package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/klstad/rondo/internal/roster"
	"github.com/klstad/rondo/internal/schedule"
	"github.com/klstad/rondo/internal/standings"
)

// ReadResults parses the schedule sheet and returns the matches whose
// Result column holds a recorded score. Rows that don't parse as a
// match or score are skipped; the validator reports those separately.
func ReadResults(f *excelize.File, ros *roster.Roster) ([]standings.MatchResult, error) {
	rows, err := f.GetRows(ScheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ScheduleSheet, err)
	}

	var results []standings.MatchResult
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue
		}

		m, ok := parseMatchRow(row, ros)
		if !ok {
			continue
		}
		ptsA, ptsB, ok := ParseResultCell(row[4])
		if !ok {
			continue
		}
		results = append(results, standings.MatchResult{Match: m, PtsA: ptsA, PtsB: ptsB})
	}

	return results, nil
}

// parseMatchRow reassembles a Match from a schedule sheet row, mapping
// names back to roster IDs.
func parseMatchRow(row []string, ros *roster.Roster) (schedule.Match, bool) {
	if len(row) < 3 {
		return schedule.Match{}, false
	}
	a1, a2, ok := ParseSideCell(row[1])
	if !ok {
		return schedule.Match{}, false
	}
	b1, b2, ok := ParseSideCell(row[2])
	if !ok {
		return schedule.Match{}, false
	}

	var m schedule.Match
	for seat, name := range []string{a1, a2, b1, b2} {
		id, ok := ros.ID(name)
		if !ok {
			return schedule.Match{}, false
		}
		m[seat] = id
	}
	return m, true
}

// UpdateStandings re-reads the recorded results in a workbook and
// regenerates its standings sheet in place.
func UpdateStandings(path string, ros *roster.Roster) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	results, err := ReadResults(f, ros)
	if err != nil {
		return err
	}

	f.DeleteSheet(StandingsSheet)
	if err := writeStandingsSheet(f, standings.Compute(results, ros)); err != nil {
		return fmt.Errorf("writing standings sheet: %w", err)
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}
