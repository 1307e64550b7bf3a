package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/klstad/rondo/internal/config"
	"github.com/klstad/rondo/internal/roster"
	"github.com/klstad/rondo/internal/schedule"
	"github.com/klstad/rondo/internal/standings"
)

// Sheet names used throughout the workbook.
const (
	ScheduleSheet  = "Schedule"
	SummarySheet   = "Summary"
	StandingsSheet = "Standings"
)

// Generate creates a workbook with the match schedule, a summary of
// the optimization run, an empty standings sheet, and one sheet per
// player. Results are recorded by typing "21-15"-style scores into the
// Result column; UpdateStandings picks them up later.
func Generate(cfg *config.Config, ros *roster.Roster, res *schedule.Result, runID string) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetDefaultFont("Arial")

	if err := writeScheduleSheet(f, ros, res); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}
	if err := writeSummarySheet(f, cfg, ros, res, runID); err != nil {
		return nil, fmt.Errorf("writing summary sheet: %w", err)
	}
	if err := writeStandingsSheet(f, standings.Compute(nil, ros)); err != nil {
		return nil, fmt.Errorf("writing standings sheet: %w", err)
	}
	if err := writePlayerSheets(f, ros, res.Best); err != nil {
		return nil, fmt.Errorf("writing player sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// FormatSide renders an unordered side as "A & B" for a cell.
func FormatSide(a, b string) string {
	return fmt.Sprintf("%s & %s", a, b)
}

// ParseSideCell parses "A & B" and returns the two names. Returns
// ok=false if the cell doesn't match the side format.
func ParseSideCell(cell string) (a, b string, ok bool) {
	i := strings.Index(cell, " & ")
	if i < 0 {
		return "", "", false
	}
	return cell[:i], cell[i+3:], true
}

// ParseResultCell parses a recorded "21-15"-style score. Returns
// ok=false for blank or malformed cells.
func ParseResultCell(cell string) (ptsA, ptsB int, ok bool) {
	i := strings.Index(cell, "-")
	if i < 0 {
		return 0, 0, false
	}
	ptsA, errA := strconv.Atoi(strings.TrimSpace(cell[:i]))
	ptsB, errB := strconv.Atoi(strings.TrimSpace(cell[i+1:]))
	if errA != nil || errB != nil || ptsA < 0 || ptsB < 0 {
		return 0, 0, false
	}
	return ptsA, ptsB, true
}

func writeScheduleSheet(f *excelize.File, ros *roster.Roster, res *schedule.Result) error {
	f.NewSheet(ScheduleSheet)

	headers := []string{"Match", "Side A", "Side B", "Tension", "Result"}
	for i, h := range headers {
		f.SetCellValue(ScheduleSheet, cellRef(i+1, 1), h)
	}
	styleHeaders(f, ScheduleSheet, len(headers))

	ratings := ros.Ratings()
	for i, m := range res.Best {
		row := i + 2
		a1, a2 := m.SideA()
		b1, b2 := m.SideB()
		f.SetCellValue(ScheduleSheet, cellRef(1, row), i+1)
		f.SetCellValue(ScheduleSheet, cellRef(2, row), FormatSide(ros.Name(a1), ros.Name(a2)))
		f.SetCellValue(ScheduleSheet, cellRef(3, row), FormatSide(ros.Name(b1), ros.Name(b2)))
		f.SetCellValue(ScheduleSheet, cellRef(4, row), schedule.MatchTension(m, ratings))
	}

	f.SetColWidth(ScheduleSheet, "A", "A", 8)
	f.SetColWidth(ScheduleSheet, "B", "C", 30)
	f.SetColWidth(ScheduleSheet, "D", "E", 12)
	return nil
}

func writeSummarySheet(f *excelize.File, cfg *config.Config, ros *roster.Roster, res *schedule.Result, runID string) error {
	f.NewSheet(SummarySheet)

	min, median, max := schedule.Summarize(res.Scores)
	rows := []struct {
		key   string
		value interface{}
	}{
		{"Event", cfg.Event.Name},
		{"Players", ros.Size()},
		{"Matches", len(res.Best)},
		{"Trials", cfg.Search.Trials},
		{"Workers", cfg.Search.Workers},
		{"Seed", cfg.Search.Seed},
		{"Run ID", runID},
		{"Best score", res.Score},
		{"Sampled min", min},
		{"Sampled median", median},
		{"Sampled max", max},
	}

	for i, r := range rows {
		f.SetCellValue(SummarySheet, cellRef(1, i+1), r.key)
		f.SetCellValue(SummarySheet, cellRef(2, i+1), r.value)
	}

	f.SetColWidth(SummarySheet, "A", "A", 18)
	f.SetColWidth(SummarySheet, "B", "B", 42)
	return nil
}

func writeStandingsSheet(f *excelize.File, rows []standings.Row) error {
	f.NewSheet(StandingsSheet)

	headers := []string{"Rank", "Player", "Played", "Wins", "Losses", "Draws", "PF", "PA", "Diff"}
	for i, h := range headers {
		f.SetCellValue(StandingsSheet, cellRef(i+1, 1), h)
	}
	styleHeaders(f, StandingsSheet, len(headers))

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(StandingsSheet, cellRef(1, row), i+1)
		f.SetCellValue(StandingsSheet, cellRef(2, row), r.Player.Name)
		f.SetCellValue(StandingsSheet, cellRef(3, row), r.Played)
		f.SetCellValue(StandingsSheet, cellRef(4, row), r.Wins)
		f.SetCellValue(StandingsSheet, cellRef(5, row), r.Losses)
		f.SetCellValue(StandingsSheet, cellRef(6, row), r.Draws)
		f.SetCellValue(StandingsSheet, cellRef(7, row), r.PointsFor)
		f.SetCellValue(StandingsSheet, cellRef(8, row), r.PointsAgainst)
		f.SetCellValue(StandingsSheet, cellRef(9, row), r.Diff())
	}

	f.SetColWidth(StandingsSheet, "A", "A", 8)
	f.SetColWidth(StandingsSheet, "B", "B", 20)
	f.SetColWidth(StandingsSheet, "C", "I", 9)
	return nil
}

// reservedSheets are the fixed workbook sheets a player sheet must not
// overwrite.
var reservedSheets = map[string]bool{
	ScheduleSheet:  true,
	SummarySheet:   true,
	StandingsSheet: true,
}

// playerSheetName makes a roster name usable as a worksheet name.
// excelize rejects names longer than 31 characters or containing
// []:*?/\, and a player named after a fixed sheet would silently write
// into it.
func playerSheetName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '-'
		}
		return r
	}, name)
	if reservedSheets[clean] {
		clean += " (player)"
	}
	if runes := []rune(clean); len(runes) > 31 {
		clean = string(runes[:31])
	}
	return clean
}

func writePlayerSheets(f *excelize.File, ros *roster.Roster, best schedule.Schedule) error {
	for _, p := range ros.Players() {
		sheet := playerSheetName(p.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet for %s: %w", p.Name, err)
		}

		headers := []string{"Match", "Side", "Partner", "Opponents"}
		for i, h := range headers {
			f.SetCellValue(sheet, cellRef(i+1, 1), h)
		}
		styleHeaders(f, sheet, len(headers))

		row := 2
		for i, m := range best {
			side, partner, o1, o2 := playerView(m, p.ID)
			if side == "" {
				continue
			}
			f.SetCellValue(sheet, cellRef(1, row), i+1)
			f.SetCellValue(sheet, cellRef(2, row), side)
			f.SetCellValue(sheet, cellRef(3, row), ros.Name(partner))
			f.SetCellValue(sheet, cellRef(4, row), FormatSide(ros.Name(o1), ros.Name(o2)))
			row++
		}

		f.SetColWidth(sheet, "A", "B", 8)
		f.SetColWidth(sheet, "C", "C", 20)
		f.SetColWidth(sheet, "D", "D", 30)
	}
	return nil
}

// playerView describes match m from player id's perspective: the side
// played on, the partner, and the two opponents. side is "" when the
// player is not in the match.
func playerView(m schedule.Match, id int) (side string, partner, opp1, opp2 int) {
	a1, a2 := m.SideA()
	b1, b2 := m.SideB()
	switch id {
	case a1:
		return "A", a2, b1, b2
	case a2:
		return "A", a1, b1, b2
	case b1:
		return "B", b2, a1, a2
	case b2:
		return "B", b1, a1, a2
	}
	return "", 0, 0, 0
}

func styleHeaders(f *excelize.File, sheet string, count int) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		for i := 0; i < count; i++ {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
		}
	}
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
