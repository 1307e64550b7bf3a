package main

import (
	"os"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/klstad/rondo/internal/config"
	"github.com/klstad/rondo/internal/excel"
	"github.com/klstad/rondo/internal/roster"
	"github.com/klstad/rondo/internal/schedule"
)

const testConfigYAML = `
event:
  name: "Club Night"
players:
  - { name: Alice, rating: 1800 }
  - { name: Björn, rating: 1650 }
  - { name: Carla, rating: 1720 }
  - { name: Dmitri, rating: 1500 }
search:
  trials: 100
  workers: 1
  seed: 7
`

// writeTestWorkbook saves a valid four-player workbook with one
// recorded result and returns its path alongside the config path.
func writeTestWorkbook(t *testing.T, tamper func(*excelize.File)) (configPath, schedulePath string) {
	t.Helper()
	dir := t.TempDir()

	configPath = dir + "/config.yaml"
	if err := os.WriteFile(configPath, []byte(testConfigYAML), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	ros, err := roster.FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig() error: %v", err)
	}

	best := schedule.Schedule{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{3, 1, 4, 2},
		{2, 4, 1, 3},
	}
	res := &schedule.Result{Best: best, Score: schedule.Score(best, ros.Ratings()), Scores: []float64{100}}

	f, err := excel.Generate(cfg, ros, res, "run-cli")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	f.SetCellValue(excel.ScheduleSheet, "E2", "21-15")
	if tamper != nil {
		tamper(f)
	}

	schedulePath = dir + "/schedule.xlsx"
	if err := f.SaveAs(schedulePath); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	return configPath, schedulePath
}

func standingsWins(t *testing.T, path, cell string) string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer f.Close()
	val, _ := f.GetCellValue(excel.StandingsSheet, cell)
	return val
}

func TestRunValidateUpdatesStandings(t *testing.T) {
	configPath, schedulePath := writeTestWorkbook(t, nil)

	if err := runValidate(configPath, schedulePath); err != nil {
		t.Fatalf("runValidate() error: %v", err)
	}

	// The 21-15 result in match 1 gives the leader one win.
	if wins := standingsWins(t, schedulePath, "D2"); wins != "1" {
		t.Errorf("leader wins = %q, want 1", wins)
	}
}

func TestRunValidateKeepsStandingsOnViolations(t *testing.T) {
	configPath, schedulePath := writeTestWorkbook(t, func(f *excelize.File) {
		// An off-roster player makes the workbook structurally invalid.
		f.SetCellValue(excel.ScheduleSheet, "B3", "Zed & Alice")
	})

	if err := runValidate(configPath, schedulePath); err == nil {
		t.Fatal("runValidate() should report the invariant violations")
	}

	// The recorded result must not reach the standings while the
	// schedule is broken.
	if wins := standingsWins(t, schedulePath, "D2"); wins != "0" {
		t.Errorf("leader wins = %q, want 0 (standings untouched)", wins)
	}
}
