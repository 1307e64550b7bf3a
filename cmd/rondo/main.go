package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/klstad/rondo/internal/config"
	"github.com/klstad/rondo/internal/excel"
	"github.com/klstad/rondo/internal/roster"
	"github.com/klstad/rondo/internal/schedule"
	"github.com/klstad/rondo/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "rondo",
		Short: "Rotation doubles tournament schedule generator",
	}

	var configFile string
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	var outputFile string
	var verbose bool
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate an optimized schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile, verbose)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log search progress")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule workbook and refresh its standings",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	rootCmd.AddCommand(initCmd, generateCmd, validateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Rondo Tournament Configuration
# ==============================
# One rotation event: every player sits in every seat exactly once
# across the schedule, and no two-player side recurs on its side.

event:
  name: "Club Night Rondo"

# Players and their skill ratings. Any positive rating scale works
# (Elo, club ladder points, ...) — only relative differences matter.
# At least 4 players are required.
players:
  - { name: Alice, rating: 1850 }
  - { name: Björn, rating: 1620 }
  - { name: Carla, rating: 1710 }
  - { name: Dmitri, rating: 1540 }
  - { name: Emma, rating: 1475 }
  - { name: Farid, rating: 1390 }
  - { name: Greta, rating: 1820 }
  - { name: Henrik, rating: 1505 }

# Search controls the randomized optimizer. More trials generally mean
# a fairer schedule; the search never gets worse with a bigger budget.
search:
  trials: 10000
  workers: 0 # 0 = one worker per CPU core
  seed: 42   # fixed seed keeps runs reproducible
`

func runGenerate(configPath, outputPath string, verbose bool) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ros, err := roster.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}

	opts := schedule.Options{
		Trials:  cfg.Search.Trials,
		Workers: cfg.Search.Workers,
		Seed:    cfg.Search.Seed,
	}
	if verbose {
		opts.Logger = logrus.New()
	}

	runID := uuid.New().String()
	n := ros.Size()
	fmt.Printf("Scheduling %d matches for %d players (%d trials)...\n", n, n, cfg.Search.Trials)

	res, err := schedule.Optimize(context.Background(), ros.Ratings(), opts)
	if err != nil {
		return fmt.Errorf("optimizing schedule: %w", err)
	}

	min, median, max := schedule.Summarize(res.Scores)
	fmt.Printf("✓ Best schedule score %.2f (sampled min %.2f, median %.2f, max %.2f)\n\n", res.Score, min, median, max)

	ratings := ros.Ratings()
	fmt.Printf("  %-5s %-25s %-25s %8s\n", "Match", "Side A", "Side B", "Tension")
	for i, m := range res.Best {
		a1, a2 := m.SideA()
		b1, b2 := m.SideB()
		fmt.Printf("  %-5d %-25s %-25s %8.1f\n",
			i+1,
			excel.FormatSide(ros.Name(a1), ros.Name(a2)),
			excel.FormatSide(ros.Name(b1), ros.Name(b2)),
			schedule.MatchTension(m, ratings))
	}

	f, err := excel.Generate(cfg, ros, res, runID)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s (run %s)\n", outputPath, runID)
	return nil
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ros, err := roster.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}

	violations, err := validator.Validate(ros, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Invariant violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d invariant violations, %d warnings\n", errors, warnings)

	// A structurally broken schedule keeps its old standings sheet;
	// recomputing from whichever rows happened to parse would be
	// misleading.
	if errors > 0 {
		fmt.Println("✗ Standings left unchanged until the violations are fixed")
		return fmt.Errorf("%d invariant violations found", errors)
	}

	if err := excel.UpdateStandings(schedulePath, ros); err != nil {
		return fmt.Errorf("updating standings: %w", err)
	}
	fmt.Printf("✓ Standings updated in %s\n", schedulePath)
	return nil
}
