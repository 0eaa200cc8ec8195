// ABOUTME: CLI commands for logging sets and reviewing a day.
// ABOUTME: A set is one or more rounds of an exercise sharing a set id.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/plainfit/internal/models"
)

var (
	logReps     int
	logRounds   int
	logWeight   string
	logDistance string
	logDuration time.Duration
	logAt       string
	logNotes    string
	logReplace  int64
)

var logCmd = &cobra.Command{
	Use:     "log <exercise>",
	Aliases: []string{"add", "a"},
	Short:   "Log a set",
	Long: `Log a set of one or more identical rounds of an exercise.

Rounds are stamped one minute apart starting at --at (default now). Every
round shares one set id, shown after logging.

Examples:
  plainfit log Squat --reps 5 --weight 100kg --rounds 3
  plainfit log Running --distance 5.2km --duration 28m30s
  plainfit log Plank --duration 90s --at "2025-06-01 07:30"
  plainfit log Squat --reps 6 --weight 100kg -n 3 --replace 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		et, err := resolveExercise(args[0])
		if err != nil {
			return err
		}
		if logRounds < 1 {
			return fmt.Errorf("rounds must be at least 1")
		}

		at := time.Now()
		if logAt != "" {
			if at, err = parseTime(logAt); err != nil {
				return fmt.Errorf("invalid timestamp: %s", logAt)
			}
		}

		entries, err := buildRounds(et, at)
		if err != nil {
			return err
		}

		setID := logReplace
		if logReplace > 0 {
			if err := repo.ReplaceSet(logReplace, entries); err != nil {
				return fmt.Errorf("failed to replace set: %w", err)
			}
		} else if setID, err = repo.AddSet(entries); err != nil {
			return fmt.Errorf("failed to log set: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s\n", et.Name)
		fmt.Fprintf(out, "  %s %d × %s\n",
			faint.Sprintf("set %d", setID), len(entries), entryDetails(entries[0]))
		return nil
	},
}

func buildRounds(et *models.ExerciseType, at time.Time) ([]*models.FitnessEntry, error) {
	template := models.NewEntry(et.ID).
		WithReps(logReps).
		WithDuration(logDuration).
		WithDescription(logNotes)
	if logWeight != "" {
		v, unit, err := parseAmount(logWeight)
		if err != nil {
			return nil, err
		}
		template.WithWeight(v, unit)
	}
	if logDistance != "" {
		v, unit, err := parseAmount(logDistance)
		if err != nil {
			return nil, err
		}
		template.WithDistance(v, unit)
	}

	entries := make([]*models.FitnessEntry, logRounds)
	for i := range entries {
		e := *template
		e.Date = at.Add(time.Duration(i) * time.Minute)
		entries[i] = &e
	}
	return entries, nil
}

var dayCmd = &cobra.Command{
	Use:     "day [YYYY-MM-DD]",
	Aliases: []string{"today", "d"},
	Short:   "Show the sets logged on a day",
	Long: `Show every set logged on a day, newest first. Defaults to today.

Examples:
  plainfit day
  plainfit day 2025-06-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		day, err := parseDay(ref)
		if err != nil {
			return err
		}
		entries, err := repo.EntriesForDay(day)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintln(out, day.Format("Monday, January 2 2006"))
		if len(entries) == 0 {
			fmt.Fprintln(out, "No sets logged.")
			return nil
		}
		printSets(out, entries)
		return nil
	},
}

// printSets prints entries grouped by set, keeping the order in which each
// set first appears.
func printSets(w io.Writer, entries []*models.FitnessEntry) {
	var order []int64
	bySet := make(map[int64][]*models.FitnessEntry)
	for _, e := range entries {
		if _, ok := bySet[e.SetID]; !ok {
			order = append(order, e.SetID)
		}
		bySet[e.SetID] = append(bySet[e.SetID], e)
	}
	for _, setID := range order {
		rounds := bySet[setID]
		fmt.Fprintf(w, "%s %s %s\n",
			faint.Sprintf("set %-4d", setID),
			rounds[0].ExerciseName,
			faint.Sprintf("(%d rounds)", len(rounds)))
		for _, e := range rounds {
			printEntry(w, e)
		}
	}
}

func init() {
	logCmd.Flags().IntVarP(&logReps, "reps", "r", 0, "repetitions per round")
	logCmd.Flags().IntVarP(&logRounds, "rounds", "n", 1, "number of rounds")
	logCmd.Flags().StringVarP(&logWeight, "weight", "w", "", "weight with unit, e.g. 100kg")
	logCmd.Flags().StringVarP(&logDistance, "distance", "d", "", "distance with unit, e.g. 5.2km")
	logCmd.Flags().DurationVar(&logDuration, "duration", 0, "duration per round, e.g. 45s or 28m30s")
	logCmd.Flags().StringVar(&logAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "note stored on every round")
	logCmd.Flags().Int64Var(&logReplace, "replace", 0, "replace the rounds of this set id")
	rootCmd.AddCommand(logCmd, dayCmd)
}
