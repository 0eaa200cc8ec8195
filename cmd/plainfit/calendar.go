// ABOUTME: CLI command rendering a month grid with active days marked.
// ABOUTME: Lists the category and exercise badges for each active day.
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/plainfit/internal/calendar"
	"github.com/harperreed/plainfit/internal/models"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar [YYYY-MM]",
	Aliases: []string{"cal"},
	Short:   "Show a month of activity",
	Long: `Show a month as a Sunday-first grid. Days with logged sets are highlighted
and listed below the grid with their activities.

Examples:
  plainfit calendar
  plainfit calendar 2025-06`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		month, err := parseMonth(ref)
		if err != nil {
			return err
		}

		first := calendar.StartOfMonth(month)
		active, err := repo.ActiveDays(first, first.AddDate(0, 1, 0))
		if err != nil {
			return fmt.Errorf("failed to load active days: %w", err)
		}
		activity, err := repo.MonthActivity(month)
		if err != nil {
			return fmt.Errorf("failed to load month activity: %w", err)
		}

		out := cmd.OutOrStdout()
		printMonthGrid(out, month, active, time.Now())
		fmt.Fprintln(out)
		printMonthActivity(out, month, activity)
		return nil
	},
}

func printMonthGrid(w io.Writer, month time.Time, active []time.Time, now time.Time) {
	marked := make(map[int]bool, len(active))
	for _, d := range active {
		marked[d.Day()] = true
	}
	highlight := color.New(color.FgGreen, color.Bold)
	today := calendar.StartOfDay(now)

	color.New(color.Bold).Fprintf(w, "%s\n", month.Format("January 2006"))
	fmt.Fprintln(w, " Su  Mo  Tu  We  Th  Fr  Sa")
	for _, week := range calendar.WeeksForMonth(month) {
		cells := make([]string, len(week))
		for i, day := range week {
			cell := fmt.Sprintf("%3d", day.Day())
			switch {
			case !calendar.InMonth(day, month):
				cell = faint.Sprint(cell)
			case marked[day.Day()]:
				cell = highlight.Sprint(cell)
			}
			mark := " "
			if day.Equal(today) {
				mark = "<"
			}
			cells[i] = cell + mark
		}
		fmt.Fprintln(w, strings.Join(cells, ""))
	}
	fmt.Fprintf(w, "%d active days\n", len(active))
}

func printMonthActivity(w io.Writer, month time.Time, activity map[int][]models.Activity) {
	days := make([]int, 0, len(activity))
	for day := range activity {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, day := range days {
		date := calendar.StartOfMonth(month).AddDate(0, 0, day-1)
		labels := make([]string, 0, len(activity[day]))
		for _, a := range activity[day] {
			icon, _ := a.Badge()
			name := a.ExerciseType.Name
			if c := a.CategoryName(); c != "" {
				name = c + "/" + name
			}
			labels = append(labels, fmt.Sprintf("%s %s", name, faint.Sprint(icon)))
		}
		fmt.Fprintf(w, "%s  %s\n", faint.Sprint(date.Format("Mon 02")), strings.Join(labels, ", "))
	}
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}
