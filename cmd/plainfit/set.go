// ABOUTME: CLI commands for inspecting and deleting logged sets.
// ABOUTME: Supports show, delete, and next-id subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/plainfit/internal/storage"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Inspect and delete sets",
	Long: `A set is the group of rounds logged together by 'plainfit log'. Set ids are
shown by 'plainfit day'.

COMMANDS:

  show     Show every round of a set
  delete   Delete a set and all its rounds
  next-id  Print the id the next logged set will get`,
}

func parseSetID(s string) (int64, error) {
	id, ok := parseID(s)
	if !ok {
		return 0, fmt.Errorf("invalid set id: %s", s)
	}
	return id, nil
}

var setShowCmd = &cobra.Command{
	Use:   "show <set-id>",
	Short: "Show a set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setID, err := parseSetID(args[0])
		if err != nil {
			return err
		}
		et, err := repo.ExerciseTypeForSet(setID)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("set not found: %d", setID)
		}
		if err != nil {
			return fmt.Errorf("failed to get set: %w", err)
		}
		entries, err := repo.EntriesBySet(setID)
		if err != nil {
			return fmt.Errorf("failed to get set: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(out, "%s ", et.Name)
		fmt.Fprintf(out, "%s\n", faint.Sprintf("set %d, %s", setID, entries[0].Date.Format("2006-01-02")))
		for _, e := range entries {
			printEntry(out, e)
		}
		return nil
	},
}

var setDeleteCmd = &cobra.Command{
	Use:     "delete <set-id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a set",
	Long: `Delete every round of a set.

CAUTION:

  This permanently deletes the rounds. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setID, err := parseSetID(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteSet(setID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("set not found: %d", setID)
			}
			return fmt.Errorf("failed to delete set: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted set %d\n", setID)
		return nil
	},
}

var setNextIDCmd = &cobra.Command{
	Use:   "next-id",
	Short: "Print the next set id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := repo.GenerateSetID()
		if err != nil {
			return fmt.Errorf("failed to generate set id: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	setCmd.AddCommand(setShowCmd, setDeleteCmd, setNextIDCmd)
	rootCmd.AddCommand(setCmd)
}
