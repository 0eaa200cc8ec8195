// ABOUTME: CLI commands for managing exercise types.
// ABOUTME: Supports add, list, edit, delete, and categories subcommands.
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/plainfit/internal/models"
	"github.com/harperreed/plainfit/internal/storage"
)

var (
	exerciseKinds      string
	exerciseCategories []string
	exerciseIcon       string
	exerciseColor      string
	exerciseName       string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex", "e"},
	Short:   "Manage exercise types",
	Long: `Exercise types are the things you log: Running, Squat, Plank.

Each type measures some of: distance, reps, time, weight. Names need not be
unique, so a "Jump Rope" measured in reps and one measured in time can both
exist.

COMMANDS:

  add         Create an exercise type
  list        List exercise types
  edit        Change name, kinds, badge, or categories
  delete      Delete an exercise type without logged sets
  categories  List the categories of an exercise type`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise type",
	Long: `Add an exercise type.

Examples:
  plainfit exercise add Bouldering --type reps,time --category Climbing
  plainfit exercise add "Farmer Carry" --type distance,weight -c Strength -c Cardio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := models.ParseKinds(exerciseKinds)
		if err != nil {
			return err
		}
		categoryIDs, err := resolveCategories(exerciseCategories)
		if err != nil {
			return err
		}

		et := models.NewExerciseType(args[0], kinds...)
		if exerciseIcon != "" {
			et.WithIcon(exerciseIcon)
		}
		if exerciseColor != "" {
			et.WithColor(exerciseColor)
		}
		if err := repo.CreateExerciseType(et); err != nil {
			return fmt.Errorf("failed to create exercise type: %w", err)
		}
		if len(categoryIDs) > 0 {
			if err := repo.SetExerciseTypeCategories(et.ID, categoryIDs); err != nil {
				return fmt.Errorf("failed to link categories: %w", err)
			}
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Added exercise %s\n", et.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", faint.Sprintf("#%d", et.ID), et.Kinds)
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List exercise types",
	Long: `List exercise types by name.

Examples:
  plainfit exercise list
  plainfit exercise list --category Strength`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		var (
			types []*models.ExerciseType
			cat   *models.Category
			err   error
		)
		if len(exerciseCategories) > 0 {
			cat, err = resolveCategory(exerciseCategories[0])
			if err != nil {
				return err
			}
			types, err = repo.ExerciseTypesForCategory(cat.ID)
		} else {
			types, err = repo.ListExerciseTypes()
		}
		if err != nil {
			return fmt.Errorf("failed to list exercise types: %w", err)
		}
		if len(types) == 0 {
			fmt.Fprintln(out, "No exercise types found.")
			return nil
		}
		for _, et := range types {
			printExerciseType(out, et, cat)
		}
		return nil
	},
}

var exerciseEditCmd = &cobra.Command{
	Use:   "edit <name|id>",
	Short: "Edit an exercise type",
	Long: `Change an exercise type. Only the given flags change; --category replaces
the whole category list.

Examples:
  plainfit exercise edit Plank --type time,reps
  plainfit exercise edit 7 --name "Back Squat" --category Strength`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		et, err := resolveExercise(args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			et.Name = exerciseName
		}
		if flags.Changed("type") {
			if et.Kinds, err = models.ParseKinds(exerciseKinds); err != nil {
				return err
			}
		}
		if flags.Changed("icon") {
			et.Icon = optionalString(exerciseIcon)
		}
		if flags.Changed("color") {
			et.Color = optionalString(exerciseColor)
		}
		if err := repo.UpdateExerciseType(et); err != nil {
			return fmt.Errorf("failed to update exercise type: %w", err)
		}
		if flags.Changed("category") {
			ids, err := resolveCategories(exerciseCategories)
			if err != nil {
				return err
			}
			if err := repo.SetExerciseTypeCategories(et.ID, ids); err != nil {
				return fmt.Errorf("failed to link categories: %w", err)
			}
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated exercise %s\n", et.Name)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <name|id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an exercise type",
	Long: `Delete an exercise type. Types with logged sets cannot be deleted; delete
the sets first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		et, err := resolveExercise(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteExerciseType(et.ID); err != nil {
			if errors.Is(err, storage.ErrForeignKey) {
				return fmt.Errorf("exercise %q has logged sets; delete them first", et.Name)
			}
			return fmt.Errorf("failed to delete exercise type: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted exercise %s\n", et.Name)
		return nil
	},
}

var exerciseCategoriesCmd = &cobra.Command{
	Use:   "categories <name|id>",
	Short: "List the categories of an exercise type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		et, err := resolveExercise(args[0])
		if err != nil {
			return err
		}
		categories, err := repo.CategoriesForExerciseType(et.ID)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintln(out, et.Name)
		if len(categories) == 0 {
			fmt.Fprintln(out, "  Uncategorized.")
			return nil
		}
		for _, c := range categories {
			fmt.Fprintf(out, "  %s %s\n", faint.Sprintf("#%-4d", c.ID), c.Name)
		}
		return nil
	},
}

func printExerciseType(w io.Writer, et *models.ExerciseType, c *models.Category) {
	icon, _ := et.Badge(c)
	fmt.Fprintf(w, "  %s %s %s %s\n",
		faint.Sprintf("#%-4d", et.ID),
		padRight(et.Name, 18),
		padRight(et.Kinds.String(), 16),
		faint.Sprint(icon))
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseKinds, "type", "t", "", "measurement kinds: distance, reps, time, weight (comma separated)")
	exerciseAddCmd.Flags().StringSliceVarP(&exerciseCategories, "category", "c", nil, "category name or id (repeatable)")
	exerciseAddCmd.Flags().StringVar(&exerciseIcon, "icon", "", "icon name overriding the category badge")
	exerciseAddCmd.Flags().StringVar(&exerciseColor, "color", "", "hex color overriding the category badge")
	_ = exerciseAddCmd.MarkFlagRequired("type")

	exerciseListCmd.Flags().StringSliceVarP(&exerciseCategories, "category", "c", nil, "only list this category")

	exerciseEditCmd.Flags().StringVar(&exerciseName, "name", "", "new name")
	exerciseEditCmd.Flags().StringVarP(&exerciseKinds, "type", "t", "", "new measurement kinds")
	exerciseEditCmd.Flags().StringSliceVarP(&exerciseCategories, "category", "c", nil, "replace categories (repeatable)")
	exerciseEditCmd.Flags().StringVar(&exerciseIcon, "icon", "", "new icon name, empty to clear")
	exerciseEditCmd.Flags().StringVar(&exerciseColor, "color", "", "new hex color, empty to clear")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseEditCmd, exerciseDeleteCmd, exerciseCategoriesCmd)
	rootCmd.AddCommand(exerciseCmd)
}
