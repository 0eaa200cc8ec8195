// ABOUTME: CLI commands for managing exercise categories.
// ABOUTME: Supports add, list, edit, delete, and exercises subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/plainfit/internal/models"
	"github.com/harperreed/plainfit/internal/storage"
)

var (
	categoryIcon  string
	categoryColor string
	categoryName  string
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat", "c"},
	Short:   "Manage categories",
	Long: `Categories group exercise types for browsing and for the calendar badges.

An exercise type can belong to several categories. Deleting a category only
removes its links; the exercise types and their logged sets stay.

COMMANDS:

  add        Create a category
  list       List categories
  edit       Rename or restyle a category
  delete     Delete a category
  exercises  List the exercise types in a category`,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Long: `Add a category. Names are unique.

Examples:
  plainfit category add Climbing
  plainfit category add Swimming --icon figure.pool.swim --color "#00AAFF"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := models.NewCategory(args[0])
		if categoryIcon != "" {
			c.WithIcon(categoryIcon)
		}
		if categoryColor != "" {
			c.WithColor(categoryColor)
		}
		if err := repo.CreateCategory(c); err != nil {
			if errors.Is(err, storage.ErrDuplicateName) {
				return fmt.Errorf("category %q already exists", args[0])
			}
			return fmt.Errorf("failed to create category: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Added category %s\n", c.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n", faint.Sprintf("#%d", c.ID), c.Icon, c.Color)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := repo.ListCategories()
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(categories) == 0 {
			fmt.Fprintln(out, "No categories found.")
			return nil
		}
		for _, c := range categories {
			types, err := repo.ExerciseTypesForCategory(c.ID)
			if err != nil {
				return fmt.Errorf("failed to list exercise types: %w", err)
			}
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprintf("#%-4d", c.ID),
				padRight(c.Name, 16),
				faint.Sprint(padRight(c.Icon, 36)),
				faint.Sprintf("%d exercises", len(types)))
		}
		return nil
	},
}

var categoryEditCmd = &cobra.Command{
	Use:   "edit <name|id>",
	Short: "Edit a category",
	Long: `Change a category's name, icon, or color. Only the given flags change.

Examples:
  plainfit category edit Cardio --color "#FF0000"
  plainfit category edit 3 --name Calisthenics`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveCategory(args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			c.Name = categoryName
		}
		if flags.Changed("icon") {
			c.Icon = categoryIcon
		}
		if flags.Changed("color") {
			c.Color = categoryColor
		}
		if err := repo.UpdateCategory(c); err != nil {
			if errors.Is(err, storage.ErrDuplicateName) {
				return fmt.Errorf("category %q already exists", c.Name)
			}
			return fmt.Errorf("failed to update category: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated category %s\n", c.Name)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete <name|id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a category",
	Long: `Delete a category. Its exercise types are unlinked but kept, along with
every set logged against them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveCategory(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteCategory(c.ID); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted category %s\n", c.Name)
		return nil
	},
}

var categoryExercisesCmd = &cobra.Command{
	Use:   "exercises <name|id>",
	Short: "List the exercise types in a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := resolveCategory(args[0])
		if err != nil {
			return err
		}
		types, err := repo.ExerciseTypesForCategory(c.ID)
		if err != nil {
			return fmt.Errorf("failed to list exercise types: %w", err)
		}
		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintln(out, c.Name)
		if len(types) == 0 {
			fmt.Fprintln(out, "  No exercise types.")
			return nil
		}
		for _, et := range types {
			printExerciseType(out, et, c)
		}
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryIcon, "icon", "", "icon name (default "+models.DefaultIcon+")")
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "hex color (default "+models.DefaultColor+")")

	categoryEditCmd.Flags().StringVar(&categoryName, "name", "", "new name")
	categoryEditCmd.Flags().StringVar(&categoryIcon, "icon", "", "new icon name")
	categoryEditCmd.Flags().StringVar(&categoryColor, "color", "", "new hex color")

	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd, categoryEditCmd, categoryDeleteCmd, categoryExercisesCmd)
	rootCmd.AddCommand(categoryCmd)
}
