// ABOUTME: CLI commands for backing up and restoring the database file.
// ABOUTME: Restore validates the file first and keeps a .bak of the live data.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/plainfit/internal/config"
	"github.com/harperreed/plainfit/internal/storage"
)

var restoreYes bool

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Back up the database",
	Long: `Write a consistent copy of the database to a file. The copy is a plain
SQLite database that 'plainfit restore' accepts.

EXAMPLES:

  plainfit backup ~/Backups/plainfit-2025-06-01.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst := config.ExpandPath(args[0])
		if err := repo.Backup(dst); err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Backed up to %s\n", dst)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore the database from a backup",
	Long: `Replace the database with a backup file.

The file is checked before anything changes: it must be a plainfit database
no newer than this build. The current database is kept next to the live file
with a .bak suffix.

EXAMPLES:

  plainfit restore ~/Backups/plainfit-2025-06-01.db
  plainfit restore backup.db --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := config.ExpandPath(args[0])

		if !restoreYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Replace the current database with "+src+"?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled.")
				return nil
			}
		}

		if err := repo.Restore(src); err != nil {
			switch {
			case errors.Is(err, storage.ErrSchemaTooNew):
				return fmt.Errorf("restore failed: %s was written by a newer plainfit: %w", src, err)
			case errors.Is(err, storage.ErrIncompatibleDatabase):
				return fmt.Errorf("restore failed: %s is not a plainfit database: %w", src, err)
			}
			return fmt.Errorf("restore failed: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Restored from %s\n", src)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", faint.Sprintf("previous data kept at %s.bak", repo.Path()))
		return nil
	},
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(backupCmd, restoreCmd)
}
