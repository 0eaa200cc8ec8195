// ABOUTME: CLI commands for exporting and importing fitness data.
// ABOUTME: CSV is the interchange format; JSON and YAML are read-only exports.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/plainfit/internal/storage"
)

var (
	exportOutput string
	importYes    bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fitness data",
	Long: `Export fitness data in various formats.

FORMATS:

  csv    One row per round (the format 'plainfit import' reads). Dates are
         UTC as YYYY-MM-DD HH:MM:SS with a .mmm suffix when the time has
         milliseconds; import accepts both forms.
  json   Categories, exercise types, and entries
  yaml   Entries grouped by exercise (human-readable)

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  plainfit export csv -o log.csv     # Save the interchange file
  plainfit export json               # Full JSON dump to stdout
  plainfit export yaml               # Readable summary`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"csv", "json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var (
			data []byte
			err  error
		)
		switch format {
		case "csv":
			var buf bytes.Buffer
			err = repo.ExportCSV(&buf)
			data = buf.Bytes()
		case "json":
			data, err = repo.ExportJSON()
		case "yaml":
			data, err = repo.ExportYAML()
		default:
			return fmt.Errorf("unknown format: %s (use csv, json, or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "✓ Exported to %s\n", exportOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import entries from CSV",
	Long: `Import fitness entries from a CSV file written by 'plainfit export csv'.

The import REPLACES every logged entry. Categories and exercise types are kept;
each row's exerciseName must match an existing exercise type. Nothing changes
unless the whole file imports cleanly.

EXAMPLES:

  plainfit import log.csv          # Asks before replacing
  plainfit import log.csv --yes    # No prompt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		f, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		defer f.Close()

		if !importYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Replace all logged entries?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled.")
				return nil
			}
		}

		n, err := repo.ImportCSV(f)
		switch {
		case errors.Is(err, storage.ErrHeaderMismatch):
			return fmt.Errorf("import failed: %s is not a plainfit CSV export: %w", filename, err)
		case errors.Is(err, storage.ErrUnknownExerciseType):
			return fmt.Errorf("import failed: add the missing exercise type first: %w", err)
		case err != nil:
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported %d entries from %s\n", n, filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
