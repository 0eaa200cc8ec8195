// ABOUTME: CLI commands for inspecting and writing the plainfit config file.
// ABOUTME: Supports init, show, and path subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/plainfit/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
	Long: `Settings are read from ~/.config/plainfit/config.yaml (or
$XDG_CONFIG_HOME/plainfit/config.yaml). PLAINFIT_* environment variables
override the file, e.g. PLAINFIT_DATA_DIR or PLAINFIT_LOG_LEVEL.

KEYS:

  data_dir    Directory holding plainfit.db
  log_level   trace, debug, info, warn, error
  log_file    Rotated log file; logs go to stderr when empty
  log_json    Write logs as JSON
  log_stderr  Also copy file logs to stderr
  seed        Load the built-in catalog into an empty database

COMMANDS:

  init   Write a config file with the defaults
  show   Print the effective settings
  path   Print the config file location`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a config file holding the defaults. A --data-dir given on the command
line is stored in the file.

Examples:
  plainfit config init
  plainfit --data-dir ~/Dropbox/plainfit config init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		fresh := config.Defaults()
		fresh.DataDir = dataDirFlag
		if err := fresh.SaveTo(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", faint.Sprintf("# database: %s", cfg.DBPath()))
		_, err = out.Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
