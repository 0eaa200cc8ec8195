// ABOUTME: Root Cobra command for the plainfit CLI.
// ABOUTME: Loads config, sets up logging, and owns the storage lifecycle.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/harperreed/plainfit/internal/config"
	"github.com/harperreed/plainfit/internal/logging"
	"github.com/harperreed/plainfit/internal/storage"
)

var (
	cfg       *config.Config
	repo      storage.Repository
	logCloser io.Closer

	dataDirFlag string
	noSeedFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "plainfit",
	Short: "Local fitness log",
	Long: `PlainFit is a local fitness log: exercise types grouped into categories,
and sets of rounds logged against them.

QUICK START:

  $ plainfit exercise list                         # See the exercise catalog
  $ plainfit log Squat --reps 5 --weight 100kg -n 3 # Log three rounds of squats
  $ plainfit day                                   # What did I do today?
  $ plainfit calendar                              # This month at a glance

CATALOG:

  $ plainfit category add Climbing --icon figure.climbing --color "#AA8800"
  $ plainfit exercise add Bouldering --type reps,time --category Climbing

DATA:

  $ plainfit export csv -o log.csv     # Interchange format
  $ plainfit import log.csv            # Replaces every entry
  $ plainfit backup ~/plainfit.db      # Snapshot the database
  $ plainfit restore ~/plainfit.db     # Swap it back in

MCP INTEGRATION:

  Run 'plainfit mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "plainfit": { "command": "plainfit", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/plainfit/plainfit.db.
  Settings live in ~/.config/plainfit/config.yaml and PLAINFIT_* variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func setup(cmd *cobra.Command, args []string) error {
	// Skip storage init for commands that don't need it
	switch cmd.Name() {
	case "version", "help", "install-skill":
		return nil
	}

	if err := loadConfig(); err != nil {
		return err
	}
	if cmd.HasParent() && cmd.Parent() == configCmd {
		return nil
	}

	logCloser = logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.GetLogFile(),
		LogToStderr:   cfg.LogStderr,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})

	var err error
	repo, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Seed && !noSeedFlag {
		catalog, err := storage.DefaultCatalog()
		if err != nil {
			return err
		}
		if _, err := repo.SeedIfEmpty(catalog, time.Now()); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}
	return nil
}

func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	return nil
}

func teardown() error {
	var err error
	if repo != nil {
		err = multierr.Append(err, repo.Close())
		repo = nil
	}
	if logCloser != nil {
		err = multierr.Append(err, logCloser.Close())
		logCloser = nil
	}
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the plainfit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "plainfit", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noSeedFlag, "no-seed", false, "do not load the built-in catalog into an empty database")
	rootCmd.AddCommand(versionCmd)
}
