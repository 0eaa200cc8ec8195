// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harperreed/plainfit/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and log your workouts through a
standardized protocol. The server communicates via stdin/stdout; logs go to
stderr or the configured log file.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "plainfit": {
        "command": "plainfit",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  log_set              Log a set of rounds for an exercise
  list_day             List the sets logged on a day
  get_set              Get every round of a set
  delete_set           Delete a set
  list_categories      List categories
  list_exercise_types  List exercise types, optionally by category
  month_activity       Activities per day of a month
  export_csv           Export all entries as CSV

AVAILABLE RESOURCES:

  plainfit://today     Today's sets
  plainfit://catalog   Categories and exercise types`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, version)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logrus.WithField("db", repo.Path()).Info("starting mcp server")
		if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
