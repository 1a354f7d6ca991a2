package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vertti/hostprobe/pkg/config"
)

// ErrNoDatabase is returned by the db command when no connection is configured.
var ErrNoDatabase = errors.New("no database configured: set --connection, database.connection or " + config.EnvConnection)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Insert, select and query the server version",
	Long: `Run the database smoke test: insert a row, read the table back and
print the server version. Any failure exits non-zero.

Examples:
  hostprobe db --connection "host=localhost;port=5432;username=u;password=p;database=test"
  hostprobe db --server-version ">= 12" --table public.probe --create-table
  hostprobe db --driver sqlite --connection ./probe.db --create-table`,
	Args: cobra.NoArgs,
	RunE: runDB,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}

func runDB(cmd *cobra.Command, _ []string) error {
	if !cfg.DatabaseEnabled() {
		return ErrNoDatabase
	}
	return emit(cmd, databaseSection(cmd.Context()))
}
