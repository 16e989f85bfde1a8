package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hrwallet-backend/internal/adapter/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current schema version",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	results, err := postgres.Migrate(cmd.Context(), cfg.Database.DSN)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "Schema is up to date.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "applied %05d %s (%s)\n", r.Version, r.Source, r.Duration)
	}
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	version, err := postgres.MigrationVersion(cmd.Context(), cfg.Database.DSN)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return nil
}
