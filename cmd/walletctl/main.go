// Command walletctl runs HR wallet maintenance tasks: schema migrations,
// currency reconciliation, ledger verification, role bootstrap and
// development tokens.
//
// Configuration is loaded exactly as the server loads it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hrwallet-backend/internal/app"
	"github.com/heartmarshall/hrwallet-backend/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "walletctl",
	Short:         "HR wallet maintenance commands",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "walletctl:", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and the logger for a subcommand.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// withServices runs fn against the fully wired service graph.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svcs *app.Services) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svcs, err := app.Wire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svcs.Close()

	return fn(ctx, svcs)
}
