package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/hrwallet-backend/internal/app"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile-currency",
	Short: "Rewrite stored currencies to each user's authoritative currency",
	Long: `Rewrites the currency of a user's wallet, credit requests, wallet
transactions and redemptions to the currency derived from their employment
type. Amounts are never changed. Safe to run repeatedly.`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().String("user", "", "Reconcile a single user by id")
	reconcileCmd.Flags().Bool("all", false, "Reconcile every user")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	userFlag, _ := cmd.Flags().GetString("user")
	all, _ := cmd.Flags().GetBool("all")

	if (userFlag == "") == !all {
		return errors.New("exactly one of --user or --all is required")
	}

	var userID uuid.UUID
	if userFlag != "" {
		id, err := uuid.Parse(userFlag)
		if err != nil {
			return fmt.Errorf("--user: %w", err)
		}
		userID = id
	}

	return withServices(cmd, func(ctx context.Context, svcs *app.Services) error {
		out := cmd.OutOrStdout()

		if all {
			summary, err := svcs.Currency.ReconcileAll(ctx)
			fmt.Fprintf(out, "users: %d, changed: %d, failed: %d\n", summary.Users, summary.Changed, summary.Failed)
			return err
		}

		res, err := svcs.Currency.Reconcile(ctx, userID)
		if err != nil {
			return err
		}
		if res.NoOp {
			fmt.Fprintf(out, "user %s not found, nothing to do\n", userID)
			return nil
		}
		fmt.Fprintf(out, "user %s -> %s: %d records changed\n", userID, res.Currency, res.Changed())
		return nil
	})
}
