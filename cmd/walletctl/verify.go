package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/hrwallet-backend/internal/app"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

var verifyCmd = &cobra.Command{
	Use:   "verify-balances",
	Short: "Compare cached wallet balances with their ledgers",
	Long: `Recomputes every wallet balance from its transactions and reports
wallets whose cached balance disagrees. Nothing is repaired. Exits non-zero
when drift is found.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("user", "", "Verify a single user's wallet")
	verifyCmd.Flags().String("hod", "", "Verify the wallets of a manager's direct reports")
}

func runVerify(cmd *cobra.Command, args []string) error {
	userFlag, _ := cmd.Flags().GetString("user")
	hodFlag, _ := cmd.Flags().GetString("hod")
	if userFlag != "" && hodFlag != "" {
		return errors.New("--user and --hod are mutually exclusive")
	}

	return withServices(cmd, func(ctx context.Context, svcs *app.Services) error {
		var ids []uuid.UUID
		switch {
		case userFlag != "":
			id, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("--user: %w", err)
			}
			ids = []uuid.UUID{id}
		case hodFlag != "":
			hodID, err := uuid.Parse(hodFlag)
			if err != nil {
				return fmt.Errorf("--hod: %w", err)
			}
			reports, err := svcs.Users.ListByHod(ctx, hodID)
			if err != nil {
				return err
			}
			for _, u := range reports {
				ids = append(ids, u.ID)
			}
		default:
			all, err := svcs.Users.ListIDs(ctx)
			if err != nil {
				return err
			}
			ids = all
		}

		out := cmd.OutOrStdout()
		checked, drifted := 0, 0
		for _, id := range ids {
			check, err := svcs.Ledger.VerifyBalance(ctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("user %s: %w", id, err)
			}
			checked++
			if !check.Consistent() {
				drifted++
				fmt.Fprintf(out, "DRIFT %s cached=%s computed=%s\n",
					id, check.Cached.StringFixed(2), check.Computed.StringFixed(2))
			}
		}

		fmt.Fprintf(out, "wallets checked: %d, drifted: %d\n", checked, drifted)
		if drifted > 0 {
			return fmt.Errorf("%d wallets drifted", drifted)
		}
		return nil
	})
}
