package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Set a user's role by email",
	Long:  `Sets a user's role. Used to bootstrap the first admin and payout staff.`,
	RunE:  runPromote,
}

func init() {
	rootCmd.AddCommand(promoteCmd)

	promoteCmd.Flags().String("email", "", "Email of the user to promote")
	promoteCmd.Flags().String("role", string(domain.RoleAdmin), "Role to grant: admin, hod, account or employee")
}

func runPromote(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	roleFlag, _ := cmd.Flags().GetString("role")

	if email == "" {
		return fmt.Errorf("--email is required")
	}
	role := domain.Role(roleFlag)
	if !role.IsValid() {
		return fmt.Errorf("--role: unknown role %q", roleFlag)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx,
		"UPDATE users SET role = $2, updated_at = now() WHERE email = $1 AND role != $2",
		email, role.String(),
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no user found with email %q, or already %s", email, role)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "User %q is now %s.\n", email, role)
	return nil
}
