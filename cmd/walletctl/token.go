package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/hrwallet-backend/internal/auth"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for local development",
	Long: `Signs an access token with the configured secret. Production tokens
come from the identity service; this exists for local testing only.`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "User id to put in the subject claim")
	tokenCmd.Flags().String("role", string(domain.RoleEmployee), "Role claim")
}

func runToken(cmd *cobra.Command, args []string) error {
	userFlag, _ := cmd.Flags().GetString("user")
	roleFlag, _ := cmd.Flags().GetString("role")

	userID, err := uuid.Parse(userFlag)
	if err != nil {
		return fmt.Errorf("--user: %w", err)
	}
	role := domain.NormalizeRole(roleFlag)

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwt.GenerateAccessToken(userID, role)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
