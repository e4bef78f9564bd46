package main

import (
	"fmt"
	"time"

	"github.com/forgeline/equipment-cms/config"
	"github.com/forgeline/equipment-cms/internal/auth"
	"github.com/spf13/cobra"
)

// newTokenCmd issues admin tokens signed with the configured secret. Intended
// for local development where no identity provider is running.
func newTokenCmd() *cobra.Command {
	var (
		subject string
		email   string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed admin bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadEnv()
			if role == "" {
				role = cfg.JWT.AdminRole
			}
			token, err := auth.NewVerifier(cfg.JWT.SecretKey, cfg.JWT.Issuer).Sign(auth.Session{
				UserID: subject,
				Email:  email,
				Role:   role,
			}, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "dev-admin", "token subject (user id)")
	cmd.Flags().StringVar(&email, "email", "admin@localhost", "email claim")
	cmd.Flags().StringVar(&role, "role", "", "role claim, defaults to JWT_ADMIN_ROLE")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	return cmd
}
