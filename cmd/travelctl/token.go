package main

import (
	"fmt"
	"time"

	"travel-booking/internal/domain/user"
	"travel-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func tokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage operator tokens",
	}
	cmd.AddCommand(tokenIssueCmd(a))
	return cmd
}

func tokenIssueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed operator token",
		Long: `Issue a bearer token signed with JWT_SECRET.

Operator tokens unlock the booking listing and offline (cash, card, transfer) settlement.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			roleName, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			id := uuid.New()
			if subject != "" {
				parsed, err := uuid.Parse(subject)
				if err != nil {
					return fmt.Errorf("subject must be a UUID: %w", err)
				}
				id = parsed
			}
			role, err := user.NewRole(roleName)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive")
			}

			svc := jwt.NewServiceFromConfig(a.cfg.JWT)
			token, err := svc.GenerateTokenWithTTL(id, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("subject", "", "Operator id (UUID, random when empty)")
	cmd.Flags().String("role", string(user.RoleOperator), "Role: viewer, operator or admin")
	cmd.Flags().Duration("ttl", 12*time.Hour, "Token lifetime")
	return cmd
}
