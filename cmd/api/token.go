package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"alumni-network/internal/domain"
	"alumni-network/internal/service/auth"
)

type tokenOptions struct {
	*rootOptions
	userID string
	role   string
}

func newTokenCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &tokenOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		Long: `Mint an access token signed with JWT_SECRET.

Example:
  api token --user 3f2b... --role alumni`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(opts.userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			role := domain.Role(opts.role)
			if !role.IsValid() {
				return fmt.Errorf("invalid --role %q", opts.role)
			}

			token, err := auth.NewService(opts.cfg).Issue(domain.Identity{UserID: userID, Role: role})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.userID, "user", "", "user id (uuid)")
	cmd.Flags().StringVar(&opts.role, "role", string(domain.RoleStudent), "role (student|alumni|admin)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
