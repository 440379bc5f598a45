package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alumni-network/internal/config"
	"alumni-network/internal/repository"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.NewDB(opts.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := repository.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			return nil
		},
	}
}
