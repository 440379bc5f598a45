package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"alumni-network/internal/config"
	"alumni-network/internal/pkg/logger"
)

type rootOptions struct {
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Alumni network messaging and notification API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				logger.Log.Debug("No .env file found, using environment variables")
			}
			opts.cfg = config.Load()
			logger.Init(opts.cfg.LogLevel, opts.cfg.LogFormat, opts.cfg.IsProduction())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))

	return cmd
}
