package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kids-lecture/api/internal/config"
	"kids-lecture/api/internal/store"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		Long: `Apply the users and lectures tables to the database named by
DATABASE_URL (or POSTGRES_* variables). Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.DatabaseURL == "" {
				return errors.New("set DATABASE_URL or POSTGRES_* to migrate")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := store.Open(ctx, opts.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			opts.log.Info("db connected", "dsn", config.SafeDSNSummary(opts.cfg.DatabaseURL))

			applied, err := store.Migrate(ctx, pool)
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("✓"), name)
			}
			return err
		},
	}
}
