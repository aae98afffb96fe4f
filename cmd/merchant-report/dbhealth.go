package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/merchant-report/internal/repository"
)

func newDBHealthCommand(ctx *commandContext) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "dbhealth",
		Short: "Ping the onboarding database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.openSource(cmd.Context(), false)
			if err != nil {
				return fmt.Errorf("opening DB: %w", err)
			}
			defer db.Close(ctx.logger)

			if err := repository.HealthCheck(cmd.Context(), db, timeout, ctx.logger); err != nil {
				return fmt.Errorf("DB health: FAIL (%w)", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "DB health: OK (%s)\n", db.Dialect.Name)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Second, "Ping timeout")

	return cmd
}
