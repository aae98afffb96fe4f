package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/merchant-report/internal/staging"
)

func newSweepCommand(ctx *commandContext) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete one staged cycle directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := staging.WindowFor(ctx.now()).Retire
			if date != "" {
				t, err := ctx.parseDay(date)
				if err != nil {
					return err
				}
				day = t
			}

			removed := staging.NewSweeper(ctx.cfg.Report.BaseDir, ctx.logger).Sweep(day)
			label := day.Format(staging.DateLayout)
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", label)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "nothing removed for %s\n", label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Cycle date to delete (YYYY-MM-DD); defaults to two days ago")

	return cmd
}
