package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/merchant-report/internal/pipeline"
	"github.com/joseph-ayodele/merchant-report/internal/scheduler"
)

var (
	errAlreadyRunning = errors.New("another run holds the lock")
	errRunFailed      = errors.New("report run failed")
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		date    string
		inmem   bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the report for yesterday and stage its assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			var runDate time.Time
			if date != "" {
				t, err := ctx.parseDay(date)
				if err != nil {
					return err
				}
				runDate = t
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := ctx.openSource(sigCtx, inmem)
			if err != nil {
				return err
			}
			defer db.Close(ctx.logger)

			p, err := ctx.newPipeline(db, runDate)
			if err != nil {
				return err
			}

			var summary *pipeline.Summary
			guard := scheduler.NewGuard(ctx.lockPath(), ctx.logger)
			ran := guard.Run(sigCtx, func(runCtx context.Context) {
				summary = p.Execute(runCtx)
			})
			if !ran {
				return errAlreadyRunning
			}

			if err := writeSummary(cmd, summary, jsonOut); err != nil {
				return err
			}
			if summary.Error != "" {
				return errRunFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Run as if today were this date (YYYY-MM-DD); the report covers the day before")
	cmd.Flags().BoolVar(&inmem, "inmem", false, "Use an empty in-memory SQLite store instead of DB_URL")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the summary as JSON")

	return cmd
}
