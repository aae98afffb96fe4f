package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/merchant-report/internal/repository"
	"github.com/joseph-ayodele/merchant-report/internal/scheduler"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the report on the configured schedule and serve gRPC health",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := ctx.logger
			db, err := ctx.openSource(sigCtx, false)
			if err != nil {
				return err
			}
			defer db.Close(logger)

			if err := repository.HealthCheck(sigCtx, db, ctx.cfg.Database.DialTimeout, logger); err != nil {
				return fmt.Errorf("DB health failed: %w", err)
			}
			logger.Info("DB health OK")

			p, err := ctx.newPipeline(db, time.Time{})
			if err != nil {
				return err
			}
			loc, _ := ctx.cfg.Location()
			guard := scheduler.NewGuard(ctx.lockPath(), logger)
			sched := scheduler.New(loc, guard, logger)
			if err := sched.Register(sigCtx, ctx.cfg.Schedule.Cron, func(runCtx context.Context) {
				summary := p.Execute(runCtx)
				logger.Info("daemon.run.done",
					"target_date", summary.TargetDate,
					"excel_generated", summary.ExcelGenerated,
					"documents_downloaded", summary.DocumentsDownloaded,
					"images_downloaded", summary.ImagesDownloaded,
					"error", summary.Error,
				)
			}); err != nil {
				return err
			}

			grpcServer := grpc.NewServer()
			hs := health.NewServer()
			healthpb.RegisterHealthServer(grpcServer, hs)
			hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
			reflection.Register(grpcServer)

			lis, err := net.Listen("tcp", ctx.cfg.Schedule.GRPCAddr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", ctx.cfg.Schedule.GRPCAddr, err)
			}
			serveErr := make(chan error, 1)
			go func() {
				logger.Info("grpc listening", "addr", lis.Addr().String())
				serveErr <- grpcServer.Serve(lis)
			}()

			sched.Start()
			logger.Info("daemon.started", "spec", ctx.cfg.Schedule.Cron, "lock", guard.Path(), "next", sched.Next())

			select {
			case <-sigCtx.Done():
			case err = <-serveErr:
				logger.Error("grpc serve", "error", err)
			}

			logger.Info("shutting down")
			hs.Shutdown()
			<-sched.Stop().Done()
			grpcServer.GracefulStop()
			return err
		},
	}
}
