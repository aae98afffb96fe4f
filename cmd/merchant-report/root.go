package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/merchant-report/internal/common"
)

// commandContext carries the configuration and logger shared by subcommands.
type commandContext struct {
	logLevel string
	cfg      *common.Config
	logger   *slog.Logger
}

func (c *commandContext) init() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.logLevel))); err != nil {
		return fmt.Errorf("invalid --log-level %q", c.logLevel)
	}
	c.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(c.logger)
	c.cfg = common.LoadConfig()
	return nil
}

// lockPath is shared by the daemon and one-off runs so they never overlap.
func (c *commandContext) lockPath() string {
	return filepath.Join(c.cfg.Report.BaseDir, ".merchant-report.lock")
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "merchant-report",
		Short:         "Nightly merchant onboarding report and asset staging",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newSweepCommand(ctx))
	rootCmd.AddCommand(newDaemonCommand(ctx))
	rootCmd.AddCommand(newDBHealthCommand(ctx))
	rootCmd.AddCommand(newSFTPHealthCommand(ctx))

	return rootCmd
}
