package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/merchant-report/internal/transfer"
)

func newSFTPHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sftphealth",
		Short: "Open and close an SFTP session against the configured server",
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := transfer.CheckSession(cmd.Context(), ctx.cfg.SFTP, ctx.logger)
			if err != nil {
				return fmt.Errorf("SFTP health: FAIL (%w)", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SFTP health: OK (%s@%s:%d, cwd %s)\n", ctx.cfg.SFTP.User, ctx.cfg.SFTP.Host, ctx.cfg.SFTP.Port, wd)
			return nil
		},
	}
}
