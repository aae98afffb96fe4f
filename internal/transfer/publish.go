package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/merchant-report/constants"
	"github.com/joseph-ayodele/merchant-report/internal/common"
	"github.com/joseph-ayodele/merchant-report/internal/staging"
)

// Uploader sends one local file to a remote logical path. Implementations
// create intermediate remote directories as needed.
type Uploader interface {
	Upload(ctx context.Context, localPath, remotePath string) error
}

// Stats summarises a publish.
type Stats struct {
	Uploaded int
	Failed   int
}

// Publish uploads a staging cycle to {remoteBase}/{date}/: the report first,
// then the flat contents of images/ and documents/. A failed file does not
// stop the others; their errors are joined into the result.
func Publish(ctx context.Context, up Uploader, cycle staging.Cycle, remoteBase string, logger *slog.Logger) (Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	remoteRoot := path.Join(remoteBase, cycle.Label())

	var stats Stats
	var errs []error
	send := func(local, remote string) {
		if err := up.Upload(ctx, local, remote); err != nil {
			stats.Failed++
			errs = append(errs, fmt.Errorf("upload %s: %w", local, err))
			logger.Warn("transfer.upload.failed", "local", local, "remote", remote, "error", err)
			return
		}
		stats.Uploaded++
	}

	send(cycle.ReportPath(), path.Join(remoteRoot, constants.ReportFileName))

	for _, class := range []constants.Classification{constants.ClassImage, constants.ClassDocument} {
		dir := cycle.Dir(class)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Errorf("list %s: %w", dir, err))
			}
			continue
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			if ctx.Err() != nil {
				return stats, errors.Join(append(errs, ctx.Err())...)
			}
			send(filepath.Join(dir, e.Name()), path.Join(remoteRoot, class.Dir(), e.Name()))
		}
	}

	logger.Info("transfer.publish.done",
		"remote_root", remoteRoot,
		"uploaded", stats.Uploaded,
		"failed", stats.Failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return stats, errors.Join(errs...)
}

// SFTPPublisher opens a fresh SFTP session per publish.
type SFTPPublisher struct {
	cfg    common.SFTPConfig
	logger *slog.Logger
}

func NewSFTPPublisher(cfg common.SFTPConfig, logger *slog.Logger) *SFTPPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SFTPPublisher{cfg: cfg, logger: logger}
}

// Publish uploads cycle to the configured remote base.
func (p *SFTPPublisher) Publish(ctx context.Context, cycle staging.Cycle) error {
	up, err := DialSFTP(ctx, p.cfg, p.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := up.Close(); err != nil {
			p.logger.Warn("transfer.sftp.close_error", "error", err)
		}
	}()
	_, err = Publish(ctx, up, cycle, p.cfg.RemoteBase, p.logger)
	return err
}
