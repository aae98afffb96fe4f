package main

import (
	"context"
	"time"

	"github.com/joseph-ayodele/merchant-report/internal/assets"
	"github.com/joseph-ayodele/merchant-report/internal/common"
	"github.com/joseph-ayodele/merchant-report/internal/pipeline"
	"github.com/joseph-ayodele/merchant-report/internal/repository"
	"github.com/joseph-ayodele/merchant-report/internal/transfer"
)

// openSource connects to the configured database, or to an empty in-memory
// SQLite store with the onboarding schema when inmem is set.
func (c *commandContext) openSource(ctx context.Context, inmem bool) (*repository.Database, error) {
	if err := c.cfg.Validate(!inmem); err != nil {
		return nil, err
	}
	if inmem {
		db, err := repository.OpenSQLite(ctx, "", c.logger)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureSchema(ctx, db); err != nil {
			db.Close(c.logger)
			return nil, err
		}
		return db, nil
	}
	return repository.Open(ctx, repository.ConfigFrom(c.cfg.Database), c.logger)
}

// newPipeline wires the pipeline against db. A non-zero runDate pins the run
// instant instead of the wall clock.
func (c *commandContext) newPipeline(db *repository.Database, runDate time.Time) (*pipeline.Pipeline, error) {
	loc, err := c.cfg.Location()
	if err != nil {
		return nil, err
	}
	now := func() time.Time { return time.Now().In(loc) }
	if !runDate.IsZero() {
		now = func() time.Time { return runDate }
	}

	opts := pipeline.Options{
		BaseDir:   c.cfg.Report.BaseDir,
		BatchSize: c.cfg.Report.BatchSize,
		Now:       now,
	}
	if c.cfg.SFTP.Enabled {
		opts.Publisher = transfer.NewSFTPPublisher(c.cfg.SFTP, c.logger)
	}

	source := repository.NewOnboardingRepository(db, c.cfg.Database.StatementTimeout, c.logger)
	fetcher := assets.NewDownloader(c.cfg.Download.ConnectTimeout, c.cfg.Download.ReadTimeout, c.logger)
	return pipeline.New(source, fetcher, opts, c.logger), nil
}

// parseDay parses a YYYY-MM-DD flag in the configured report zone.
func (c *commandContext) parseDay(s string) (time.Time, error) {
	loc, err := c.cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, common.NewAppError("INVALID_DATE", "date must be YYYY-MM-DD", common.ErrInvalidInput)
	}
	return t, nil
}

func (c *commandContext) now() time.Time {
	loc, err := c.cfg.Location()
	if err != nil {
		return time.Now()
	}
	return time.Now().In(loc)
}
