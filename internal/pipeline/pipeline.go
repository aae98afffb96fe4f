package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/merchant-report/internal/assets"
	"github.com/joseph-ayodele/merchant-report/internal/common"
	"github.com/joseph-ayodele/merchant-report/internal/report"
	"github.com/joseph-ayodele/merchant-report/internal/repository"
	"github.com/joseph-ayodele/merchant-report/internal/staging"
)

// DefaultBatchSize is the extraction page size.
const DefaultBatchSize = 1000

// Publisher ships a finished staging cycle to its downstream destination.
type Publisher interface {
	Publish(ctx context.Context, cycle staging.Cycle) error
}

// Options tune a Pipeline. Zero values pick defaults.
type Options struct {
	BaseDir   string
	BatchSize int
	// Now supplies the run instant; its location decides the calendar dates.
	Now func() time.Time
	// Publisher is optional.
	Publisher Publisher
}

// Pipeline produces one staging cycle per Run: extract, render, re-read,
// harvest assets, publish, then retire the cycle from two days earlier.
type Pipeline struct {
	source    repository.OnboardingRepository
	harvester *assets.Harvester
	publisher Publisher
	baseDir   string
	batchSize int
	now       func() time.Time
	logger    *slog.Logger
}

func New(source repository.OnboardingRepository, fetcher assets.Fetcher, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		source:    source,
		harvester: assets.NewHarvester(fetcher, logger),
		publisher: opts.Publisher,
		baseDir:   opts.BaseDir,
		batchSize: opts.BatchSize,
		now:       opts.Now,
		logger:    logger,
	}
}

// Execute runs the pipeline and always returns a summary; a fatal failure is
// reported through the summary's Error field.
func (p *Pipeline) Execute(ctx context.Context) *Summary {
	s, err := p.Run(ctx)
	if err != nil {
		return ErrorSummary(err)
	}
	return s
}

// Run performs one pass. Only data source failures and report I/O failures
// are returned as errors; asset, transfer and sweep problems are logged.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	runID := uuid.New().String()
	ctx = common.WithRunID(ctx, runID)
	logger := p.logger.With("run_id", runID)

	window := staging.WindowFor(p.now())
	cycle := staging.NewCycle(p.baseDir, window.Target)
	logger.Info("pipeline.run.start",
		"today", window.Today.Format(staging.DateLayout),
		"target_date", cycle.Label(),
		"staging_dir", cycle.Root(),
	)

	if err := cycle.Ensure(); err != nil {
		logger.Error("pipeline.staging.failed", "error", err)
		return nil, common.NewAppError(common.CodeStagingFailed, "prepare staging directories", errors.Join(common.ErrStorage, err))
	}

	rows, err := p.render(ctx, cycle, logger)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		logger.Warn("pipeline.report.no_data", "target_date", cycle.Label())
	}

	table, err := report.Read(cycle.ReportPath())
	if err != nil {
		logger.Error("pipeline.report.read_failed", "error", err)
		return nil, common.NewAppError(common.CodeRenderFailed, "re-read report", errors.Join(common.ErrStorage, err))
	}

	harvest := p.harvester.Harvest(ctx, table, cycle)
	for _, spec := range p.harvester.Specs() {
		logger.Info("pipeline.download.count", "field", spec.Field, "count", harvest.Counts[spec.Field])
	}

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, cycle); err != nil {
			logger.Error("pipeline.publish.failed", "error", err)
		}
	}

	staging.NewSweeper(p.baseDir, logger).Sweep(window.Retire)

	_, statErr := os.Stat(cycle.ReportPath())
	summary := newSummary(harvest.Counts, p.harvester.Specs(), statErr == nil)
	summary.RunID = runID
	summary.TargetDate = cycle.Label()
	summary.Rows = rows

	logger.Info("pipeline.run.done",
		"rows", rows,
		"excel_generated", summary.ExcelGenerated,
		"documents_downloaded", summary.DocumentsDownloaded,
		"images_downloaded", summary.ImagesDownloaded,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}

// render pages through the source one batch at a time until an empty page and
// writes every record to the cycle's report file.
func (p *Pipeline) render(ctx context.Context, cycle staging.Cycle, logger *slog.Logger) (int, error) {
	w, err := report.NewWriter(logger)
	if err != nil {
		return 0, common.NewAppError(common.CodeRenderFailed, "start report", err)
	}

	for offset := 0; ; offset += p.batchSize {
		batch, err := p.source.FetchBatch(ctx, cycle.Date, offset, p.batchSize)
		if err != nil {
			_ = w.Close()
			logger.Error("pipeline.extract.failed", "offset", offset, "error", err)
			return 0, common.NewAppError(common.CodeExtractFailed, "fetch onboarding batch", err)
		}
		if len(batch) == 0 {
			break
		}
		for _, rec := range batch {
			if err := w.Append(rec); err != nil {
				_ = w.Close()
				return 0, common.NewAppError(common.CodeRenderFailed, "append report row", err)
			}
		}
		logger.Debug("pipeline.extract.batch", "offset", offset, "rows", len(batch))
	}

	rows := w.Rows()
	if err := w.Save(cycle.ReportPath()); err != nil {
		logger.Error("pipeline.report.write_failed", "error", err)
		return 0, common.NewAppError(common.CodeRenderFailed, "write report", errors.Join(common.ErrStorage, err))
	}
	return rows, nil
}
