package assets

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/merchant-report/constants"
	"github.com/joseph-ayodele/merchant-report/internal/report"
)

// Fetcher retrieves one remote asset into a local file.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) error
}

// Destinations resolves the local directory for a classification.
type Destinations interface {
	Dir(class constants.Classification) string
}

// Counts holds successful downloads per asset field.
type Counts map[constants.AssetField]int

// NewCounts returns a zeroed counter for every field in specs.
func NewCounts(specs []constants.AssetSpec) Counts {
	c := make(Counts, len(specs))
	for _, s := range specs {
		c[s.Field] = 0
	}
	return c
}

// Any reports whether a field of the given classification succeeded at least once.
func (c Counts) Any(specs []constants.AssetSpec, class constants.Classification) bool {
	for _, s := range specs {
		if s.Classification == class && c[s.Field] > 0 {
			return true
		}
	}
	return false
}

// Stats tallies every (row, field) pair the harvester looked at.
type Stats struct {
	Rows        int
	SkippedRows int
	Invalid     int
	Unsupported int
	Unmapped    int
	Attempted   int
	Succeeded   int
	Failed      int
}

// Result is the outcome of one harvest.
type Result struct {
	Counts Counts
	Stats  Stats
}

// Harvester walks report rows and downloads the assets their URL cells point to.
type Harvester struct {
	fetcher Fetcher
	specs   []constants.AssetSpec
	logger  *slog.Logger
}

func NewHarvester(fetcher Fetcher, logger *slog.Logger) *Harvester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harvester{fetcher: fetcher, specs: constants.AssetFields, logger: logger}
}

// Specs exposes the field table the harvester works with.
func (h *Harvester) Specs() []constants.AssetSpec { return h.specs }

// Harvest processes rows one at a time and fields in table order. No failure
// stops the walk; cancellation of ctx ends it early with the counts so far.
func (h *Harvester) Harvest(ctx context.Context, table *report.Table, dest Destinations) Result {
	res := Result{Counts: NewCounts(h.specs)}

	columns := make(map[constants.AssetField]int, len(h.specs))
	for _, spec := range h.specs {
		col, ok := table.Column(spec.Header)
		if !ok {
			h.logger.Warn("asset.column.missing", "field", spec.Field, "header", spec.Header)
			continue
		}
		columns[spec.Field] = col
	}

	for i, row := range table.Rows {
		if ctx.Err() != nil {
			h.logger.Warn("asset.harvest.cancelled", "row", i+2, "error", ctx.Err())
			break
		}
		if row == nil {
			res.Stats.SkippedRows++
			continue
		}
		res.Stats.Rows++

		identifier := strings.TrimSpace(report.Cell(row, constants.IdentifierColumn))
		for _, spec := range h.specs {
			col, ok := columns[spec.Field]
			if !ok {
				res.Stats.Unmapped++
				continue
			}
			h.harvestCell(ctx, &res, spec, identifier, strings.TrimSpace(report.Cell(row, col)), dest)
		}
	}

	h.logger.Info("asset.harvest.done",
		"rows", res.Stats.Rows,
		"attempted", res.Stats.Attempted,
		"succeeded", res.Stats.Succeeded,
		"failed", res.Stats.Failed,
		"unsupported", res.Stats.Unsupported,
	)
	return res
}

func (h *Harvester) harvestCell(ctx context.Context, res *Result, spec constants.AssetSpec, identifier, url string, dest Destinations) {
	if !IsValidURL(url) {
		res.Stats.Invalid++
		return
	}

	ext, ok := ExtensionFromURL(url)
	if !ok {
		res.Stats.Unsupported++
		h.logger.Warn("asset.extension.unsupported", "field", spec.Field, "url", url)
		return
	}
	if spec.Classification == constants.ClassDocument && ext != constants.DocumentExtension {
		h.logger.Warn("asset.extension.unexpected", "field", spec.Field, "want", constants.DocumentExtension, "got", ext)
	}

	target := filepath.Join(dest.Dir(spec.Classification), FileName(identifier, spec.Header, ext))
	res.Stats.Attempted++
	if err := h.fetcher.Download(ctx, url, target); err != nil {
		res.Stats.Failed++
		h.logger.Warn("asset.download.failed", "field", spec.Field, "url", url, "error", err)
		return
	}
	res.Stats.Succeeded++
	res.Counts[spec.Field]++
}
