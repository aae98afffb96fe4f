package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/merchant-report/constants"
	"github.com/joseph-ayodele/merchant-report/internal/entity"
)

// Writer renders onboarding records into the report workbook. Rows go
// through excelize's stream writer, so the write pass does not hold the
// table in memory.
type Writer struct {
	f       *excelize.File
	sw      *excelize.StreamWriter
	headers []string
	columns []string
	rows    int
	logger  *slog.Logger
}

// NewWriter starts a workbook with the fixed header row.
func NewWriter(logger *slog.Logger) (*Writer, error) {
	return newWriter(constants.ReportHeaders, constants.RecordColumns, logger)
}

func newWriter(headers, columns []string, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(headers) != len(columns) {
		return nil, fmt.Errorf("report layout: %d headers for %d columns", len(headers), len(columns))
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), constants.ReportSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(constants.ReportSheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stream writer: %w", err)
	}

	w := &Writer{f: f, sw: sw, headers: headers, columns: columns, logger: logger}
	if err := w.setRow(1, toCells(headers)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return w, nil
}

// Append writes one data row, one flattened cell per report column. Cells
// over the workbook limit are cut by excelize; each one is logged.
func (w *Writer) Append(rec *entity.Record) error {
	cells := make([]any, len(w.columns))
	for i, col := range w.columns {
		v := rec.Text(col)
		if n := utf8.RuneCountInString(v); n > excelize.TotalCellChars {
			w.logger.Warn("report.cell.truncated",
				"record_id", rec.ID,
				"column", col,
				"chars", n,
				"limit", excelize.TotalCellChars,
			)
		}
		cells[i] = v
	}
	if err := w.setRow(w.rows+2, cells); err != nil {
		return fmt.Errorf("write row for record %d: %w", rec.ID, err)
	}
	w.rows++
	return nil
}

// Rows is the number of data rows appended so far.
func (w *Writer) Rows() int { return w.rows }

// Save flushes the stream and writes the workbook to path, creating parent
// directories as needed. The writer is closed afterwards.
func (w *Writer) Save(path string) error {
	start := time.Now()
	defer func() { _ = w.f.Close() }()

	if err := w.sw.Flush(); err != nil {
		return fmt.Errorf("xlsx flush: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("report.xlsx.ok",
		"path", path,
		"rows", w.rows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close discards an unsaved workbook.
func (w *Writer) Close() error {
	return w.f.Close()
}

func (w *Writer) setRow(row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.sw.SetRow(cell, cells)
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
