package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Table is a report read back from disk. Columns maps header text to its
// zero-based position; Rows holds the data rows in sheet order with nil for
// rows absent from the sheet.
type Table struct {
	Header  []string
	Columns map[string]int
	Rows    [][]string
}

// Read opens the workbook at path and loads its first sheet. Column positions
// come from the header row's literal text, so reordered headers are
// tolerated and renamed ones are not. The sheet is walked with the row
// iterator, but the returned Table holds every data row.
func Read(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open report: %s has no sheets", path)
	}
	rows, err := readRows(f, sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read rows: %s has no header row", path)
	}

	t := &Table{Header: rows[0], Columns: make(map[string]int, len(rows[0]))}
	for i, label := range rows[0] {
		if label == "" {
			continue
		}
		t.Columns[label] = i
	}
	for _, r := range rows[1:] {
		if len(r) == 0 {
			t.Rows = append(t.Rows, nil)
			continue
		}
		t.Rows = append(t.Rows, r)
	}
	return t, nil
}

// readRows walks the sheet with the row iterator and drops trailing empty
// rows. Gaps between populated rows come back as empty slices.
func readRows(f *excelize.File, sheet string) ([][]string, error) {
	it, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	defer func() { _ = it.Close() }()

	var out [][]string
	last := 0
	for it.Next() {
		row, err := it.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(out)+1, err)
		}
		out = append(out, row)
		if len(row) > 0 {
			last = len(out)
		}
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return out[:last], nil
}

// Column returns the position of the header label.
func (t *Table) Column(label string) (int, bool) {
	i, ok := t.Columns[label]
	return i, ok
}

// Cell returns the value at (row, col), or "" when the row is short.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
