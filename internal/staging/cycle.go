package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/merchant-report/constants"
)

// DateLayout names staging directories.
const DateLayout = "2006-01-02"

// Window is the set of calendar dates one run works with.
type Window struct {
	// Today is the run's own calendar date. It labels the session only.
	Today time.Time
	// Target is the date whose records are reported (yesterday).
	Target time.Time
	// Retire is the date whose staging cycle is deleted (day before yesterday).
	Retire time.Time
}

// WindowFor derives the run window from the run instant in its own location.
func WindowFor(now time.Time) Window {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Window{
		Today:  today,
		Target: today.AddDate(0, 0, -1),
		Retire: today.AddDate(0, 0, -2),
	}
}

// Cycle is the directory tree for one target date:
// {base}/{date}/main_report.xlsx, images/ and documents/.
type Cycle struct {
	Base string
	Date time.Time
}

func NewCycle(base string, date time.Time) Cycle {
	return Cycle{Base: base, Date: date}
}

// Label is the directory name for the cycle's date.
func (c Cycle) Label() string { return c.Date.Format(DateLayout) }

func (c Cycle) Root() string { return filepath.Join(c.Base, c.Label()) }

func (c Cycle) ReportPath() string { return filepath.Join(c.Root(), constants.ReportFileName) }

func (c Cycle) ImagesDir() string { return filepath.Join(c.Root(), constants.ClassImage.Dir()) }

func (c Cycle) DocumentsDir() string { return filepath.Join(c.Root(), constants.ClassDocument.Dir()) }

// Dir returns the destination subtree for a classification.
func (c Cycle) Dir(class constants.Classification) string {
	return filepath.Join(c.Root(), class.Dir())
}

// Ensure creates the cycle's directories, reusing any that already exist.
func (c Cycle) Ensure() error {
	for _, dir := range []string{c.ImagesDir(), c.DocumentsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create staging dir %s: %w", dir, err)
		}
	}
	return nil
}
