package staging

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DeleteRecursively removes every file and subdirectory under dir bottom-up
// and then dir itself. It reports true only when dir existed and is gone.
// Entries that cannot be removed are collected into the returned error; the
// sweep keeps going past them.
func DeleteRecursively(dir string) (bool, error) {
	info, err := os.Lstat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", dir)
	}

	errs := removeChildren(dir)
	if err := os.Remove(dir); err != nil {
		errs = append(errs, fmt.Errorf("remove %s: %w", dir, err))
		return false, errors.Join(errs...)
	}
	return true, errors.Join(errs...)
}

func removeChildren(dir string) []error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []error{fmt.Errorf("read %s: %w", dir, err)}
	}
	var errs []error
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			errs = append(errs, removeChildren(path)...)
		}
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	return errs
}

// Sweeper retires staging cycles that fell out of the retention window.
type Sweeper struct {
	base   string
	logger *slog.Logger
}

func NewSweeper(base string, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{base: base, logger: logger}
}

// Sweep deletes the cycle for date. Failures are logged, never returned.
func (s *Sweeper) Sweep(date time.Time) bool {
	dir := NewCycle(s.base, date).Root()
	removed, err := DeleteRecursively(dir)
	switch {
	case removed && err == nil:
		s.logger.Info("staging.sweep.ok", "dir", dir)
	case removed:
		s.logger.Warn("staging.sweep.partial", "dir", dir, "error", err)
	case err != nil:
		s.logger.Warn("staging.sweep.failed", "dir", dir, "error", err)
	default:
		s.logger.Warn("staging.sweep.missing", "dir", dir)
	}
	return removed
}
