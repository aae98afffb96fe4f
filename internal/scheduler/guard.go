package scheduler

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Guard runs jobs under an exclusive file lock. Any process pointing at the
// same lock file shares it, so a one-off run and the daemon never overlap.
type Guard struct {
	path   string
	logger *slog.Logger
}

func NewGuard(path string, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{path: path, logger: logger}
}

// Path is the lock file location.
func (g *Guard) Path() string { return g.path }

// Run runs job if the lock is free and reports whether it ran.
func (g *Guard) Run(ctx context.Context, job Job) bool {
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		g.logger.Error("scheduler.lock.dir_failed", "path", g.path, "error", err)
		return false
	}
	lock := flock.New(g.path)
	locked, err := lock.TryLock()
	if err != nil {
		g.logger.Error("scheduler.lock.failed", "path", g.path, "error", err)
		return false
	}
	if !locked {
		g.logger.Warn("scheduler.run.skipped", "reason", "previous run still holds the lock", "path", g.path)
		return false
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			g.logger.Warn("scheduler.lock.release_failed", "error", err)
		}
	}()

	job(ctx)
	return true
}
