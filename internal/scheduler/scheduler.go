package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context)

// Scheduler fires a job on a six-field cron expression (seconds first). Every
// firing goes through the Guard, so a trigger that overlaps a run still in
// flight, in this process or another one sharing the lock file, is skipped.
type Scheduler struct {
	cron   *cron.Cron
	guard  *Guard
	logger *slog.Logger
}

func New(loc *time.Location, guard *Guard, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		guard:  guard,
		logger: logger,
	}
}

// Register schedules job under spec. ctx is handed to every invocation.
func (s *Scheduler) Register(ctx context.Context, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.guard.Run(ctx, job) })
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	s.logger.Info("scheduler.registered", "spec", spec)
	return nil
}

// Start begins firing registered jobs in the background.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the schedule; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }

// Next returns the next firing time of the first registered job.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// cronLogger adapts slog to the cron package's logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron."+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron."+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
