// Package cleanup permanently removes tasks that have been soft-deleted for
// longer than the configured retention.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/config"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/platform/metrics"
	"github.com/gaspigz/taskManagerClg/internal/store"
	"github.com/gaspigz/taskManagerClg/internal/worker"
)

// JobType identifies purge jobs in worker logs and metrics.
const JobType = "task_purge"

// Sweeper purges soft-deleted tasks older than its retention window.
type Sweeper struct {
	tasks     store.TaskStore
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewSweeper creates a Sweeper.
func NewSweeper(tasks store.TaskStore, retention time.Duration, log *slog.Logger) *Sweeper {
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		tasks:     tasks,
		retention: retention,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    log.With(slog.String("component", "cleanup")),
	}
}

// Sweep deletes every task soft-deleted before now minus the retention and
// returns how many rows were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	cutoff := s.now().Add(-s.retention)

	n, err := s.tasks.PurgeDeleted(ctx, cutoff)
	if err != nil {
		log.Error("failed to purge deleted tasks",
			slog.Time("cutoff", cutoff),
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to purge deleted tasks: %w", err)
	}

	metrics.TasksPurged.Add(float64(n))
	if n > 0 {
		log.Info("purged deleted tasks", slog.Int64("count", n), slog.Time("cutoff", cutoff))
	} else {
		log.Debug("no deleted tasks to purge", slog.Time("cutoff", cutoff))
	}
	return n, nil
}

// Job wraps a sweep as a worker job.
func (s *Sweeper) Job() worker.Job {
	return worker.NewFuncJob(JobType, func(ctx context.Context) error {
		_, err := s.Sweep(ctx)
		return err
	})
}

// NewScheduler returns a scheduler that enqueues a sweep every configured
// interval, or nil when cleanup is disabled.
func NewScheduler(
	cfg config.CleanupConfig,
	tasks store.TaskStore,
	queue worker.QueueWriter,
	log *slog.Logger,
) *worker.Scheduler {
	if !cfg.Enabled {
		return nil
	}
	sweeper := NewSweeper(tasks, time.Duration(cfg.RetentionHours)*time.Hour, log)
	return worker.NewScheduler(time.Duration(cfg.IntervalMinutes)*time.Minute, queue, sweeper.Job, log)
}
