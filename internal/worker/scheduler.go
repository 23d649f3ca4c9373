package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Scheduler enqueues a fresh job every interval until stopped.
type Scheduler struct {
	interval time.Duration
	queue    QueueWriter
	newJob   func() Job
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler. newJob is called on every tick.
func NewScheduler(interval time.Duration, queue QueueWriter, newJob func() Job, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		interval: interval,
		queue:    queue,
		newJob:   newJob,
		logger:   log.With(slog.String("component", "scheduler")),
	}
}

// Start begins ticking. The first job is enqueued after one interval.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.enqueue()
			}
		}
	}()
}

// Trigger enqueues a job immediately.
func (s *Scheduler) Trigger() {
	s.enqueue()
}

func (s *Scheduler) enqueue() {
	job := s.newJob()
	if err := s.queue.Enqueue(job); err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrQueueClosed) {
			level = slog.LevelDebug
		}
		s.logger.Log(context.Background(), level, "failed to enqueue scheduled job",
			slog.String("job_type", job.Type()),
			slog.String("error", err.Error()))
	}
}

// Stop halts the ticker and waits for the scheduling goroutine to exit.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
