package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/platform/metrics"
)

// Pool manages a set of worker goroutines that process jobs
// from a queue. It handles graceful shutdown and worker lifecycle.
type Pool struct {
	// queue provides read access to the jobs to be processed
	queue QueueReader

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	logger *slog.Logger

	// errorHandler is called when a job fails or panics.
	// If nil, errors are only logged.
	errorHandler func(job Job, err error)

	startOnce sync.Once
	stopOnce  sync.Once
}

// PoolConfig holds configuration options for the pool
type PoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start.
	// If zero or negative, defaults to 1.
	WorkerCount int
}

// DefaultPoolConfig returns a PoolConfig with a single worker, which keeps
// jobs in FIFO order.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		WorkerCount: 1,
	}
}

// NewPool creates a new pool with the specified configuration
func NewPool(queue QueueReader, config PoolConfig, log *slog.Logger) *Pool {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "worker_pool"))

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		log.Warn("invalid worker count specified, using default",
			slog.Int("specified_count", config.WorkerCount),
			slog.Int("default_count", 1))
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		queue:       queue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      log,
	}
}

// SetErrorHandler sets a callback for job failures. Must be called before Start.
func (p *Pool) SetErrorHandler(handler func(job Job, err error)) {
	p.errorHandler = handler
}

// Start launches the worker goroutines. Calling Start more than once has no effect.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.logger.Info("starting worker pool", slog.Int("worker_count", p.workerCount))
		for i := 0; i < p.workerCount; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
	})
}

// Stop cancels in-flight jobs and waits for the workers to exit. Jobs still
// buffered in the queue are abandoned.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
		p.logger.Info("worker pool stopped")
	})
}

// Wait blocks until every worker has exited. Workers exit once the queue is
// closed and drained, or after Stop.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", slog.Int("worker_id", id))
	jobs := p.queue.Jobs()

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("stopping worker", slog.Int("worker_id", id))
			return

		case job, ok := <-jobs:
			if !ok {
				p.logger.Debug("job channel closed, stopping worker", slog.Int("worker_id", id))
				return
			}
			p.process(job, id)
		}
	}
}

// process runs a single job. A panicking job is reported as a failure and
// does not take the worker down.
func (p *Pool) process(job Job, workerID int) {
	log := p.logger.With(
		slog.String("job_id", job.ID().String()),
		slog.String("job_type", job.Type()),
		slog.Int("worker_id", workerID),
	)
	ctx := logger.WithContext(p.ctx, log)

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("job panicked: %v", r)
			}
		}()
		return job.Execute(ctx)
	}()

	if err != nil {
		metrics.JobsProcessed.WithLabelValues(job.Type(), "failure").Inc()
		log.Error("job execution failed", slog.String("error", err.Error()))
		if p.errorHandler != nil {
			p.errorHandler(job, err)
		}
		return
	}

	metrics.JobsProcessed.WithLabelValues(job.Type(), "success").Inc()
	log.Debug("job completed")
}
