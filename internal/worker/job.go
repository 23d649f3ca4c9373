package worker

import (
	"context"

	"github.com/google/uuid"
)

// Job is a unit of background work.
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier, used in logs and metrics
	Type() string

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// QueueReader provides read-only access to the job channel
// allowing workers to consume jobs without the ability to enqueue.
type QueueReader interface {
	Jobs() <-chan Job
}

// QueueWriter provides write access to the job queue.
type QueueWriter interface {
	// Enqueue adds a job to the queue for processing.
	// Returns an error if the queue is full or closed.
	Enqueue(job Job) error
}

// funcJob adapts a function to the Job interface.
type funcJob struct {
	id      uuid.UUID
	jobType string
	fn      func(ctx context.Context) error
}

// NewFuncJob wraps fn as a Job with a fresh id.
func NewFuncJob(jobType string, fn func(ctx context.Context) error) Job {
	return &funcJob{id: uuid.New(), jobType: jobType, fn: fn}
}

func (j *funcJob) ID() uuid.UUID                     { return j.id }
func (j *funcJob) Type() string                      { return j.jobType }
func (j *funcJob) Execute(ctx context.Context) error { return j.fn(ctx) }
