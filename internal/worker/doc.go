// Package worker provides a bounded in-memory job queue, a pool of goroutines
// that drains it, and a scheduler that enqueues a job at a fixed interval.
//
// Enqueue never blocks: a full queue rejects the job with ErrQueueFull and the
// caller decides whether to drop it. Jobs are processed at most once and are
// never retried.
package worker
