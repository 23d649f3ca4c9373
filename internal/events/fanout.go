package events

import (
	"context"
	"log/slog"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/platform/metrics"
	"github.com/gaspigz/taskManagerClg/internal/worker"
	"github.com/google/uuid"
)

// JobType is the worker job type used for event delivery.
const JobType = "event_delivery"

// Fanout is a Notifier that queues each event for asynchronous delivery
// through an EventEmitter. When the queue is full the event is dropped.
type Fanout struct {
	queue   worker.QueueWriter
	emitter EventEmitter
	logger  *slog.Logger
}

var _ Notifier = (*Fanout)(nil)

// NewFanout creates a Fanout.
func NewFanout(queue worker.QueueWriter, emitter EventEmitter, log *slog.Logger) *Fanout {
	if queue == nil || emitter == nil {
		panic("queue and emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Fanout{
		queue:   queue,
		emitter: emitter,
		logger:  log.With(slog.String("component", "event_fanout")),
	}
}

// NotifyCreated implements Notifier.
func (f *Fanout) NotifyCreated(ctx context.Context, task domain.Task) {
	f.publish(ctx, TaskCreated, task)
}

// NotifyUpdated implements Notifier.
func (f *Fanout) NotifyUpdated(ctx context.Context, task domain.Task) {
	f.publish(ctx, TaskUpdated, task)
}

// NotifyDeleted implements Notifier.
func (f *Fanout) NotifyDeleted(ctx context.Context, taskID int64) {
	f.publish(ctx, TaskDeleted, DeletedPayload{ID: taskID})
}

func (f *Fanout) publish(ctx context.Context, eventType EventType, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, f.logger)

	event, err := NewTaskEvent(eventType, payload)
	if err != nil {
		log.Error("failed to build task event",
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
		return
	}

	if err := f.queue.Enqueue(&deliveryJob{event: event, emitter: f.emitter}); err != nil {
		metrics.EventsDropped.WithLabelValues(string(eventType)).Inc()
		log.Warn("task event dropped",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
		return
	}

	metrics.EventsEmitted.WithLabelValues(string(eventType)).Inc()
}

// deliveryJob hands one event to the emitter on a worker goroutine.
type deliveryJob struct {
	event   *TaskEvent
	emitter EventEmitter
}

func (j *deliveryJob) ID() uuid.UUID { return j.event.ID }
func (j *deliveryJob) Type() string  { return JobType }

func (j *deliveryJob) Execute(ctx context.Context) error {
	return j.emitter.EmitEvent(ctx, j.event)
}
