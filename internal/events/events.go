package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/google/uuid"
)

// EventType names a task notification.
type EventType string

// Task notification types
const (
	TaskCreated EventType = "task-created"
	TaskUpdated EventType = "task-updated"
	TaskDeleted EventType = "task-deleted"
)

// TaskEvent is a single notification as delivered to sinks.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is the notification name
	Type EventType `json:"event"`

	// Data is the full task for created/updated and {"id": n} for deleted
	Data json.RawMessage `json:"data"`

	CreatedAt time.Time `json:"createdAt"`
}

// DeletedPayload is the data of a task-deleted event.
type DeletedPayload struct {
	ID int64 `json:"id"`
}

// UnmarshalData decodes the event data into the provided structure.
func (e *TaskEvent) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// NewTaskEvent creates a new TaskEvent with the specified type and payload.
func NewTaskEvent(eventType EventType, payload interface{}) (*TaskEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that consume events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}

// Notifier receives task mutations after they are persisted. Implementations
// must return promptly and must not report delivery failures to the caller.
type Notifier interface {
	NotifyCreated(ctx context.Context, task domain.Task)
	NotifyUpdated(ctx context.Context, task domain.Task)
	NotifyDeleted(ctx context.Context, taskID int64)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyCreated(context.Context, domain.Task) {}
func (NopNotifier) NotifyUpdated(context.Context, domain.Task) {}
func (NopNotifier) NotifyDeleted(context.Context, int64)       {}
