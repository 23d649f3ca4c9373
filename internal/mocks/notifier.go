package mocks

import (
	"context"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/events"
	"github.com/stretchr/testify/mock"
)

// Notifier is a testify mock of events.Notifier.
type Notifier struct {
	mock.Mock
}

var _ events.Notifier = (*Notifier)(nil)

// NotifyCreated records the call.
func (m *Notifier) NotifyCreated(ctx context.Context, task domain.Task) {
	m.Called(ctx, task)
}

// NotifyUpdated records the call.
func (m *Notifier) NotifyUpdated(ctx context.Context, task domain.Task) {
	m.Called(ctx, task)
}

// NotifyDeleted records the call.
func (m *Notifier) NotifyDeleted(ctx context.Context, taskID int64) {
	m.Called(ctx, taskID)
}
