package service_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/mocks"
	"github.com/gaspigz/taskManagerClg/internal/service"
)

var (
	adminPrincipal = domain.Principal{UserID: 1, Username: "ADMIN", Role: domain.RoleAdmin}
	alicePrincipal = domain.Principal{UserID: 2, Username: "alice", Role: domain.RoleUser}
	bobPrincipal   = domain.Principal{UserID: 3, Username: "bob", Role: domain.RoleUser}
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}

func liveTask(id, owner int64) *domain.Task {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:          id,
		Title:       "Write report",
		Description: "Quarterly numbers for the board",
		Type:        domain.TaskTypeMedium,
		Status:      domain.TaskStatusPending,
		OwnerID:     owner,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func deletedTask(id, owner int64) *domain.Task {
	task := liveTask(id, owner)
	at := task.CreatedAt.Add(time.Hour)
	task.DeletedAt = &at
	return task
}

type fixture struct {
	tasks    *mocks.TaskStore
	users    *mocks.UserStore
	notifier *mocks.Notifier
}

func newFixture() *fixture {
	return &fixture{
		tasks:    new(mocks.TaskStore),
		users:    new(mocks.UserStore),
		notifier: new(mocks.Notifier),
	}
}

func (f *fixture) lifecycle() *service.TaskLifecycle {
	return service.NewTaskLifecycle(f.tasks, f.users, f.notifier, quietLogger())
}

func (f *fixture) taskService() service.TaskService {
	return service.NewTaskService(
		f.tasks,
		f.users,
		f.lifecycle(),
		service.NewTaskQueryEngine(f.tasks, quietLogger()),
		quietLogger(),
	)
}
