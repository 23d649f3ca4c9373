package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/events"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/store"
)

// TaskLifecycle owns the task state machine. It performs no authorization
// beyond the owner rule on create; callers compose it with access checks.
// Every successful mutation is followed by exactly one notification.
type TaskLifecycle struct {
	tasks    store.TaskStore
	users    store.UserStore
	notifier events.Notifier
	now      func() time.Time
	logger   *slog.Logger
}

// NewTaskLifecycle creates a TaskLifecycle. A nil notifier discards events.
func NewTaskLifecycle(
	tasks store.TaskStore,
	users store.UserStore,
	notifier events.Notifier,
	log *slog.Logger,
) *TaskLifecycle {
	if tasks == nil || users == nil {
		panic("tasks and users stores cannot be nil")
	}
	if notifier == nil {
		notifier = events.NopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskLifecycle{
		tasks:    tasks,
		users:    users,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   log.With(slog.String("component", "task_lifecycle")),
	}
}

// Create persists a new task and emits task-created.
//
// The owner is draft.OwnerID when set, otherwise the principal. Only an ADMIN
// may create a task for someone else. A draft with status ARCHIVED is
// rejected with domain.ErrInvalidTransition before anything is stored.
func (l *TaskLifecycle) Create(
	ctx context.Context,
	draft domain.TaskDraft,
	principal domain.Principal,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, l.logger)

	status := draft.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	if status == domain.TaskStatusArchived {
		return nil, fmt.Errorf("%w: tasks cannot be created archived", domain.ErrInvalidTransition)
	}
	taskType := draft.Type
	if taskType == "" {
		taskType = domain.TaskTypeMedium
	}

	ownerID := principal.UserID
	if draft.OwnerID != nil && *draft.OwnerID != principal.UserID {
		if !principal.IsAdmin() {
			return nil, fmt.Errorf("%w: only an admin may assign another owner", domain.ErrForbidden)
		}
		ownerID = *draft.OwnerID
	}

	if err := l.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       draft.Title,
		Description: draft.Description,
		Type:        taskType,
		Status:      status,
		OwnerID:     ownerID,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := l.tasks.Create(ctx, task); err != nil {
		return nil, mapStoreError(err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID),
		slog.Int64("actor_id", principal.UserID))
	l.notifier.NotifyCreated(ctx, *task)
	return task, nil
}

// Update applies patch to a live task and emits task-updated. Setting the
// status to ARCHIVED is only possible through Archive.
func (l *TaskLifecycle) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := l.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status == domain.TaskStatusArchived {
		return nil, fmt.Errorf("%w: use archive to archive a task", domain.ErrInvalidTransition)
	}
	if patch.OwnerID != nil && *patch.OwnerID != task.OwnerID {
		if err := l.requireUser(ctx, *patch.OwnerID); err != nil {
			return nil, err
		}
	}

	patch.Apply(task)
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := l.save(ctx, task); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, l.logger).Info("task updated", slog.Int64("task_id", id))
	l.notifier.NotifyUpdated(ctx, *task)
	return task, nil
}

// Archive moves a live task to ARCHIVED from any status and emits
// task-updated. Archiving an archived task succeeds and emits again.
func (l *TaskLifecycle) Archive(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := l.loadLive(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatusArchived
	if err := l.save(ctx, task); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, l.logger).Info("task archived", slog.Int64("task_id", id))
	l.notifier.NotifyUpdated(ctx, *task)
	return task, nil
}

// Remove soft-deletes a live task and emits task-deleted with only its id.
func (l *TaskLifecycle) Remove(ctx context.Context, id int64) error {
	if _, err := l.loadLive(ctx, id); err != nil {
		return err
	}

	if err := l.tasks.SoftDelete(ctx, id, l.now()); err != nil {
		return mapStoreError(err)
	}

	logger.FromContextOrDefault(ctx, l.logger).Info("task removed", slog.Int64("task_id", id))
	l.notifier.NotifyDeleted(ctx, id)
	return nil
}

// loadLive returns the task unless it is absent or soft-deleted, in which
// case it fails with domain.ErrNotFound.
func (l *TaskLifecycle) loadLive(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := l.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if task.IsDeleted() {
		return nil, fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
	}
	return task, nil
}

func (l *TaskLifecycle) save(ctx context.Context, task *domain.Task) error {
	if err := l.tasks.Update(ctx, task); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (l *TaskLifecycle) requireUser(ctx context.Context, id int64) error {
	if _, err := l.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
		}
		return mapStoreError(err)
	}
	return nil
}
