package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
	"github.com/gaspigz/taskManagerClg/internal/store"
)

// TaskService is the guarded task surface used by the API. Each method checks
// role and ownership before delegating to the lifecycle or the query engine.
type TaskService interface {
	Create(ctx context.Context, p domain.Principal, draft domain.TaskDraft) (*domain.Task, error)
	FindAll(ctx context.Context, p domain.Principal, params TaskListParams) (*TaskPage, error)
	FindOne(ctx context.Context, p domain.Principal, id int64) (*domain.Task, error)
	Update(ctx context.Context, p domain.Principal, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Archive(ctx context.Context, p domain.Principal, id int64) (*domain.Task, error)
	Remove(ctx context.Context, p domain.Principal, id int64) error
	ListForUser(ctx context.Context, p domain.Principal, userID int64, params TaskListParams) (*TaskPage, error)
}

type taskService struct {
	tasks     store.TaskStore
	users     store.UserStore
	lifecycle *TaskLifecycle
	query     *TaskQueryEngine
	logger    *slog.Logger
}

var _ TaskService = (*taskService)(nil)

// NewTaskService composes the access guards with lifecycle and query.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserStore,
	lifecycle *TaskLifecycle,
	query *TaskQueryEngine,
	log *slog.Logger,
) TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &taskService{
		tasks:     tasks,
		users:     users,
		lifecycle: lifecycle,
		query:     query,
		logger:    log.With(slog.String("component", "task_service")),
	}
}

// Create is open to any authenticated principal; the lifecycle enforces the
// owner rule.
func (s *taskService) Create(ctx context.Context, p domain.Principal, draft domain.TaskDraft) (*domain.Task, error) {
	if err := auth.RequireRole(p, domain.RoleUser, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.lifecycle.Create(ctx, draft, p)
}

func (s *taskService) FindAll(ctx context.Context, p domain.Principal, params TaskListParams) (*TaskPage, error) {
	if err := auth.RequireRole(p, domain.RoleUser, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.query.FindAll(ctx, p, params)
}

// FindOne returns a task the principal may read. A soft-deleted task is
// reported as not found once ownership has been established.
func (s *taskService) FindOne(ctx context.Context, p domain.Principal, id int64) (*domain.Task, error) {
	task, err := s.guardOwnership(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if task.IsDeleted() {
		return nil, fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
	}
	return task, nil
}

// Update requires ownership. Reassigning the owner additionally requires ADMIN.
func (s *taskService) Update(
	ctx context.Context,
	p domain.Principal,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	task, err := s.guardOwnership(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if patch.OwnerID != nil && *patch.OwnerID != task.OwnerID {
		if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}
	return s.lifecycle.Update(ctx, id, patch)
}

func (s *taskService) Archive(ctx context.Context, p domain.Principal, id int64) (*domain.Task, error) {
	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.lifecycle.Archive(ctx, id)
}

func (s *taskService) Remove(ctx context.Context, p domain.Principal, id int64) error {
	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return err
	}
	return s.lifecycle.Remove(ctx, id)
}

// ListForUser lists the live tasks of one user. ADMIN only.
func (s *taskService) ListForUser(
	ctx context.Context,
	p domain.Principal,
	userID int64,
	params TaskListParams,
) (*TaskPage, error) {
	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, mapStoreError(err)
	}
	return s.query.FindForOwner(ctx, userID, params)
}

// guardOwnership loads the task and checks ownership. A task that does not
// exist yields domain.ErrForbidden so ids cannot be enumerated.
func (s *taskService) guardOwnership(ctx context.Context, p domain.Principal, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: task %d", domain.ErrForbidden, id)
		}
		return nil, mapStoreError(err)
	}
	if err := auth.RequireOwnership(p, task.OwnerID); err != nil {
		return nil, err
	}
	return task, nil
}
