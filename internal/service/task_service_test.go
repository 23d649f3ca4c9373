package service_test

import (
	"context"
	"testing"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/service"
	"github.com/gaspigz/taskManagerClg/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskService_FindOne(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name      string
		principal domain.Principal
		task      *domain.Task
		storeErr  error
		wantErr   error
	}{
		{name: "owner", principal: alicePrincipal, task: liveTask(7, 2)},
		{name: "admin", principal: adminPrincipal, task: liveTask(7, 2)},
		{name: "other user", principal: bobPrincipal, task: liveTask(7, 2), wantErr: domain.ErrForbidden},
		{name: "missing is masked", principal: alicePrincipal, storeErr: store.ErrTaskNotFound, wantErr: domain.ErrForbidden},
		{name: "deleted after guard", principal: alicePrincipal, task: deletedTask(7, 2), wantErr: domain.ErrNotFound},
		{name: "deleted but not owner", principal: bobPrincipal, task: deletedTask(7, 2), wantErr: domain.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			if tc.storeErr != nil {
				f.tasks.On("GetByID", mock.Anything, int64(7)).Return(nil, tc.storeErr)
			} else {
				f.tasks.On("GetByID", mock.Anything, int64(7)).Return(tc.task, nil)
			}

			task, err := f.taskService().FindOne(ctx, tc.principal, 7)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), task.ID)
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates", func(t *testing.T) {
		f := newFixture()
		f.tasks.On("GetByID", mock.Anything, int64(7)).Return(liveTask(7, 2), nil)
		f.tasks.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("NotifyUpdated", mock.Anything, mock.Anything).Return()

		task, err := f.taskService().Update(ctx, alicePrincipal, 7, domain.TaskPatch{Type: ptr(domain.TaskTypeUrgent)})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskTypeUrgent, task.Type)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		f := newFixture()
		f.tasks.On("GetByID", mock.Anything, int64(7)).Return(liveTask(7, 2), nil)

		_, err := f.taskService().Update(ctx, bobPrincipal, 7, domain.TaskPatch{Type: ptr(domain.TaskTypeUrgent)})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("owner cannot reassign", func(t *testing.T) {
		f := newFixture()
		f.tasks.On("GetByID", mock.Anything, int64(7)).Return(liveTask(7, 2), nil)

		_, err := f.taskService().Update(ctx, alicePrincipal, 7, domain.TaskPatch{OwnerID: ptr(int64(3))})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin reassigns", func(t *testing.T) {
		f := newFixture()
		f.tasks.On("GetByID", mock.Anything, int64(7)).Return(liveTask(7, 2), nil)
		f.users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3}, nil)
		f.tasks.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("NotifyUpdated", mock.Anything, mock.Anything).Return()

		task, err := f.taskService().Update(ctx, adminPrincipal, 7, domain.TaskPatch{OwnerID: ptr(int64(3))})
		require.NoError(t, err)
		assert.Equal(t, int64(3), task.OwnerID)
	})

	t.Run("missing task is masked", func(t *testing.T) {
		f := newFixture()
		f.tasks.On("GetByID", mock.Anything, int64(7)).Return(nil, store.ErrTaskNotFound)

		_, err := f.taskService().Update(ctx, alicePrincipal, 7, domain.TaskPatch{})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestTaskService_AdminOnly(t *testing.T) {
	ctx := context.Background()

	t.Run("archive as user", func(t *testing.T) {
		f := newFixture()
		_, err := f.taskService().Archive(ctx, alicePrincipal, 7)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.tasks.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("remove as user", func(t *testing.T) {
		f := newFixture()
		err := f.taskService().Remove(ctx, alicePrincipal, 7)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("list for user as user", func(t *testing.T) {
		f := newFixture()
		_, err := f.taskService().ListForUser(ctx, alicePrincipal, 2, service.TaskListParams{})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("archive as admin", func(t *testing.T) {
		f := newFixture()
		f.tasks.On("GetByID", mock.Anything, int64(7)).Return(liveTask(7, 2), nil)
		f.tasks.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("NotifyUpdated", mock.Anything, mock.Anything).Return()

		task, err := f.taskService().Archive(ctx, adminPrincipal, 7)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusArchived, task.Status)
	})

	t.Run("remove missing as admin", func(t *testing.T) {
		f := newFixture()
		f.tasks.On("GetByID", mock.Anything, int64(7)).Return(nil, store.ErrTaskNotFound)

		err := f.taskService().Remove(ctx, adminPrincipal, 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTaskService_ListForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, int64(40)).Return(nil, store.ErrUserNotFound)

		_, err := f.taskService().ListForUser(ctx, adminPrincipal, 40, service.TaskListParams{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("scoped to the user", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2}, nil)
		f.tasks.On("FindMany", mock.Anything, mock.MatchedBy(func(q store.TaskQuery) bool {
			return q.Filter.OwnerID != nil && *q.Filter.OwnerID == 2
		})).Return([]domain.Task{*liveTask(7, 2)}, nil)
		f.tasks.On("Count", mock.Anything, mock.Anything).Return(1, nil)

		page, err := f.taskService().ListForUser(ctx, adminPrincipal, 2, service.TaskListParams{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
	})
}

func TestTaskService_CreateAsUser(t *testing.T) {
	f := newFixture()
	f.users.On("GetByID", mock.Anything, bobPrincipal.UserID).Return(&domain.User{ID: 3}, nil)
	f.tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("NotifyCreated", mock.Anything, mock.Anything).Return()

	task, err := f.taskService().Create(context.Background(), bobPrincipal, domain.TaskDraft{
		Title:       "Buy groceries",
		Description: "Milk, eggs and bread",
		Type:        domain.TaskTypeLow,
	})
	require.NoError(t, err)
	assert.Equal(t, bobPrincipal.UserID, task.OwnerID)
}
