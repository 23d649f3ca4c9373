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

func TestBuildTaskQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, page, err := service.BuildTaskQuery(nil, service.TaskListParams{})
		require.NoError(t, err)
		assert.Equal(t, 1, page)
		assert.Equal(t, store.SortByCreatedAt, q.Sort)
		assert.Equal(t, store.SortDesc, q.Order)
		assert.Equal(t, 0, q.Offset)
		assert.Equal(t, service.PageSize, q.Limit)
		assert.Nil(t, q.Filter.Type)
		assert.Nil(t, q.Filter.OwnerID)
	})

	t.Run("type is case-insensitive", func(t *testing.T) {
		q, _, err := service.BuildTaskQuery(nil, service.TaskListParams{Type: "urgent"})
		require.NoError(t, err)
		require.NotNil(t, q.Filter.Type)
		assert.Equal(t, domain.TaskTypeUrgent, *q.Filter.Type)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, _, err := service.BuildTaskQuery(nil, service.TaskListParams{Type: "CRITICAL"})
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	})

	t.Run("unknown sort falls back silently", func(t *testing.T) {
		q, _, err := service.BuildTaskQuery(nil, service.TaskListParams{SortBy: "password"})
		require.NoError(t, err)
		assert.Equal(t, store.SortByCreatedAt, q.Sort)
	})

	t.Run("known sort and asc order", func(t *testing.T) {
		q, _, err := service.BuildTaskQuery(nil, service.TaskListParams{SortBy: "title", Order: "ASC"})
		require.NoError(t, err)
		assert.Equal(t, store.SortByTitle, q.Sort)
		assert.Equal(t, store.SortAsc, q.Order)
	})

	t.Run("any other order is desc", func(t *testing.T) {
		q, _, err := service.BuildTaskQuery(nil, service.TaskListParams{Order: "upwards"})
		require.NoError(t, err)
		assert.Equal(t, store.SortDesc, q.Order)
	})

	t.Run("page offset", func(t *testing.T) {
		q, page, err := service.BuildTaskQuery(nil, service.TaskListParams{Page: "3"})
		require.NoError(t, err)
		assert.Equal(t, 3, page)
		assert.Equal(t, 20, q.Offset)
	})

	for _, raw := range []string{"0", "-1", "abc", "1.5", "99999999999999999999"} {
		t.Run("invalid page "+raw, func(t *testing.T) {
			_, _, err := service.BuildTaskQuery(nil, service.TaskListParams{Page: raw})
			assert.ErrorIs(t, err, domain.ErrInvalidFilter)
		})
	}

	t.Run("title and owner pass through", func(t *testing.T) {
		owner := int64(4)
		q, _, err := service.BuildTaskQuery(&owner, service.TaskListParams{Title: "  report "})
		require.NoError(t, err)
		assert.Equal(t, "report", q.Filter.TitleContains)
		assert.Equal(t, &owner, q.Filter.OwnerID)
	})
}

func TestTaskQueryEngine_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin is scoped to own tasks", func(t *testing.T) {
		tasks := newFixture().tasks
		ownedByAlice := mock.MatchedBy(func(q store.TaskQuery) bool {
			return q.Filter.OwnerID != nil && *q.Filter.OwnerID == alicePrincipal.UserID
		})
		tasks.On("FindMany", mock.Anything, ownedByAlice).Return([]domain.Task{*liveTask(1, 2)}, nil)
		tasks.On("Count", mock.Anything, mock.Anything).Return(1, nil)

		page, err := service.NewTaskQueryEngine(tasks, quietLogger()).FindAll(ctx, alicePrincipal, service.TaskListParams{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, service.PageMeta{Total: 1, Page: 1, PageSize: 10, TotalPages: 1}, page.Meta)
	})

	t.Run("admin sees everyone", func(t *testing.T) {
		tasks := newFixture().tasks
		unscoped := mock.MatchedBy(func(q store.TaskQuery) bool { return q.Filter.OwnerID == nil })
		tasks.On("FindMany", mock.Anything, unscoped).Return([]domain.Task{}, nil)
		tasks.On("Count", mock.Anything, mock.Anything).Return(25, nil)

		page, err := service.NewTaskQueryEngine(tasks, quietLogger()).FindAll(ctx, adminPrincipal, service.TaskListParams{Page: "4"})
		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.NotNil(t, page.Data)
		assert.Equal(t, service.PageMeta{Total: 25, Page: 4, PageSize: 10, TotalPages: 3}, page.Meta)
	})

	t.Run("no tasks", func(t *testing.T) {
		tasks := newFixture().tasks
		tasks.On("FindMany", mock.Anything, mock.Anything).Return(nil, nil)
		tasks.On("Count", mock.Anything, mock.Anything).Return(0, nil)

		page, err := service.NewTaskQueryEngine(tasks, quietLogger()).FindAll(ctx, bobPrincipal, service.TaskListParams{})
		require.NoError(t, err)
		assert.NotNil(t, page.Data)
		assert.Equal(t, 0, page.Meta.TotalPages)
	})

	t.Run("invalid filter never reaches the store", func(t *testing.T) {
		tasks := newFixture().tasks

		_, err := service.NewTaskQueryEngine(tasks, quietLogger()).FindAll(ctx, adminPrincipal, service.TaskListParams{Page: "0"})
		assert.ErrorIs(t, err, domain.ErrInvalidFilter)
		tasks.AssertNotCalled(t, "FindMany", mock.Anything, mock.Anything)
	})
}
