package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newTaskStore(db store.DBTX) *PostgresTaskStore {
	s := NewPostgresTaskStore(db, nil)
	s.now = func() time.Time { return fixedNow }
	return s
}

func sampleTask() *domain.Task {
	return &domain.Task{
		Title:       "Write report",
		Description: "Quarterly numbers for the board",
		Type:        domain.TaskTypeMedium,
		Status:      domain.TaskStatusPending,
		OwnerID:     3,
	}
}

func taskRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "type", "status", "owner_id", "deleted_at", "created_at", "updated_at",
	})
}

func TestUserStoreCreate(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	user := &domain.User{Username: "user1", PasswordHash: "hash", Name: "One", Role: domain.RoleUser}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("user1", "hash", "One", "USER").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, fixedNow))

	require.NoError(t, s.Create(context.Background(), user))
	assert.Equal(t, int64(11), user.ID)
	assert.Equal(t, fixedNow, user.CreatedAt)
}

func TestUserStoreCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_username_key"})

	err := s.Create(context.Background(), &domain.User{
		Username: "user1", PasswordHash: "hash", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestUserStoreCreateValidatesBeforeQuery(t *testing.T) {
	db, _ := newMock(t)
	s := NewPostgresUserStore(db, nil)

	err := s.Create(context.Background(), &domain.User{Username: "u", PasswordHash: "hash", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserStoreGetByUsername(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("ADMIN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "name", "role", "created_at"}).
			AddRow(1, "ADMIN", "hash", "Administrator", "ADMIN", fixedNow))

	u, err := s.GetByUsername(context.Background(), "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestUserStoreGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreList(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "name", "role", "created_at"}).
			AddRow(1, "ADMIN", "h1", "", "ADMIN", fixedNow).
			AddRow(2, "user1", "h2", "", "USER", fixedNow))

	users, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user1", users[1].Username)
}

func TestUserStoreUpdateAndDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), &domain.User{
		ID: 7, Username: "user7", PasswordHash: "hash", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = s.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreDeleteWithTasks(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_owner_id_fkey"})

	err := s.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, store.ErrUserHasTasks)
	assert.ErrorIs(t, err, store.ErrInUse)
	assert.NotErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStoreCreate(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	task := sampleTask()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(task.Title, task.Description, "MEDIUM", "PENDING", int64(3), fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, s.Create(context.Background(), task))
	assert.Equal(t, int64(42), task.ID)
	assert.Equal(t, fixedNow, task.CreatedAt)
	assert.Equal(t, fixedNow, task.UpdatedAt)
}

func TestTaskStoreCreateMissingOwner(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_owner_id_fkey"})

	err := s.Create(context.Background(), sampleTask())
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestTaskStoreGetByIDIncludesDeleted(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	deletedAt := fixedNow.Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(taskRows().AddRow(5, "Title", "Description!", "LOW", "COMPLETED", 3, deletedAt, fixedNow, fixedNow))

	task, err := s.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, task.IsDeleted())
	assert.Equal(t, domain.TaskTypeLow, task.Type)
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)
}

func TestTaskStoreGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStoreFindManyAndCount(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	owner := int64(3)
	filter := store.TaskFilter{OwnerID: &owner, TitleContains: "rep"}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4")).
		WithArgs(int64(3), "%rep%", 10, 10).
		WillReturnRows(taskRows().
			AddRow(9, "Report A", "Description!", "URGENT", "PENDING", 3, nil, fixedNow, fixedNow).
			AddRow(8, "Report B", "Description!", "LOW", "PENDING", 3, nil, fixedNow, fixedNow))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks WHERE deleted_at IS NULL AND owner_id = $1 AND title ILIKE $2")).
		WithArgs(int64(3), "%rep%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	tasks, err := s.FindMany(context.Background(), store.TaskQuery{
		Filter: filter, Sort: store.SortByCreatedAt, Order: store.SortDesc, Offset: 10, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.False(t, tasks[0].IsDeleted())

	n, err := s.Count(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestTaskStoreUpdate(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	task := sampleTask()
	task.ID = 4
	task.Status = domain.TaskStatusArchived

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $7 AND deleted_at IS NULL")).
		WithArgs(task.Title, task.Description, "MEDIUM", "ARCHIVED", int64(3), fixedNow, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Update(context.Background(), task))
	assert.Equal(t, fixedNow, task.UpdatedAt)
}

func TestTaskStoreUpdateDeletedRow(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	task := sampleTask()
	task.ID = 4
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Update(context.Background(), task), store.ErrTaskNotFound)
}

func TestTaskStoreSoftDelete(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL")).
		WithArgs(fixedNow, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET deleted_at")).
		WithArgs(fixedNow, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.SoftDelete(context.Background(), 4, fixedNow))
	assert.ErrorIs(t, s.SoftDelete(context.Background(), 4, fixedNow), store.ErrTaskNotFound)
}

func TestTaskStorePurgeDeleted(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks")).
		WithArgs(fixedNow, "ARCHIVED").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.PurgeDeleted(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestTaskStoreWithTx(t *testing.T) {
	db, mock := newMock(t)
	s := newTaskStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET deleted_at")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).SoftDelete(ctx, 1, fixedNow)
	})
	require.NoError(t, err)
}

func TestMapError(t *testing.T) {
	assert.Nil(t, MapError(nil))
	assert.ErrorIs(t, MapError(sql.ErrNoRows), store.ErrNotFound)
	assert.ErrorIs(t, MapError(&pgconn.PgError{Code: uniqueViolationCode}), store.ErrDuplicate)
	assert.ErrorIs(t, MapError(&pgconn.PgError{Code: foreignKeyViolationCode}), store.ErrInvalidEntity)
	assert.ErrorIs(t, MapError(&pgconn.PgError{Code: checkViolationCode}), store.ErrInvalidEntity)
	assert.ErrorIs(t, MapError(&pgconn.PgError{Code: notNullViolationCode}), store.ErrInvalidEntity)

	other := errors.New("boom")
	assert.Same(t, other, MapError(other))
}
