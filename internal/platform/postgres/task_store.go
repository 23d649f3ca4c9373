package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/store"
)

const taskColumns = `id, title, description, type, status, owner_id, deleted_at, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, the default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx store.DBTX) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger, now: s.now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var taskType, status string
	var deletedAt sql.NullTime

	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&taskType,
		&status,
		&t.OwnerID,
		&deletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Type = domain.TaskType(taskType)
	t.Status = domain.TaskStatus(status)
	if deletedAt.Valid {
		at := deletedAt.Time
		t.DeletedAt = &at
	}
	return &t, nil
}

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	now := s.now()
	query := `
		INSERT INTO tasks (title, description, type, status, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.Type,
		task.Status,
		task.OwnerID,
		now,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", task.OwnerID))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	task.CreatedAt = now
	task.UpdatedAt = now
	task.DeletedAt = nil

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if IsNotFound(err) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "failed to query task", err)
	}

	return task, nil
}

// FindMany implements store.TaskStore.FindMany
func (s *PostgresTaskStore) FindMany(ctx context.Context, q store.TaskQuery) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := buildFindManyQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find", "failed to query tasks", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0, q.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "find", "failed to scan task", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "find", "row iteration failed", err)
	}

	log.Debug("tasks queried",
		slog.Int("count", len(tasks)),
		slog.String("sort", string(q.Sort)),
		slog.String("order", string(q.Order)),
		slog.Int("offset", q.Offset))
	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *PostgresTaskStore) Count(ctx context.Context, f store.TaskFilter) (int, error) {
	query, args := buildCountQuery(f)

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("task", "count", "failed to count tasks", err)
	}
	return n, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	now := s.now()
	query := `
		UPDATE tasks
		SET title = $1, description = $2, type = $3, status = $4, owner_id = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Type,
		task.Status,
		task.OwnerID,
		now,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	task.UpdatedAt = now
	log.Debug("task updated",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return nil
}

// SoftDelete implements store.TaskStore.SoftDelete
func (s *PostgresTaskStore) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		at, id)
	if err != nil {
		log.Error("failed to soft-delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "failed to soft-delete task", err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task soft-deleted", slog.Int64("task_id", id))
	return nil
}

// PurgeDeleted implements store.TaskStore.PurgeDeleted
func (s *PostgresTaskStore) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE deleted_at IS NOT NULL AND deleted_at < $1 AND status <> $2
	`, before, domain.TaskStatusArchived)
	if err != nil {
		log.Error("failed to purge deleted tasks", slog.String("error", err.Error()))
		return 0, store.NewStoreError("task", "purge", "failed to purge tasks", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("task", "purge", "failed to read rows affected", err)
	}
	return n, nil
}
