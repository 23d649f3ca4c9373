package store

import (
	"context"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/domain"
)

// SortField names a column a task list may be ordered by.
type SortField string

// Sortable task fields
const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTitle     SortField = "title"
)

// IsValid reports whether f is a sortable field.
func (f SortField) IsValid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByTitle:
		return true
	default:
		return false
	}
}

// SortOrder is the direction of a sort.
type SortOrder string

// Sort directions
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilter selects non-deleted tasks. Soft-deleted tasks are always excluded
// and cannot be selected through a filter.
type TaskFilter struct {
	// OwnerID restricts results to a single owner when non-nil.
	OwnerID *int64
	// TitleContains is a case-insensitive substring match; empty matches all.
	TitleContains string
	// Type restricts results to one task type when non-nil.
	Type *domain.TaskType
}

// TaskQuery is a fully validated list request. Stores translate it into their
// own query language without re-checking the business rules behind it.
type TaskQuery struct {
	Filter TaskFilter
	Sort   SortField
	Order  SortOrder
	Offset int
	Limit  int
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task and sets its ID and timestamps.
	// Returns store.ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID, including soft-deleted tasks so callers
	// can tell "never existed" from "deleted".
	// Returns ErrTaskNotFound if no row exists.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// FindMany returns one page of non-deleted tasks matching the query.
	FindMany(ctx context.Context, query TaskQuery) ([]domain.Task, error)

	// Count returns the number of non-deleted tasks matching the filter.
	Count(ctx context.Context, filter TaskFilter) (int, error)

	// Update writes the mutable fields of a non-deleted task and refreshes
	// UpdatedAt. Returns ErrTaskNotFound if the task is absent or soft-deleted.
	Update(ctx context.Context, task *domain.Task) error

	// SoftDelete marks a non-deleted task as deleted at the given time.
	// Returns ErrTaskNotFound if the task is absent or already deleted.
	SoftDelete(ctx context.Context, id int64, at time.Time) error

	// PurgeDeleted physically removes tasks soft-deleted before the cutoff whose
	// status is not ARCHIVED, returning the number of rows removed.
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)

	// WithTx returns a new TaskStore instance bound to the provided transaction
	// or connection.
	WithTx(tx DBTX) TaskStore
}
