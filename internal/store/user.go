package store

import (
	"context"

	"github.com/gaspigz/taskManagerClg/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and sets its ID and CreatedAt.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by exact, case-sensitive username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns every user ordered by ID.
	List(ctx context.Context) ([]domain.User, error)

	// Update writes username, name, role and password hash of an existing user.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists if updating to a username that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUserHasTasks if any task row, live, archived or soft-deleted,
	// still references the user.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance bound to the provided transaction
	// or connection.
	WithTx(tx DBTX) UserStore
}
