package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
	"github.com/gaspigz/taskManagerClg/internal/store"
)

// UserInput carries the fields of a new user. Role defaults to USER.
type UserInput struct {
	Username string
	Password string
	Name     string
	Role     domain.Role
}

// UserPatch carries optional user changes. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Password *string
	Name     *string
	Role     *domain.Role
}

// UserService provides guarded user administration. Results are always
// projected to domain.ResponseUser.
type UserService interface {
	Create(ctx context.Context, p domain.Principal, in UserInput) (*domain.ResponseUser, error)
	List(ctx context.Context, p domain.Principal) ([]domain.ResponseUser, error)
	Get(ctx context.Context, p domain.Principal, id int64) (*domain.ResponseUser, error)
	Update(ctx context.Context, p domain.Principal, id int64, patch UserPatch) (*domain.ResponseUser, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService. When db is non-nil,
// read-modify-write operations run inside a transaction.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	log *slog.Logger,
) *UserServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    log.With(slog.String("component", "user_service")),
	}
}

// Create registers a new user. ADMIN only.
func (s *UserServiceImpl) Create(
	ctx context.Context,
	p domain.Principal,
	in UserInput,
) (*domain.ResponseUser, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         role,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	err = s.withStore(ctx, func(ctx context.Context, users store.UserStore) error {
		return users.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug("attempted to create user with existing username",
				slog.String("username", in.Username))
		}
		return nil, mapStoreError(err)
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.Int64("actor_id", p.UserID))
	resp := user.Response()
	return &resp, nil
}

// List returns every user. ADMIN only.
func (s *UserServiceImpl) List(ctx context.Context, p domain.Principal) ([]domain.ResponseUser, error) {
	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	out := make([]domain.ResponseUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Response())
	}
	return out, nil
}

// Get returns one user. Users may read themselves; ADMIN may read anyone.
func (s *UserServiceImpl) Get(ctx context.Context, p domain.Principal, id int64) (*domain.ResponseUser, error) {
	if err := auth.RequireOwnership(p, id); err != nil {
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	resp := user.Response()
	return &resp, nil
}

// Update changes a user. Users may edit themselves but only an ADMIN may
// change a role.
func (s *UserServiceImpl) Update(
	ctx context.Context,
	p domain.Principal,
	id int64,
	patch UserPatch,
) (*domain.ResponseUser, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := auth.RequireOwnership(p, id); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		if err := domain.ValidatePassword(*patch.Password); err != nil {
			return nil, err
		}
	}

	var updated *domain.User
	err := s.withStore(ctx, func(ctx context.Context, users store.UserStore) error {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Role != nil && *patch.Role != user.Role {
			if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
				return err
			}
			user.Role = *patch.Role
		}
		if patch.Username != nil {
			user.Username = *patch.Username
		}
		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Password != nil {
			hash, err := s.hasher.Hash(*patch.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.PasswordHash = hash
		}

		if err := user.Validate(); err != nil {
			return err
		}
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	log.Info("user updated", slog.Int64("user_id", id), slog.Int64("actor_id", p.UserID))
	resp := updated.Response()
	return &resp, nil
}

// Delete removes a user. ADMIN only. A user who still owns task rows cannot
// be removed and yields domain.ErrConflict.
func (s *UserServiceImpl) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if err := auth.RequireRole(p, domain.RoleAdmin); err != nil {
		return err
	}

	err := s.withStore(ctx, func(ctx context.Context, users store.UserStore) error {
		return users.Delete(ctx, id)
	})
	if err != nil {
		return mapStoreError(err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", p.UserID))
	return nil
}

// withStore runs fn against a transaction-bound store when a database handle
// is configured, otherwise against the plain store.
func (s *UserServiceImpl) withStore(
	ctx context.Context,
	fn func(ctx context.Context, users store.UserStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.userStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.userStore.WithTx(tx))
	})
}
