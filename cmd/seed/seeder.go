package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
	"github.com/gaspigz/taskManagerClg/internal/store"
)

// AdminUsername is the username of the seeded administrator.
const AdminUsername = "ADMIN"

var (
	seedTaskTypes    = []domain.TaskType{domain.TaskTypeUrgent, domain.TaskTypeMedium, domain.TaskTypeLow}
	seedTaskStatuses = []domain.TaskStatus{
		domain.TaskStatusPending,
		domain.TaskStatusInProgress,
		domain.TaskStatusCompleted,
		domain.TaskStatusArchived,
	}
)

type seedOptions struct {
	AdminPassword string
	Users         int
	Tasks         int
}

type seedReport struct {
	UsersCreated int
	UsersSkipped int
	TasksCreated int
}

// seeder populates an empty database with an administrator, numbered demo
// users and tasks spread randomly across them. Existing users are left alone
// so the command can be rerun.
type seeder struct {
	users  store.UserStore
	tasks  store.TaskStore
	hasher auth.PasswordHasher
	rng    *rand.Rand
	logger *slog.Logger
}

func (s *seeder) seed(ctx context.Context, opts seedOptions) (seedReport, error) {
	var report seedReport

	_, created, err := s.ensureUser(ctx, AdminUsername, "Admin User", opts.AdminPassword, domain.RoleAdmin)
	if err != nil {
		return report, err
	}
	report.count(created)

	owners := make([]*domain.User, 0, opts.Users)
	for i := 1; i <= opts.Users; i++ {
		u, created, err := s.ensureUser(ctx,
			fmt.Sprintf("user%d", i),
			fmt.Sprintf("User %d", i),
			fmt.Sprintf("pass%d", i),
			domain.RoleUser)
		if err != nil {
			return report, err
		}
		report.count(created)
		owners = append(owners, u)
	}

	if len(owners) == 0 {
		return report, nil
	}

	for i := 1; i <= opts.Tasks; i++ {
		task := &domain.Task{
			Title:       fmt.Sprintf("Task %d", i),
			Description: fmt.Sprintf("This is task %d", i),
			Type:        seedTaskTypes[s.rng.IntN(len(seedTaskTypes))],
			Status:      seedTaskStatuses[s.rng.IntN(len(seedTaskStatuses))],
			OwnerID:     owners[s.rng.IntN(len(owners))].ID,
		}
		if err := task.Validate(); err != nil {
			return report, err
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			return report, fmt.Errorf("failed to create %q: %w", task.Title, err)
		}
		report.TasksCreated++
	}

	return report, nil
}

func (s *seeder) ensureUser(
	ctx context.Context,
	username, name, password string,
	role domain.Role,
) (*domain.User, bool, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		s.logger.Debug("user already exists", slog.String("username", username))
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up %s: %w", username, err)
	}

	if err := domain.ValidatePassword(password); err != nil {
		return nil, false, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}
	u := &domain.User{Username: username, Name: name, PasswordHash: hash, Role: role}
	if err := u.Validate(); err != nil {
		return nil, false, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, false, fmt.Errorf("failed to create %s: %w", username, err)
	}
	return u, true, nil
}

func (r *seedReport) count(created bool) {
	if created {
		r.UsersCreated++
	} else {
		r.UsersSkipped++
	}
}
