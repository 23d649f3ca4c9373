package api

import (
	"fmt"
	"strings"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/service"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse = service.LoginResult

// CreateTaskRequest defines the payload for creating a task. Type and status
// are matched case-insensitively.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=4,max=100"`
	Description string `json:"description" validate:"required,min=10,max=500"`
	Type        string `json:"type"        validate:"omitempty"`
	Status      string `json:"status"      validate:"omitempty"`
	OwnerID     *int64 `json:"ownerId"     validate:"omitempty,gt=0"`
}

// ToDraft converts the request into a domain draft.
func (r CreateTaskRequest) ToDraft() (domain.TaskDraft, error) {
	draft := domain.TaskDraft{
		Title:       r.Title,
		Description: r.Description,
		OwnerID:     r.OwnerID,
	}
	if r.Type != "" {
		t, err := parseTaskType(r.Type)
		if err != nil {
			return domain.TaskDraft{}, err
		}
		draft.Type = t
	}
	if r.Status != "" {
		s, err := parseTaskStatus(r.Status)
		if err != nil {
			return domain.TaskDraft{}, err
		}
		draft.Status = s
	}
	return draft, nil
}

// UpdateTaskRequest defines the payload for a partial task update. Absent
// fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=4,max=100"`
	Description *string `json:"description" validate:"omitempty,min=10,max=500"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	OwnerID     *int64  `json:"ownerId"     validate:"omitempty,gt=0"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		OwnerID:     r.OwnerID,
	}
	if r.Type != nil {
		t, err := parseTaskType(*r.Type)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Type = &t
	}
	if r.Status != nil {
		s, err := parseTaskStatus(*r.Status)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Status = &s
	}
	return patch, nil
}

// CreateUserRequest defines the payload for creating a user.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	Name     string `json:"name"     validate:"max=100"`
	Role     string `json:"role"`
}

// ToInput converts the request into service input.
func (r CreateUserRequest) ToInput() (service.UserInput, error) {
	in := service.UserInput{Username: r.Username, Password: r.Password, Name: r.Name}
	if r.Role != "" {
		role, err := parseRole(r.Role)
		if err != nil {
			return service.UserInput{}, err
		}
		in.Role = role
	}
	return in, nil
}

// UpdateUserRequest defines the payload for a partial user update.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Password *string `json:"password" validate:"omitempty,min=4,max=72"`
	Name     *string `json:"name"     validate:"omitempty,max=100"`
	Role     *string `json:"role"`
}

// ToPatch converts the request into a service patch.
func (r UpdateUserRequest) ToPatch() (service.UserPatch, error) {
	patch := service.UserPatch{Username: r.Username, Password: r.Password, Name: r.Name}
	if r.Role != nil {
		role, err := parseRole(*r.Role)
		if err != nil {
			return service.UserPatch{}, err
		}
		patch.Role = &role
	}
	return patch, nil
}

func parseTaskType(s string) (domain.TaskType, error) {
	t, ok := domain.ParseTaskType(s)
	if !ok {
		return "", domain.NewValidationError("type", "must be one of URGENT, MEDIUM, LOW")
	}
	return t, nil
}

func parseTaskStatus(s string) (domain.TaskStatus, error) {
	st, ok := domain.ParseTaskStatus(s)
	if !ok {
		return "", domain.NewValidationError("status",
			fmt.Sprintf("must be one of %s", strings.Join([]string{
				string(domain.TaskStatusPending),
				string(domain.TaskStatusInProgress),
				string(domain.TaskStatusCompleted),
				string(domain.TaskStatusArchived),
			}, ", ")))
	}
	return st, nil
}

func parseRole(s string) (domain.Role, error) {
	role, ok := domain.ParseRole(s)
	if !ok {
		return "", domain.NewValidationError("role", "must be USER or ADMIN")
	}
	return role, nil
}
