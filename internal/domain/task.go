package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TaskType classifies a task by urgency.
type TaskType string

// Possible task type values
const (
	TaskTypeUrgent TaskType = "URGENT"
	TaskTypeMedium TaskType = "MEDIUM"
	TaskTypeLow    TaskType = "LOW"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusArchived   TaskStatus = "ARCHIVED"
)

// Task field limits
const (
	MinTitleLength       = 4
	MaxTitleLength       = 100
	MinDescriptionLength = 10
	MaxDescriptionLength = 500
)

// ParseTaskType matches s against the known task types case-insensitively.
func ParseTaskType(s string) (TaskType, bool) {
	t := TaskType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// IsValid reports whether t is a known task type.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeUrgent, TaskTypeMedium, TaskTypeLow:
		return true
	default:
		return false
	}
}

// ParseTaskStatus matches s against the known statuses case-insensitively.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	st := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.IsValid()
}

// IsValid reports whether s is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusArchived:
		return true
	default:
		return false
	}
}

// Task is a unit of work owned by exactly one user. A non-nil DeletedAt marks
// the task as soft-deleted; such tasks are invisible to every read path.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        TaskType   `json:"type"`
	Status      TaskStatus `json:"status"`
	OwnerID     int64      `json:"ownerId"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsDeleted reports whether the task has been soft-deleted.
func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := ValidateDescription(t.Description); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return NewValidationError("type", "must be URGENT, MEDIUM or LOW")
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "must be PENDING, IN_PROGRESS, COMPLETED or ARCHIVED")
	}
	if t.OwnerID <= 0 {
		return NewValidationError("ownerId", "must reference a user")
	}
	return nil
}

// ValidateTitle checks the title length in characters.
func ValidateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < MinTitleLength || n > MaxTitleLength {
		return NewValidationError("title", "must be between 4 and 100 characters")
	}
	return nil
}

// ValidateDescription checks the description length in characters.
func ValidateDescription(description string) error {
	if n := utf8.RuneCountInString(description); n < MinDescriptionLength || n > MaxDescriptionLength {
		return NewValidationError("description", "must be between 10 and 500 characters")
	}
	return nil
}

// TaskDraft carries the caller-supplied fields for a new task. Zero Type and
// Status take their defaults; a nil OwnerID means "owned by the caller".
type TaskDraft struct {
	Title       string
	Description string
	Type        TaskType
	Status      TaskStatus
	OwnerID     *int64
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Type        *TaskType
	Status      *TaskStatus
	OwnerID     *int64
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Type == nil &&
		p.Status == nil && p.OwnerID == nil
}

// Apply copies the non-nil patch fields onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.OwnerID != nil {
		t.OwnerID = *p.OwnerID
	}
}
