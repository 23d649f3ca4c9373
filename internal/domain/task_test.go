package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validTask() Task {
	return Task{
		ID:          1,
		Title:       "Write report",
		Description: "Quarterly numbers for the board",
		Type:        TaskTypeMedium,
		Status:      TaskStatusPending,
		OwnerID:     7,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestParseTaskType(t *testing.T) {
	cases := []struct {
		in   string
		want TaskType
		ok   bool
	}{
		{"URGENT", TaskTypeUrgent, true},
		{"urgent", TaskTypeUrgent, true},
		{"MeDiUm", TaskTypeMedium, true},
		{" low ", TaskTypeLow, true},
		{"bogus", TaskType("BOGUS"), false},
		{"", TaskType(""), false},
	}

	for _, tc := range cases {
		got, ok := ParseTaskType(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseTaskType(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseTaskStatus(t *testing.T) {
	cases := []struct {
		in   string
		want TaskStatus
		ok   bool
	}{
		{"pending", TaskStatusPending, true},
		{"In_Progress", TaskStatusInProgress, true},
		{"COMPLETED", TaskStatusCompleted, true},
		{"archived", TaskStatusArchived, true},
		{"done", TaskStatus("DONE"), false},
	}

	for _, tc := range cases {
		got, ok := ParseTaskStatus(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseTaskStatus(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	task := validTask()
	if err := task.Validate(); err != nil {
		t.Fatalf("Expected valid task, got %v", err)
	}

	cases := map[string]func(*Task){
		"short title":        func(t *Task) { t.Title = "abc" },
		"long title":         func(t *Task) { t.Title = strings.Repeat("x", 101) },
		"short description":  func(t *Task) { t.Description = "too short" },
		"long description":   func(t *Task) { t.Description = strings.Repeat("x", 501) },
		"unknown type":       func(t *Task) { t.Type = "HUGE" },
		"unknown status":     func(t *Task) { t.Status = "DONE" },
		"missing owner":      func(t *Task) { t.OwnerID = 0 },
		"lowercase type":     func(t *Task) { t.Type = "urgent" },
		"lowercase status":   func(t *Task) { t.Status = "pending" },
	}

	for name, mutate := range cases {
		task := validTask()
		mutate(&task)
		err := task.Validate()
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}

	// Lengths are counted in characters, not bytes.
	task = validTask()
	task.Title = "ñaño"
	if err := task.Validate(); err != nil {
		t.Errorf("Expected four-character title to be valid, got %v", err)
	}
}

func TestTaskIsDeleted(t *testing.T) {
	task := validTask()
	if task.IsDeleted() {
		t.Error("Expected fresh task not to be deleted")
	}

	now := time.Now()
	task.DeletedAt = &now
	if !task.IsDeleted() {
		t.Error("Expected task with DeletedAt to be deleted")
	}
}

func TestTaskPatchApply(t *testing.T) {
	task := validTask()
	before := task

	var empty TaskPatch
	if !empty.IsEmpty() {
		t.Error("Expected zero patch to be empty")
	}
	empty.Apply(&task)
	if task != before {
		t.Error("Expected empty patch to leave task unchanged")
	}

	title := "New title"
	status := TaskStatusCompleted
	owner := int64(9)
	patch := TaskPatch{Title: &title, Status: &status, OwnerID: &owner}
	if patch.IsEmpty() {
		t.Fatal("Expected patch to be non-empty")
	}

	patch.Apply(&task)
	if task.Title != title || task.Status != status || task.OwnerID != owner {
		t.Errorf("Patch not applied: %+v", task)
	}
	if task.Description != validTask().Description || task.Type != TaskTypeMedium {
		t.Errorf("Untouched fields changed: %+v", task)
	}
}
