package api

import (
	"net/http"

	"github.com/gaspigz/taskManagerClg/internal/service"
)

// TaskHandler handles the task endpoints.
type TaskHandler struct {
	tasks service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// listParams reads the list query string without interpreting it; the query
// engine owns the parsing rules.
func listParams(r *http.Request) service.TaskListParams {
	q := r.URL.Query()
	return service.TaskListParams{
		Title:  q.Get("title"),
		Type:   q.Get("type"),
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
		Page:   q.Get("page"),
	}
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}

	page, err := h.tasks.FindAll(r.Context(), p, listParams(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, page)
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	draft, err := req.ToDraft()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Create(r.Context(), p, draft)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, task)
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.FindOne(r.Context(), p, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PATCH /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Update(r.Context(), p, id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, task)
}

// Archive handles PATCH /api/tasks/{id}/archive.
func (h *TaskHandler) Archive(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Archive(r.Context(), p, id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}

	if err := h.tasks.Remove(r.Context(), p, id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListForUser handles GET /api/tasks/user/{userId}.
func (h *TaskHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}
	userID, ok := pathIDOrBadRequest(w, r, "userId")
	if !ok {
		return
	}

	page, err := h.tasks.ListForUser(r.Context(), p, userID, listParams(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, page)
}
