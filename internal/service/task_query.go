package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/store"
)

// PageSize is the fixed number of tasks per page.
const PageSize = 10

// maxPage keeps the computed offset well inside the int range.
const maxPage = math.MaxInt32

// TaskListParams are the raw list parameters as received from the client.
type TaskListParams struct {
	Title  string
	Type   string
	SortBy string
	Order  string
	Page   string
}

// PageMeta describes the position of a page within the full result set.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// TaskPage is one page of tasks.
type TaskPage struct {
	Data []domain.Task `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// TaskQueryEngine turns list parameters into a validated store query and runs it.
type TaskQueryEngine struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskQueryEngine creates a TaskQueryEngine.
func NewTaskQueryEngine(tasks store.TaskStore, log *slog.Logger) *TaskQueryEngine {
	if log == nil {
		log = slog.Default()
	}
	return &TaskQueryEngine{
		tasks:  tasks,
		logger: log.With(slog.String("component", "task_query")),
	}
}

// FindAll lists live tasks visible to the principal. Non-admins only ever see
// their own tasks regardless of the parameters.
func (e *TaskQueryEngine) FindAll(
	ctx context.Context,
	principal domain.Principal,
	params TaskListParams,
) (*TaskPage, error) {
	var owner *int64
	if !principal.IsAdmin() {
		id := principal.UserID
		owner = &id
	}
	return e.find(ctx, owner, params)
}

// FindForOwner lists live tasks owned by ownerID.
func (e *TaskQueryEngine) FindForOwner(ctx context.Context, ownerID int64, params TaskListParams) (*TaskPage, error) {
	return e.find(ctx, &ownerID, params)
}

func (e *TaskQueryEngine) find(ctx context.Context, owner *int64, params TaskListParams) (*TaskPage, error) {
	query, page, err := BuildTaskQuery(owner, params)
	if err != nil {
		return nil, err
	}

	tasks, err := e.tasks.FindMany(ctx, query)
	if err != nil {
		return nil, mapStoreError(err)
	}
	total, err := e.tasks.Count(ctx, query.Filter)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	logger.FromContextOrDefault(ctx, e.logger).Debug("tasks listed",
		slog.Int("page", page),
		slog.Int("returned", len(tasks)),
		slog.Int("total", total))

	return &TaskPage{
		Data: tasks,
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			PageSize:   PageSize,
			TotalPages: (total + PageSize - 1) / PageSize,
		},
	}, nil
}

// BuildTaskQuery validates params and produces the store query and the
// requested page number.
//
// An unknown type or a page that is not a positive integer fails with
// domain.ErrInvalidFilter. Unknown sort fields fall back to createdAt and any
// order other than "asc" means descending.
func BuildTaskQuery(owner *int64, params TaskListParams) (store.TaskQuery, int, error) {
	filter := store.TaskFilter{
		OwnerID:       owner,
		TitleContains: strings.TrimSpace(params.Title),
	}

	if params.Type != "" {
		t, ok := domain.ParseTaskType(params.Type)
		if !ok {
			return store.TaskQuery{}, 0, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidFilter, params.Type)
		}
		filter.Type = &t
	}

	sort := store.SortField(params.SortBy)
	if !sort.IsValid() {
		sort = store.SortByCreatedAt
	}

	order := store.SortDesc
	if strings.EqualFold(strings.TrimSpace(params.Order), string(store.SortAsc)) {
		order = store.SortAsc
	}

	page := 1
	if raw := strings.TrimSpace(params.Page); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPage {
			return store.TaskQuery{}, 0, fmt.Errorf("%w: page must be a positive integer", domain.ErrInvalidFilter)
		}
		page = n
	}

	return store.TaskQuery{
		Filter: filter,
		Sort:   sort,
		Order:  order,
		Offset: (page - 1) * PageSize,
		Limit:  PageSize,
	}, page, nil
}
