package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaspigz/taskManagerClg/internal/store"
)

// sortColumns whitelists the columns a task list may be ordered by. Sort
// fields are never interpolated into SQL from any other source.
var sortColumns = map[store.SortField]string{
	store.SortByCreatedAt: "created_at",
	store.SortByUpdatedAt: "updated_at",
	store.SortByTitle:     "title",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s safe for use inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildTaskWhere renders the WHERE clause for a filter. The soft-delete
// predicate is always present.
func buildTaskWhere(f store.TaskFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.OwnerID != nil {
		conds = append(conds, "owner_id = "+next(*f.OwnerID))
	}
	if f.TitleContains != "" {
		conds = append(conds, "title ILIKE "+next("%"+escapeLike(f.TitleContains)+"%"))
	}
	if f.Type != nil {
		conds = append(conds, "type = "+next(string(*f.Type)))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// buildFindManyQuery renders a paginated SELECT for q.
func buildFindManyQuery(q store.TaskQuery) (string, []any, error) {
	col, ok := sortColumns[q.Sort]
	if !ok {
		return "", nil, fmt.Errorf("%w: unsupported sort field %q", store.ErrInvalidQuery, q.Sort)
	}

	var dir string
	switch q.Order {
	case store.SortAsc:
		dir = "ASC"
	case store.SortDesc:
		dir = "DESC"
	default:
		return "", nil, fmt.Errorf("%w: unsupported sort order %q", store.ErrInvalidQuery, q.Order)
	}

	if q.Limit <= 0 || q.Offset < 0 {
		return "", nil, fmt.Errorf("%w: limit %d offset %d", store.ErrInvalidQuery, q.Limit, q.Offset)
	}

	where, args := buildTaskWhere(q.Filter)
	args = append(args, q.Limit, q.Offset)

	// id breaks ties so pages stay stable between requests
	query := fmt.Sprintf(
		"SELECT %s FROM tasks %s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d",
		taskColumns, where, col, dir, dir, len(args)-1, len(args),
	)
	return query, args, nil
}

// buildCountQuery renders a COUNT(*) over the same predicate as FindMany.
func buildCountQuery(f store.TaskFilter) (string, []any) {
	where, args := buildTaskWhere(f)
	return "SELECT COUNT(*) FROM tasks " + where, args
}
