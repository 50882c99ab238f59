package postgres

import (
	"strconv"
	"strings"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
)

var sortColumns = map[entity.SortField]string{
	entity.SortByCreatedAt: "t.created_at",
	entity.SortByUpdatedAt: "t.updated_at",
	entity.SortByTitle:     "t.title",
	entity.SortByID:        "t.id",
}

// filterClause builds the WHERE clause for f. Placeholders are numbered from $1 in
// the order of the returned args. The keyword match is case sensitive.
func filterClause(f entity.TodoCardFilter) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Keyword != nil {
		p := next(*f.Keyword)
		conds = append(conds, "(strpos(t.title, "+p+") > 0 OR strpos(t.description, "+p+") > 0)")
	}
	if f.Category != nil {
		conds = append(conds, "t.category = "+next(string(*f.Category)))
	}
	if f.Completed != nil {
		conds = append(conds, "t.completed = "+next(*f.Completed))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// pagedQueries returns the COUNT and the paged SELECT for f. Both take args; the
// SELECT additionally takes the limit and the offset as its last two placeholders.
func pagedQueries(f entity.TodoCardFilter, s entity.Sort) (countSQL, listSQL string, args []any) {
	where, args := filterClause(f)
	n := len(args)
	countSQL = `SELECT COUNT(*) FROM todo_cards t` + where
	listSQL = selectTodoCard + where + orderClause(s) +
		" LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	return countSQL, listSQL, args
}

// orderClause orders by the sort column with id as tie-breaker in the same direction.
func orderClause(s entity.Sort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = sortColumns[entity.DefaultSort.Field]
	}
	dir := " ASC"
	if s.Desc {
		dir = " DESC"
	}
	if col == "t.id" {
		return " ORDER BY t.id" + dir
	}
	return " ORDER BY " + col + dir + ", t.id" + dir
}
