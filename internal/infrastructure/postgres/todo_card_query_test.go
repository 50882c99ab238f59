package postgres

import (
	"strings"
	"testing"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
)

func TestFilterClauseEmpty(t *testing.T) {
	where, args := filterClause(entity.TodoCardFilter{})
	if where != "" || len(args) != 0 {
		t.Fatalf("expected no clause, got %q %v", where, args)
	}
}

func TestFilterClauseAllFilters(t *testing.T) {
	kw := "계획"
	cat := entity.CategoryExercise
	done := false
	where, args := filterClause(entity.TodoCardFilter{Keyword: &kw, Category: &cat, Completed: &done})

	want := " WHERE (strpos(t.title, $1) > 0 OR strpos(t.description, $1) > 0) AND t.category = $2 AND t.completed = $3"
	if where != want {
		t.Fatalf("where mismatch\n got: %s\nwant: %s", where, want)
	}
	if len(args) != 3 || args[0] != "계획" || args[1] != "EXERCISE" || args[2] != false {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestFilterClauseNumbersPlaceholdersInOrder(t *testing.T) {
	done := true
	where, args := filterClause(entity.TodoCardFilter{Completed: &done})
	if where != " WHERE t.completed = $1" || len(args) != 1 {
		t.Fatalf("got %q %v", where, args)
	}
}

func TestOrderClause(t *testing.T) {
	if got := orderClause(entity.DefaultSort); got != " ORDER BY t.created_at DESC, t.id DESC" {
		t.Fatalf("default order: %q", got)
	}
	if got := orderClause(entity.Sort{Field: entity.SortByTitle}); got != " ORDER BY t.title ASC, t.id ASC" {
		t.Fatalf("title asc: %q", got)
	}
	if got := orderClause(entity.Sort{Field: entity.SortByID, Desc: true}); got != " ORDER BY t.id DESC" {
		t.Fatalf("id desc: %q", got)
	}
}

func TestPagedQueriesNumberLimitAndOffsetAfterFilters(t *testing.T) {
	kw := "계획"
	cat := entity.CategoryStudy
	done := true
	countSQL, listSQL, args := pagedQueries(entity.TodoCardFilter{Keyword: &kw, Category: &cat, Completed: &done}, entity.DefaultSort)

	if len(args) != 3 {
		t.Fatalf("expected three filter args, got %v", args)
	}
	if !strings.HasPrefix(countSQL, "SELECT COUNT(*) FROM todo_cards t WHERE ") || strings.Contains(countSQL, "LIMIT") {
		t.Fatalf("count query: %s", countSQL)
	}
	if !strings.HasSuffix(listSQL, " ORDER BY t.created_at DESC, t.id DESC LIMIT $4 OFFSET $5") {
		t.Fatalf("list query: %s", listSQL)
	}
	if !strings.Contains(listSQL, "t.completed = $3") {
		t.Fatalf("list query lost the filter: %s", listSQL)
	}
}

func TestPagedQueriesWithoutFilters(t *testing.T) {
	countSQL, listSQL, args := pagedQueries(entity.TodoCardFilter{}, entity.Sort{Field: entity.SortByTitle})
	if len(args) != 0 || countSQL != "SELECT COUNT(*) FROM todo_cards t" {
		t.Fatalf("count query: %q %v", countSQL, args)
	}
	if !strings.HasSuffix(listSQL, "JOIN users u ON u.id = t.user_id ORDER BY t.title ASC, t.id ASC LIMIT $1 OFFSET $2") {
		t.Fatalf("list query: %s", listSQL)
	}
}
