package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	"github.com/oksasatya/go-todo-cards/internal/domain/repository"
)

const selectTodoCard = `
	SELECT t.id, t.title, t.description, t.category, t.completed, t.image_url, t.user_id,
		t.created_at, t.updated_at,
		u.id, u.email, u.nickname, u.created_at, u.updated_at
	FROM todo_cards t
	JOIN users u ON u.id = t.user_id`

type TodoCardRepository struct {
	pool *pgxpool.Pool
}

func NewTodoCardRepository(pool *pgxpool.Pool) *TodoCardRepository {
	return &TodoCardRepository{pool: pool}
}

func scanTodoCard(row pgx.Row) (entity.TodoCard, error) {
	var t entity.TodoCard
	var category string
	u := &entity.User{}
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &category, &t.Completed, &t.ImageURL, &t.UserID,
		&t.CreatedAt, &t.UpdatedAt,
		&u.ID, &u.Email, &u.Nickname, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.Category = entity.Category(category)
	t.User = u
	return t, nil
}

func (r *TodoCardRepository) Create(ctx context.Context, t *entity.TodoCard) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO todo_cards (title, description, category, completed, image_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, t.Title, t.Description, string(t.Category), t.Completed, t.ImageURL, t.UserID)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoCardRepository) GetByID(ctx context.Context, id int64) (*entity.TodoCard, error) {
	t, err := scanTodoCard(conn(ctx, r.pool).QueryRow(ctx, selectTodoCard+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TodoCardRepository) FindAll(ctx context.Context) ([]entity.TodoCard, error) {
	return r.list(ctx, selectTodoCard+orderClause(entity.DefaultSort))
}

func (r *TodoCardRepository) FindAllWithFilters(ctx context.Context, f entity.TodoCardFilter, sort entity.Sort, page entity.PageRequest) (entity.Page[entity.TodoCard], error) {
	countSQL, listSQL, args := pagedQueries(f, sort)

	var total int64
	if err := conn(ctx, r.pool).QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return entity.Page[entity.TodoCard]{}, err
	}

	var cards []entity.TodoCard
	if total > int64(page.Offset()) {
		var err error
		cards, err = r.list(ctx, listSQL, append(args, page.Size, page.Offset())...)
		if err != nil {
			return entity.Page[entity.TodoCard]{}, err
		}
	}
	return entity.NewPage(cards, page, total), nil
}

func (r *TodoCardRepository) list(ctx context.Context, query string, args ...any) ([]entity.TodoCard, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []entity.TodoCard
	for rows.Next() {
		t, err := scanTodoCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, t)
	}
	return cards, rows.Err()
}

func (r *TodoCardRepository) Update(ctx context.Context, t *entity.TodoCard) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE todo_cards
		SET title = $1, description = $2, category = $3, completed = $4, image_url = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`, t.Title, t.Description, string(t.Category), t.Completed, t.ImageURL, t.ID)

	if err := row.Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *TodoCardRepository) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM todo_cards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkRowsAffectedOne(tag)
}

var _ repository.TodoCardRepository = (*TodoCardRepository)(nil)
