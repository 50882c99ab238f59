package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	"github.com/oksasatya/go-todo-cards/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO comments (content, user_id, todo_card_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.Content, c.UserID, c.TodoCardID)

	return row.Scan(&c.ID, &c.CreatedAt)
}

func (r *CommentRepository) FindAllByTodoCardID(ctx context.Context, todoCardID int64) ([]entity.Comment, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT c.id, c.content, c.user_id, c.todo_card_id, c.created_at,
			u.id, u.email, u.nickname, u.created_at, u.updated_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.todo_card_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`, todoCardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []entity.Comment
	for rows.Next() {
		var c entity.Comment
		u := &entity.User{}
		if err := rows.Scan(&c.ID, &c.Content, &c.UserID, &c.TodoCardID, &c.CreatedAt,
			&u.ID, &u.Email, &u.Nickname, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		c.User = u
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
