package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
)

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
}

// TodoCardRepository loads cards together with their owner.
type TodoCardRepository interface {
	Create(ctx context.Context, t *entity.TodoCard) error
	GetByID(ctx context.Context, id int64) (*entity.TodoCard, error)
	FindAll(ctx context.Context) ([]entity.TodoCard, error)
	FindAllWithFilters(ctx context.Context, f entity.TodoCardFilter, sort entity.Sort, page entity.PageRequest) (entity.Page[entity.TodoCard], error)
	Update(ctx context.Context, t *entity.TodoCard) error
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	// FindAllByTodoCardID returns comments ordered by creation, oldest first.
	FindAllByTodoCardID(ctx context.Context, todoCardID int64) ([]entity.Comment, error)
}

// TxManager runs fn inside a single transaction. Repositories called with the ctx
// passed to fn take part in that transaction; a non-nil error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
