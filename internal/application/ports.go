package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
)

// Principal is the verified identity of the caller, resolved from the access token
// by the HTTP layer and passed explicitly to every operation that needs it.
type Principal struct {
	UserID    int64
	Email     string
	SessionID string
}

// Session is the server-side record of a signed-in user.
type Session struct {
	UserID    int64
	Email     string
	Nickname  string
	SessionID string
}

type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, userID int64) (Session, bool, error)
	Delete(ctx context.Context, userID int64) error
}

// TodoCardCache caches the detail view of a card. Every Invalidate bumps the card's
// generation; SetDetail is a no-op when the generation moved past gen, so a detail
// read before a concurrent write is never stored after it.
type TodoCardCache interface {
	GetDetail(ctx context.Context, id int64) (*TodoCardResponseWithComments, bool, error)
	Generation(ctx context.Context, id int64) (int64, error)
	SetDetail(ctx context.Context, id int64, gen int64, v *TodoCardResponseWithComments) error
	Invalidate(ctx context.Context, id int64) error
}

// TodoCardIndexer maintains a full-text index of cards.
type TodoCardIndexer interface {
	Index(ctx context.Context, card *entity.TodoCard) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, size int) ([]int64, error)
}

// EmailPublisher enqueues mailer.EmailJob payloads.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type ObjectStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
}
