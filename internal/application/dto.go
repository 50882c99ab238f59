package application

import (
	"time"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
)

type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type TodoCardResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    entity.Category `json:"category"`
	Completed   bool            `json:"completed"`
	ImageURL    string          `json:"image_url,omitempty"`
	User        UserResponse    `json:"user"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CommentResponse struct {
	ID        int64        `json:"id"`
	Content   string       `json:"content"`
	User      UserResponse `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

type TodoCardResponseWithComments struct {
	TodoCardResponse
	Comments []CommentResponse `json:"comments"`
}

type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	IsLast        bool  `json:"is_last"`
}

type SignUpRequest struct {
	Email    string
	Password string
	Nickname string
}

type CreateTodoCardRequest struct {
	UserID      int64
	Title       string
	Description string
	Category    entity.Category // empty means OTHER
}

// UpdateTodoCardRequest is a partial update; nil fields are left unchanged.
type UpdateTodoCardRequest struct {
	Title       *string
	Description *string
	Category    *entity.Category
	Completed   *bool
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Nickname: u.Nickname}
}

func toTodoCardResponse(t *entity.TodoCard) TodoCardResponse {
	user := UserResponse{ID: t.UserID}
	if t.User != nil {
		user = toUserResponse(t.User)
	}
	return TodoCardResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Completed:   t.Completed,
		ImageURL:    t.ImageURL,
		User:        user,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toCommentResponse(c *entity.Comment) CommentResponse {
	user := UserResponse{ID: c.UserID}
	if c.User != nil {
		user = toUserResponse(c.User)
	}
	return CommentResponse{ID: c.ID, Content: c.Content, User: user, CreatedAt: c.CreatedAt}
}

func toTodoCardResponseWithComments(t *entity.TodoCard, comments []entity.Comment) *TodoCardResponseWithComments {
	out := &TodoCardResponseWithComments{
		TodoCardResponse: toTodoCardResponse(t),
		Comments:         make([]CommentResponse, 0, len(comments)),
	}
	for i := range comments {
		out.Comments = append(out.Comments, toCommentResponse(&comments[i]))
	}
	return out
}

func toPageResponse[T, R any](p entity.Page[T], fn func(*T) R) PageResponse[R] {
	mapped := entity.MapPage(p, func(v T) R { return fn(&v) })
	return PageResponse[R]{
		Content:       mapped.Content,
		Number:        mapped.Number,
		Size:          mapped.Size,
		TotalElements: mapped.TotalElements,
		TotalPages:    mapped.TotalPages,
		IsLast:        mapped.IsLast,
	}
}
