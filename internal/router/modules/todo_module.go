package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/internal/container"
	handlers "github.com/oksasatya/go-todo-cards/internal/interface/http"
	"github.com/oksasatya/go-todo-cards/internal/interface/middleware"
	"github.com/oksasatya/go-todo-cards/pkg/helpers"
)

// TodoModule wires todo card and comment routes. Reads are public, writes need a token.
type TodoModule struct {
	Todos    *handlers.TodoHandler
	Comments *handlers.CommentHandler
	JWT      *helpers.JWTManager
	Sessions application.SessionStore
}

func NewTodoModule(todos *handlers.TodoHandler, comments *handlers.CommentHandler, jwt *helpers.JWTManager, sessions application.SessionStore) *TodoModule {
	return &TodoModule{Todos: todos, Comments: comments, JWT: jwt, Sessions: sessions}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	public := rg.Group("/todo-cards", readLimiter)
	{
		public.GET("", m.Todos.List)
		public.GET("/all", m.Todos.All)
		public.GET("/search", searchLimiter, m.Todos.Search)
		public.GET("/:todoCardId", m.Todos.Get)
	}

	auth := rg.Group("/todo-cards")
	auth.Use(middleware.Auth(m.JWT, m.Sessions))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Todos.Create)
		auth.PUT("/:todoCardId", m.Todos.Update)
		auth.DELETE("/:todoCardId", m.Todos.Delete)
		auth.POST("/:todoCardId/image", m.Todos.UploadImage)
		auth.POST("/:todoCardId/comments", m.Comments.Create)
	}
}
