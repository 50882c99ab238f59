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

// UserModule wires sign-up/in/out and profile routes.
// Public: POST /api/signup, POST /api/signin
// Protected: POST /api/signout, GET /api/users/me, PUT /api/users/:userId/profile
type UserModule struct {
	Handler  *handlers.UserHandler
	JWT      *helpers.JWTManager
	Sessions application.SessionStore
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, sessions application.SessionStore) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Sessions: sessions}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signUpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil)
	signInLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/signup", signUpLimiter, m.Handler.SignUp)
	rg.POST("/signin", signInLimiter, m.Handler.SignIn)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Sessions))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/signout", m.Handler.SignOut)
		auth.GET("/users/me", m.Handler.Me)
		auth.PUT("/users/:userId/profile", m.Handler.UpdateProfile)
	}
}
