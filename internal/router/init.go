package router

import (
	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/internal/container"
	"github.com/oksasatya/go-todo-cards/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/go-todo-cards/internal/infrastructure/postgres"
	"github.com/oksasatya/go-todo-cards/internal/infrastructure/search"
	"github.com/oksasatya/go-todo-cards/internal/infrastructure/storage"
	handlers "github.com/oksasatya/go-todo-cards/internal/interface/http"
	"github.com/oksasatya/go-todo-cards/internal/router/modules"
)

type moduleDeps struct {
	Sessions application.SessionStore
	Users    *handlers.UserHandler
	Todos    *handlers.TodoHandler
	Comments *handlers.CommentHandler
}

// buildDeps assembles repositories, services and handlers from the container.
// Redis, Elasticsearch, GCS and RabbitMQ are optional; their features switch off when absent.
func buildDeps() moduleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	tx := pginfra.NewTxManager(pool)
	userRepo := pginfra.NewUserRepository(pool)
	cardRepo := pginfra.NewTodoCardRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	var (
		sessions  application.SessionStore
		cardCache application.TodoCardCache
		mail      application.EmailPublisher
		todoOpts  []application.TodoOption
	)
	if rdb := container.GetRedis(); rdb != nil {
		sessions = cache.NewSessionStore(rdb)
		cardCache = cache.NewTodoCardCache(rdb, cfg.CacheTTL)
		todoOpts = append(todoOpts, application.WithCache(cardCache))
	}
	if es := container.GetES(); es != nil {
		todoOpts = append(todoOpts, application.WithIndexer(search.NewTodoCardIndex(es, cfg.ESTodoIndex)))
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		todoOpts = append(todoOpts, application.WithStorage(storage.NewGCSStorage(gcs, cfg.GCSBucket)))
	}
	if pub := container.GetRabbitPub(); pub != nil {
		mail = pub
	}

	userSvc := application.NewUserService(tx, userRepo, container.GetJWT(), sessions, mail, cfg.AppName, logger)
	todoSvc := application.NewTodoService(tx, cardRepo, commentRepo, userRepo, logger, todoOpts...)
	commentSvc := application.NewCommentService(tx, cardRepo, commentRepo, userRepo, cardCache, mail, cfg.AppName, logger)

	return moduleDeps{
		Sessions: sessions,
		Users:    handlers.NewUserHandler(userSvc, logger, cfg.Env == "production"),
		Todos:    handlers.NewTodoHandler(todoSvc, logger, cfg.DefaultPageSize, cfg.MaxPageSize),
		Comments: handlers.NewCommentHandler(commentSvc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	deps := buildDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewUserModule(deps.Users, jwt, deps.Sessions))
	r.Add(modules.NewTodoModule(deps.Todos, deps.Comments, jwt, deps.Sessions))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
