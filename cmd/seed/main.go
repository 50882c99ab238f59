package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-todo-cards/config"
	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	"github.com/oksasatya/go-todo-cards/internal/domain/repository"
	"github.com/oksasatya/go-todo-cards/internal/fixture"
	pginfra "github.com/oksasatya/go-todo-cards/internal/infrastructure/postgres"
	"github.com/oksasatya/go-todo-cards/pkg/helpers"
)

// seed inserts the demo users and, on an empty card table, the demo cards.
// Running it again leaves existing rows alone.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	tx := pginfra.NewTxManager(pool)
	users := pginfra.NewUserRepository(pool)
	cards := pginfra.NewTodoCardRepository(pool)

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		ids := make([]int64, 0, len(fixture.Users))
		for _, fu := range fixture.Users {
			u, err := users.GetByEmail(ctx, fu.Email)
			if errors.Is(err, repository.ErrNotFound) {
				hash, herr := helpers.HashPassword(fu.Password)
				if herr != nil {
					return herr
				}
				u = &entity.User{Email: fu.Email, Password: hash, Nickname: fu.Nickname}
				err = users.Create(ctx, u)
				if err == nil {
					fmt.Printf("seeded user: id=%d email=%s password=%s\n", u.ID, u.Email, fu.Password)
				}
			}
			if err != nil {
				return fmt.Errorf("seed user %s: %w", fu.Email, err)
			}
			ids = append(ids, u.ID)
		}

		existing, err := cards.FindAll(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			fmt.Printf("todo_cards already has %d rows; skipping cards\n", len(existing))
			return nil
		}
		for _, c := range fixture.Cards {
			card := &entity.TodoCard{
				Title:       c.Title,
				Description: c.Description,
				Category:    c.Category,
				Completed:   c.Completed,
				UserID:      ids[c.Owner],
			}
			if err := cards.Create(ctx, card); err != nil {
				return fmt.Errorf("seed card %q: %w", c.Title, err)
			}
		}
		fmt.Printf("seeded %d todo cards\n", len(fixture.Cards))
		return nil
	})
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
