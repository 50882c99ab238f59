package memory

import (
	"context"
	"testing"
	"time"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	"github.com/oksasatya/go-todo-cards/internal/fixture"
)

// tickingClock advances one minute per call so insertion order equals creation order.
func tickingClock() func() time.Time {
	t := time.Date(2024, 6, 24, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

// seedStore loads the demo fixture: users get ids 1-2, cards ids 3-17.
func seedStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s := NewStore(WithClock(tickingClock()))

	users := make([]*entity.User, 0, len(fixture.Users))
	for _, fu := range fixture.Users {
		u := &entity.User{Email: fu.Email, Password: fu.Password, Nickname: fu.Nickname}
		if err := s.Users().Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
		users = append(users, u)
	}
	for _, c := range fixture.Cards {
		card := &entity.TodoCard{
			Title:       c.Title,
			Description: c.Description,
			Category:    c.Category,
			Completed:   c.Completed,
			UserID:      users[c.Owner].ID,
		}
		if err := s.TodoCards().Create(ctx, card); err != nil {
			t.Fatalf("seed card: %v", err)
		}
	}
	return s
}
