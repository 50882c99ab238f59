// Package memory provides in-process implementations of the repository interfaces.
// They follow the same semantics as the Postgres repositories and back the unit tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	"github.com/oksasatya/go-todo-cards/internal/domain/repository"
)

// Store holds all tables. Transactions are serialized and roll back by restoring a snapshot.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	now      func() time.Time
	seq      int64
	users    map[int64]entity.User
	cards    map[int64]entity.TodoCard
	comments map[int64]entity.Comment
}

type Option func(*Store)

// WithClock overrides the clock used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		users:    map[int64]entity.User{},
		cards:    map[int64]entity.TodoCard{},
		comments: map[int64]entity.Comment{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Users() *UserRepository         { return &UserRepository{s: s} }
func (s *Store) TodoCards() *TodoCardRepository { return &TodoCardRepository{s: s} }
func (s *Store) Comments() *CommentRepository   { return &CommentRepository{s: s} }
func (s *Store) TxManager() *TxManager          { return &TxManager{s: s} }

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

type snapshot struct {
	seq      int64
	users    map[int64]entity.User
	cards    map[int64]entity.TodoCard
	comments map[int64]entity.Comment
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		seq:      s.seq,
		users:    make(map[int64]entity.User, len(s.users)),
		cards:    make(map[int64]entity.TodoCard, len(s.cards)),
		comments: make(map[int64]entity.Comment, len(s.comments)),
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.cards {
		snap.cards[k] = v
	}
	for k, v := range s.comments {
		snap.comments[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snap.seq
	s.users = snap.users
	s.cards = snap.cards
	s.comments = snap.comments
}

type txKey struct{}

type TxManager struct {
	s *Store
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.s.nextID()
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Nickname = u.Nickname
	existing.UpdatedAt = r.s.now()
	r.s.users[u.ID] = existing
	u.UpdatedAt = existing.UpdatedAt
	return nil
}

type TodoCardRepository struct {
	s *Store
}

// withUser attaches a copy of the owner; callers hold at least a read lock.
func (r *TodoCardRepository) withUser(t entity.TodoCard) entity.TodoCard {
	if u, ok := r.s.users[t.UserID]; ok {
		t.User = &u
	}
	return t
}

func (r *TodoCardRepository) Create(_ context.Context, t *entity.TodoCard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[t.UserID]; !ok {
		return repository.ErrNotFound
	}
	t.ID = r.s.nextID()
	t.CreatedAt = r.s.now()
	t.UpdatedAt = t.CreatedAt
	stored := *t
	stored.User = nil
	r.s.cards[t.ID] = stored
	return nil
}

func (r *TodoCardRepository) GetByID(_ context.Context, id int64) (*entity.TodoCard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.cards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t = r.withUser(t)
	return &t, nil
}

func (r *TodoCardRepository) FindAll(_ context.Context) ([]entity.TodoCard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.filter(entity.TodoCardFilter{})
	sortCards(out, entity.DefaultSort)
	return out, nil
}

func (r *TodoCardRepository) FindAllWithFilters(_ context.Context, f entity.TodoCardFilter, s entity.Sort, page entity.PageRequest) (entity.Page[entity.TodoCard], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := r.filter(f)
	sortCards(matched, s)

	total := int64(len(matched))
	var content []entity.TodoCard
	if off := page.Offset(); off < len(matched) {
		end := off + page.Size
		if end > len(matched) {
			end = len(matched)
		}
		content = matched[off:end]
	}
	return entity.NewPage(content, page, total), nil
}

func (r *TodoCardRepository) filter(f entity.TodoCardFilter) []entity.TodoCard {
	out := make([]entity.TodoCard, 0, len(r.s.cards))
	for _, t := range r.s.cards {
		if f.Keyword != nil && !strings.Contains(t.Title, *f.Keyword) && !strings.Contains(t.Description, *f.Keyword) {
			continue
		}
		if f.Category != nil && t.Category != *f.Category {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		out = append(out, r.withUser(t))
	}
	return out
}

func sortCards(cards []entity.TodoCard, s entity.Sort) {
	less := func(a, b entity.TodoCard) int {
		switch s.Field {
		case entity.SortByUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		case entity.SortByTitle:
			return strings.Compare(a.Title, b.Title)
		case entity.SortByID:
			return 0
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		c := less(cards[i], cards[j])
		if c == 0 {
			c = compareInt64(cards[i].ID, cards[j].ID)
		}
		if s.Desc {
			return c > 0
		}
		return c < 0
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r *TodoCardRepository) Update(_ context.Context, t *entity.TodoCard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.cards[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Title = t.Title
	existing.Description = t.Description
	existing.Category = t.Category
	existing.Completed = t.Completed
	existing.ImageURL = t.ImageURL
	existing.UpdatedAt = r.s.now()
	r.s.cards[t.ID] = existing
	t.UpdatedAt = existing.UpdatedAt
	return nil
}

// Delete removes the card and cascades to its comments.
func (r *TodoCardRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cards[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.cards, id)
	for cid, c := range r.s.comments {
		if c.TodoCardID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

type CommentRepository struct {
	s *Store
}

func (r *CommentRepository) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cards[c.TodoCardID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users[c.UserID]; !ok {
		return repository.ErrNotFound
	}
	c.ID = r.s.nextID()
	c.CreatedAt = r.s.now()
	stored := *c
	stored.User = nil
	r.s.comments[c.ID] = stored
	return nil
}

func (r *CommentRepository) FindAllByTodoCardID(_ context.Context, todoCardID int64) ([]entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []entity.Comment
	for _, c := range r.s.comments {
		if c.TodoCardID != todoCardID {
			continue
		}
		if u, ok := r.s.users[c.UserID]; ok {
			c.User = &u
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.TodoCardRepository = (*TodoCardRepository)(nil)
	_ repository.CommentRepository  = (*CommentRepository)(nil)
	_ repository.TxManager          = (*TxManager)(nil)
)
