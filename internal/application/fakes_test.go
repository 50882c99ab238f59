package application

import (
	"context"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	"github.com/oksasatya/go-todo-cards/internal/infrastructure/memory"
	"github.com/oksasatya/go-todo-cards/pkg/helpers"
	"github.com/oksasatya/go-todo-cards/pkg/mailer"
)

func TestMain(m *testing.M) {
	helpers.PasswordCost = 4 // bcrypt.MinCost
	os.Exit(m.Run())
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func newFakeSessions() *fakeSessions { return &fakeSessions{sessions: map[int64]Session{}} }

func (f *fakeSessions) Save(_ context.Context, s Session, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.UserID] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, userID int64) (Session, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[userID]
	return s, ok, nil
}

func (f *fakeSessions) Delete(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, userID)
	return nil
}

type fakePublisher struct {
	jobs []mailer.EmailJob
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

type fakeCache struct {
	entries     map[int64]*TodoCardResponseWithComments
	gens        map[int64]int64
	invalidated []int64
	// beforeSet runs between the database read and SetDetail.
	beforeSet func()
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int64]*TodoCardResponseWithComments{}, gens: map[int64]int64{}}
}

func (f *fakeCache) GetDetail(_ context.Context, id int64) (*TodoCardResponseWithComments, bool, error) {
	v, ok := f.entries[id]
	return v, ok, nil
}

func (f *fakeCache) Generation(_ context.Context, id int64) (int64, error) {
	return f.gens[id], nil
}

func (f *fakeCache) SetDetail(_ context.Context, id int64, gen int64, v *TodoCardResponseWithComments) error {
	if f.beforeSet != nil {
		f.beforeSet()
	}
	if f.gens[id] != gen {
		return nil
	}
	f.entries[id] = v
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, id int64) error {
	delete(f.entries, id)
	f.gens[id]++
	f.invalidated = append(f.invalidated, id)
	return nil
}

type fakeIndexer struct {
	indexed map[int64]string
	hits    []int64
}

func (f *fakeIndexer) Index(_ context.Context, c *entity.TodoCard) error {
	if f.indexed == nil {
		f.indexed = map[int64]string{}
	}
	f.indexed[c.ID] = c.Title
	return nil
}

func (f *fakeIndexer) Delete(_ context.Context, id int64) error {
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndexer) Search(context.Context, string, int) ([]int64, error) {
	return f.hits, nil
}

type fakeStorage struct {
	paths   []string
	deleted []string
	// afterUpload runs once the object is stored.
	afterUpload func()
}

func (f *fakeStorage) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.paths = append(f.paths, objectPath)
	if f.afterUpload != nil {
		f.afterUpload()
	}
	return helpers.PublicURL("bucket", objectPath), nil
}

func (f *fakeStorage) Delete(_ context.Context, objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	return nil
}

// fixture wires all services over one in-memory store with two users.
type fixture struct {
	store    *memory.Store
	users    *UserService
	todos    *TodoService
	comments *CommentService
	sessions *fakeSessions
	mail     *fakePublisher
	cache    *fakeCache
	owner    Principal
	other    Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	f := &fixture{
		store:    store,
		sessions: newFakeSessions(),
		mail:     &fakePublisher{},
		cache:    newFakeCache(),
	}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	f.users = NewUserService(store.TxManager(), store.Users(), jwt, f.sessions, f.mail, "Todo Cards", nil)
	f.todos = NewTodoService(store.TxManager(), store.TodoCards(), store.Comments(), store.Users(), nil, WithCache(f.cache))
	f.comments = NewCommentService(store.TxManager(), store.TodoCards(), store.Comments(), store.Users(), f.cache, f.mail, "Todo Cards", nil)

	u1, err := f.users.SignUp(ctx, SignUpRequest{Email: "user1@naver.com", Password: "password1", Nickname: "user1"})
	if err != nil {
		t.Fatalf("sign up user1: %v", err)
	}
	u2, err := f.users.SignUp(ctx, SignUpRequest{Email: "user2@gmail.com", Password: "password2", Nickname: "user2"})
	if err != nil {
		t.Fatalf("sign up user2: %v", err)
	}
	f.owner = Principal{UserID: u1.ID, Email: u1.Email}
	f.other = Principal{UserID: u2.ID, Email: u2.Email}
	f.mail.jobs = nil
	return f
}

func (f *fixture) createCard(t *testing.T, title string) *TodoCardResponse {
	t.Helper()
	card, err := f.todos.CreateTodoCard(context.Background(), CreateTodoCardRequest{
		UserID:      f.owner.UserID,
		Title:       title,
		Description: "description of " + title,
		Category:    entity.CategoryStudy,
	})
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	return card
}

func ptr[T any](v T) *T { return &v }
