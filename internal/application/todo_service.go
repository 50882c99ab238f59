package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-cards/internal/domain/repository"
)

type TodoService struct {
	Tx       repo.TxManager
	Cards    repo.TodoCardRepository
	Comments repo.CommentRepository
	Users    repo.UserRepository
	Cache    TodoCardCache
	Index    TodoCardIndexer
	Storage  ObjectStorage
	Logger   *logrus.Logger
}

type TodoOption func(*TodoService)

func WithCache(c TodoCardCache) TodoOption     { return func(s *TodoService) { s.Cache = c } }
func WithIndexer(i TodoCardIndexer) TodoOption { return func(s *TodoService) { s.Index = i } }
func WithStorage(o ObjectStorage) TodoOption   { return func(s *TodoService) { s.Storage = o } }

func NewTodoService(tx repo.TxManager, cards repo.TodoCardRepository, comments repo.CommentRepository, users repo.UserRepository, logger *logrus.Logger, opts ...TodoOption) *TodoService {
	s := &TodoService{
		Tx:       tx,
		Cards:    cards,
		Comments: comments,
		Users:    users,
		Logger:   orDiscard(logger),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func todoCardNotFound(id int64, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Model: "todoCard", ID: id}
	}
	return err
}

// GetAllTodoCards lists every card, newest first, without comments.
func (s *TodoService) GetAllTodoCards(ctx context.Context) ([]TodoCardResponse, error) {
	cards, err := s.Cards.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TodoCardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, toTodoCardResponse(&cards[i]))
	}
	return out, nil
}

// ListTodoCards returns one page of cards matching every non-nil filter.
func (s *TodoService) ListTodoCards(ctx context.Context, f entity.TodoCardFilter, sort string, page entity.PageRequest) (PageResponse[TodoCardResponse], error) {
	order, err := entity.ParseSort(sort)
	if err != nil {
		return PageResponse[TodoCardResponse]{}, err
	}
	if f.Category != nil && !f.Category.Valid() {
		return PageResponse[TodoCardResponse]{}, entity.ErrInvalidCategory
	}
	result, err := s.Cards.FindAllWithFilters(ctx, f, order, page)
	if err != nil {
		return PageResponse[TodoCardResponse]{}, err
	}
	return toPageResponse(result, toTodoCardResponse), nil
}

// GetTodoCardByID returns the card with its comments, oldest comment first. User
// summaries on a cached detail are reloaded on every read, so a rename shows at once.
func (s *TodoService) GetTodoCardByID(ctx context.Context, id int64) (*TodoCardResponseWithComments, error) {
	if v, ok := s.cachedDetail(ctx, id); ok {
		return v, nil
	}

	var (
		gen       int64
		cacheable = s.Cache != nil
	)
	if cacheable {
		var err error
		if gen, err = s.Cache.Generation(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("todo_card_id", id).Warn("todo card cache generation read failed")
			cacheable = false
		}
	}

	card, err := s.Cards.GetByID(ctx, id)
	if err != nil {
		return nil, todoCardNotFound(id, err)
	}
	comments, err := s.Comments.FindAllByTodoCardID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTodoCardResponseWithComments(card, comments)

	if cacheable {
		if err := s.Cache.SetDetail(ctx, id, gen, resp); err != nil {
			s.Logger.WithError(err).WithField("todo_card_id", id).Warn("todo card cache write failed")
		}
	}
	return resp, nil
}

// cachedDetail returns the cached detail with fresh user summaries. Any failure falls
// back to the database path.
func (s *TodoService) cachedDetail(ctx context.Context, id int64) (*TodoCardResponseWithComments, bool) {
	if s.Cache == nil {
		return nil, false
	}
	v, ok, err := s.Cache.GetDetail(ctx, id)
	if err != nil {
		s.Logger.WithError(err).WithField("todo_card_id", id).Warn("todo card cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	users := map[int64]UserResponse{}
	lookup := func(userID int64) (UserResponse, error) {
		if u, ok := users[userID]; ok {
			return u, nil
		}
		u, err := s.Users.GetByID(ctx, userID)
		if err != nil {
			return UserResponse{}, err
		}
		users[userID] = toUserResponse(u)
		return users[userID], nil
	}

	owner, err := lookup(v.User.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("todo_card_id", id).Warn("todo card cache user reload failed")
		return nil, false
	}
	v.User = owner
	for i := range v.Comments {
		author, err := lookup(v.Comments[i].User.ID)
		if err != nil {
			s.Logger.WithError(err).WithField("todo_card_id", id).Warn("todo card cache user reload failed")
			return nil, false
		}
		v.Comments[i].User = author
	}
	return v, true
}

// SearchTodoCards runs a full-text query against the search index.
func (s *TodoService) SearchTodoCards(ctx context.Context, q string, size int) ([]TodoCardResponse, error) {
	out := []TodoCardResponse{}
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return out, nil
	}
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		card, err := s.Cards.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			// index lags behind a delete
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, toTodoCardResponse(card))
	}
	return out, nil
}

func (s *TodoService) CreateTodoCard(ctx context.Context, req CreateTodoCardRequest) (*TodoCardResponse, error) {
	category := req.Category
	if category == "" {
		category = entity.CategoryOther
	}
	if !category.Valid() {
		return nil, entity.ErrInvalidCategory
	}

	var card *entity.TodoCard
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.Users.GetByID(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return &NotFoundError{Model: "User", ID: req.UserID}
			}
			return err
		}
		card = &entity.TodoCard{
			Title:       req.Title,
			Description: req.Description,
			Category:    category,
			UserID:      user.ID,
			User:        user,
		}
		return s.Cards.Create(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	s.index(ctx, card)
	resp := toTodoCardResponse(card)
	return &resp, nil
}

// UpdateTodoCard applies a partial update. Ownership is checked before any field changes.
func (s *TodoService) UpdateTodoCard(ctx context.Context, p Principal, id int64, req UpdateTodoCardRequest) (*TodoCardResponse, error) {
	if req.Category != nil && !req.Category.Valid() {
		return nil, entity.ErrInvalidCategory
	}

	var card *entity.TodoCard
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.loadOwned(ctx, p, id)
		if err != nil {
			return err
		}
		if req.Title != nil {
			card.Title = *req.Title
		}
		if req.Description != nil {
			card.Description = *req.Description
		}
		if req.Category != nil {
			card.Category = *req.Category
		}
		if req.Completed != nil {
			card.Completed = *req.Completed
		}
		return s.Cards.Update(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.index(ctx, card)
	resp := toTodoCardResponse(card)
	return &resp, nil
}

func (s *TodoService) DeleteTodoCard(ctx context.Context, p Principal, id int64) error {
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadOwned(ctx, p, id); err != nil {
			return err
		}
		return s.Cards.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("todo_card_id", id).Warn("todo card unindex failed")
		}
	}
	return nil
}

// UploadImage stores an image for the card and records its public URL. The object is
// uploaded outside the transaction and removed again if recording it fails.
func (s *TodoService) UploadImage(ctx context.Context, p Principal, id int64, r io.Reader, filename, contentType string) (*TodoCardResponse, error) {
	if s.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	if _, err := s.loadOwned(ctx, p, id); err != nil {
		return nil, err
	}

	objectPath := path.Join("todo-cards", strconv.FormatInt(id, 10), uuid.NewString()+strings.ToLower(path.Ext(filename)))
	url, err := s.Storage.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	var card *entity.TodoCard
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.loadOwned(ctx, p, id)
		if err != nil {
			return err
		}
		card.ImageURL = url
		return s.Cards.Update(ctx, card)
	})
	if err != nil {
		if derr := s.Storage.Delete(context.WithoutCancel(ctx), objectPath); derr != nil {
			s.Logger.WithError(derr).WithField("object", objectPath).Warn("orphaned todo card image")
		}
		return nil, err
	}

	s.invalidate(ctx, id)
	resp := toTodoCardResponse(card)
	return &resp, nil
}

// loadOwned loads the card and fails with ErrUnauthorized unless p owns it.
func (s *TodoService) loadOwned(ctx context.Context, p Principal, id int64) (*entity.TodoCard, error) {
	card, err := s.Cards.GetByID(ctx, id)
	if err != nil {
		return nil, todoCardNotFound(id, err)
	}
	if !card.OwnedBy(p.UserID) {
		return nil, ErrUnauthorized
	}
	return card, nil
}

func (s *TodoService) invalidate(ctx context.Context, id int64) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, id); err != nil {
		s.Logger.WithError(err).WithField("todo_card_id", id).Warn("todo card cache invalidate failed")
	}
}

func (s *TodoService) index(ctx context.Context, card *entity.TodoCard) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, card); err != nil {
		s.Logger.WithError(err).WithField("todo_card_id", card.ID).Warn("todo card index failed")
	}
}
