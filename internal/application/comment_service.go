package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-cards/internal/domain/repository"
	"github.com/oksasatya/go-todo-cards/pkg/mailer"
	mailtpl "github.com/oksasatya/go-todo-cards/pkg/mailer/templates"
)

type CommentService struct {
	Tx       repo.TxManager
	Cards    repo.TodoCardRepository
	Comments repo.CommentRepository
	Users    repo.UserRepository
	Cache    TodoCardCache
	Mail     EmailPublisher
	AppName  string
	Logger   *logrus.Logger
}

func NewCommentService(tx repo.TxManager, cards repo.TodoCardRepository, comments repo.CommentRepository, users repo.UserRepository, cache TodoCardCache, mail EmailPublisher, appName string, logger *logrus.Logger) *CommentService {
	return &CommentService{
		Tx:       tx,
		Cards:    cards,
		Comments: comments,
		Users:    users,
		Cache:    cache,
		Mail:     mail,
		AppName:  appName,
		Logger:   orDiscard(logger),
	}
}

// AddComment attaches a comment by p to an existing card. The card owner is notified
// by email unless they wrote the comment.
func (s *CommentService) AddComment(ctx context.Context, p Principal, todoCardID int64, content string) (*CommentResponse, error) {
	var (
		card    *entity.TodoCard
		comment *entity.Comment
	)
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.Cards.GetByID(ctx, todoCardID)
		if err != nil {
			return todoCardNotFound(todoCardID, err)
		}
		author, err := s.Users.GetByID(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return &NotFoundError{Model: "User", ID: p.UserID}
			}
			return err
		}
		comment = &entity.Comment{Content: content, UserID: author.ID, User: author, TodoCardID: card.ID}
		return s.Comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, todoCardID); err != nil {
			s.Logger.WithError(err).WithField("todo_card_id", todoCardID).Warn("todo card cache invalidate failed")
		}
	}
	s.notifyOwner(ctx, card, comment)

	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *CommentService) notifyOwner(ctx context.Context, card *entity.TodoCard, c *entity.Comment) {
	if s.Mail == nil || card.User == nil || card.OwnedBy(c.UserID) {
		return
	}
	job := mailer.EmailJob{
		To:       card.User.Email,
		Template: mailtpl.CommentAdded,
		Data: mailtpl.NewData(s.AppName, card.User.Nickname, card.User.Email,
			mailtpl.WithCard(card.ID, card.Title),
			mailtpl.WithComment(c.User.Nickname, c.Content),
			mailtpl.WithTime(c.CreatedAt),
		),
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("todo_card_id", card.ID).Warn("failed to publish comment notification")
	}
}
