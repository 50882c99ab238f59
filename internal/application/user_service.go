package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-cards/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-cards/internal/domain/repository"
	"github.com/oksasatya/go-todo-cards/pkg/helpers"
	"github.com/oksasatya/go-todo-cards/pkg/mailer"
	mailtpl "github.com/oksasatya/go-todo-cards/pkg/mailer/templates"
)

type UserService struct {
	Tx       repo.TxManager
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Sessions SessionStore
	Mail     EmailPublisher
	AppName  string
	Logger   *logrus.Logger
}

func NewUserService(tx repo.TxManager, users repo.UserRepository, jwt *helpers.JWTManager, sessions SessionStore, mail EmailPublisher, appName string, logger *logrus.Logger) *UserService {
	return &UserService{
		Tx:       tx,
		Users:    users,
		JWT:      jwt,
		Sessions: sessions,
		Mail:     mail,
		AppName:  appName,
		Logger:   orDiscard(logger),
	}
}

func orDiscard(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	l = logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SignIn verifies the credentials and issues an access token. An unknown email and a wrong
// password fail with the same error.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*LoginResponse, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, err
	}

	if s.Sessions != nil {
		sess := Session{UserID: u.ID, Email: u.Email, Nickname: u.Nickname, SessionID: sid}
		if err := s.Sessions.Save(ctx, sess, time.Until(exp)); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("save session failed")
			return nil, err
		}
	}
	return &LoginResponse{AccessToken: token, ExpiresAt: exp}, nil
}

// SignOut drops the server-side session so the token stops being accepted.
func (s *UserService) SignOut(ctx context.Context, p Principal) error {
	if s.Sessions == nil {
		return nil
	}
	return s.Sessions.Delete(ctx, p.UserID)
}

func (s *UserService) SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error) {
	var u *entity.User
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.Users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if exists {
			return &ConflictError{Field: "Email", Value: req.Email}
		}
		hash, err := helpers.HashPassword(req.Password)
		if err != nil {
			return err
		}
		u = &entity.User{Email: req.Email, Password: hash, Nickname: req.Nickname}
		if err := s.Users.Create(ctx, u); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return &ConflictError{Field: "Email", Value: req.Email}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewData(s.AppName, u.Nickname, u.Email, mailtpl.WithTime(u.CreatedAt)),
	})
	resp := toUserResponse(u)
	return &resp, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*UserResponse, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &NotFoundError{Model: "User", ID: userID}
		}
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// UpdateUserProfile renames a user. Only the user themself may do so.
func (s *UserService) UpdateUserProfile(ctx context.Context, p Principal, userID int64, nickname string) (*UserResponse, error) {
	var u *entity.User
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.Users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return &NotFoundError{Model: "User", ID: userID}
			}
			return err
		}
		if u.ID != p.UserID {
			return ErrUnauthorized
		}
		u.Nickname = nickname
		return s.Users.Update(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// publish enqueues an email; failures are logged and never fail the request.
func (s *UserService) publish(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil {
		return
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("failed to publish email job")
	}
}
