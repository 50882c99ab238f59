package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-todo-cards/internal/application"
)

func sessionKey(userID int64) string { return "user:session:" + strconv.FormatInt(userID, 10) }

// SessionStore keeps one session hash per user. Signing in again replaces the sid,
// which invalidates tokens issued earlier.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, sess application.Session, ttl time.Duration) error {
	key := sessionKey(sess.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    sess.UserID,
		"email":      sess.Email,
		"nickname":   sess.Nickname,
		"sid":        sess.SessionID,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID int64) (application.Session, bool, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return application.Session{}, false, err
	}
	if len(data) == 0 {
		return application.Session{}, false, nil
	}
	return application.Session{
		UserID:    userID,
		Email:     data["email"],
		Nickname:  data["nickname"],
		SessionID: data["sid"],
	}, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID int64) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}

var _ application.SessionStore = (*SessionStore)(nil)
