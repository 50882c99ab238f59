// Package cache holds the Redis-backed session store and todo card cache.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-todo-cards/internal/application"
	"github.com/oksasatya/go-todo-cards/pkg/helpers"
)

const (
	keyDetail = "todo:card:"
	// generation keys outlive any detail entry they guard
	genTTL = 24 * time.Hour
)

func detailKey(id int64) string { return keyDetail + strconv.FormatInt(id, 10) }
func genKey(id int64) string    { return detailKey(id) + ":gen" }

// TodoCardCache caches card detail views (card plus comments) in Redis.
type TodoCardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTodoCardCache(rdb *redis.Client, ttl time.Duration) *TodoCardCache {
	return &TodoCardCache{rdb: rdb, ttl: ttl}
}

func (c *TodoCardCache) GetDetail(ctx context.Context, id int64) (*application.TodoCardResponseWithComments, bool, error) {
	var v application.TodoCardResponseWithComments
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, detailKey(id), &v)
	if err != nil || !ok {
		return nil, false, err
	}
	return &v, true, nil
}

func (c *TodoCardCache) Generation(ctx context.Context, id int64) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetDetail stores v only while the generation still equals gen. A concurrent
// Invalidate either bumps the generation first or aborts the watched transaction.
func (c *TodoCardCache) SetDetail(ctx context.Context, id int64, gen int64, v *application.TodoCardResponseWithComments) error {
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey(id)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return helpers.RedisSetJSON(ctx, pipe, detailKey(id), v, c.ttl)
		})
		return err
	}, genKey(id))
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *TodoCardCache) Invalidate(ctx context.Context, id int64) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(id))
		pipe.Expire(ctx, genKey(id), genTTL)
		return helpers.RedisDel(ctx, pipe, detailKey(id))
	})
	return err
}

var _ application.TodoCardCache = (*TodoCardCache)(nil)
