package kvstore

import (
	"context"
	"errors"

	"github.com/lyvest/lyvest-backend/pkg/redis"
)

// Redis adapts the shared redis client to the slot backend surface.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.client.SlotKey(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(val), true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.client.SlotKey(key), string(value), 0)
}

func (r *Redis) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.SlotKey(key))
}
