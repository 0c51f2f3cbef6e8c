package cache

import (
	"context"
	"errors"
	"time"

	lowimpl "github.com/redis/go-redis/v9"
)

// Redis stores entries in a Redis database.
type Redis struct {
	internal *lowimpl.Client
}

var _ Store = (*Redis)(nil)

func NewRedis(addr, password string, db int) *Redis {
	return &Redis{internal: lowimpl.NewClient(&lowimpl.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Ping checks that the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.internal.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.internal.Get(ctx, key).Bytes()
	if errors.Is(err, lowimpl.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.internal.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Close() error {
	if r.internal == nil {
		return nil
	}
	return r.internal.Close()
}
