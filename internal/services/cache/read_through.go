package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ReadThrough caches JSON documents in redis under the keys the invalidators target
type ReadThrough struct {
	client redis.UniversalClient
	keys   Keys
	ttl    time.Duration
}

func NewReadThrough(client redis.UniversalClient, prefix string, ttl time.Duration) *ReadThrough {
	return &ReadThrough{client: client, keys: Keys{Prefix: prefix}, ttl: ttl}
}

// Fetch returns the cached value of name[key] or loads, stores and returns it.
// Redis failures degrade to a direct load.
func Fetch[T any](ctx context.Context, rt *ReadThrough, name Name, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if rt == nil || rt.client == nil {
		return load(ctx)
	}

	redisKey := rt.keys.Key(name, key)
	raw, err := rt.client.Get(ctx, redisKey).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		logrus.WithField("key", redisKey).Warn("Dropping unreadable cache entry")
	case !errors.Is(err, redis.Nil):
		logrus.WithError(err).WithField("key", redisKey).Warn("Cache read failed")
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", redisKey).Warn("Cache encode failed")
		return value, nil
	}
	if err := rt.client.Set(ctx, redisKey, payload, rt.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", redisKey).Warn("Cache write failed")
	}
	return value, nil
}
