package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Invalidator applies invalidation events in order
type Invalidator interface {
	Apply(ctx context.Context, events []Event) error
}

// Keys builds the redis keys shared by the invalidators and the read-through cache
type Keys struct {
	Prefix string
}

// Key returns <prefix>:<cache>:<key>
func (k Keys) Key(name Name, key string) string {
	return fmt.Sprintf("%s:%s:%s", k.Prefix, name, key)
}

// Pattern matches every key of one cache
func (k Keys) Pattern(name Name) string {
	return fmt.Sprintf("%s:%s:*", k.Prefix, name)
}

// RedisInvalidator deletes the redis entries targeted by the events
type RedisInvalidator struct {
	client redis.UniversalClient
	keys   Keys
}

func NewRedisInvalidator(client redis.UniversalClient, prefix string) *RedisInvalidator {
	return &RedisInvalidator{client: client, keys: Keys{Prefix: prefix}}
}

func (r *RedisInvalidator) Apply(ctx context.Context, events []Event) error {
	for _, event := range events {
		var err error
		switch event.Op {
		case OpEvict:
			err = r.client.Del(ctx, r.keys.Key(event.Cache, event.Key)).Err()
		case OpClear:
			err = r.clear(ctx, event.Cache)
		default:
			err = fmt.Errorf("unknown cache operation %q", event.Op)
		}
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", event, err)
		}
	}
	return nil
}

func (r *RedisInvalidator) clear(ctx context.Context, name Name) error {
	iter := r.client.Scan(ctx, 0, r.keys.Pattern(name), 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Publisher is the part of the message broker the broadcaster needs
type Publisher interface {
	PublishMessage(ctx context.Context, queueName string, message interface{}) error
}

// BroadcastInvalidator forwards every event to a queue so that other instances
// holding local caches can drop them too
type BroadcastInvalidator struct {
	publisher Publisher
	queue     string
}

func NewBroadcastInvalidator(publisher Publisher, queue string) *BroadcastInvalidator {
	return &BroadcastInvalidator{publisher: publisher, queue: queue}
}

func (b *BroadcastInvalidator) Apply(ctx context.Context, events []Event) error {
	for _, event := range events {
		if err := b.publisher.PublishMessage(ctx, b.queue, event); err != nil {
			return fmt.Errorf("failed to broadcast %s: %w", event, err)
		}
	}
	return nil
}

// MultiInvalidator fans events out to several invalidators.
// A failing member is logged and does not stop the others.
type MultiInvalidator []Invalidator

func (m MultiInvalidator) Apply(ctx context.Context, events []Event) error {
	var errs []error
	for _, inv := range m {
		if inv == nil {
			continue
		}
		if err := inv.Apply(ctx, events); err != nil {
			logrus.WithError(err).Warn("Cache invalidation failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
