package integration

import (
	"context"
	"fmt"
)

// resolution is the outcome of resolveOrCreate: the stored entity, or a freshly
// built one when IsNew
type resolution[T any] struct {
	Entity *T
	IsNew  bool
}

// resolveOrCreate looks id up once and decides between update and creation.
// find must return nil, nil when the entity does not exist.
func resolveOrCreate[T any](
	ctx context.Context,
	find func(ctx context.Context, id string) (*T, error),
	id string,
	build func() *T,
) (resolution[T], error) {
	existing, err := find(ctx, id)
	if err != nil {
		return resolution[T]{}, fmt.Errorf("failed to look up %s: %w", id, err)
	}
	if existing != nil {
		return resolution[T]{Entity: existing}, nil
	}
	return resolution[T]{Entity: build(), IsNew: true}, nil
}
