package cache

import (
	"context"
	"time"
)

// NullCache stores no artifacts. It backs --no-cache and is what a Runner
// falls back to when given no cache, so every run places and renders its
// plan afresh.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get reports a miss for every plan or artifact key.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the rendered artifact.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Delete is a no-op.
func (*NullCache) Delete(context.Context, string) error {
	return nil
}

// Close is a no-op.
func (*NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
