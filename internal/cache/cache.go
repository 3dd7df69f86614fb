package cache

import (
	"context"
	"sync"
)

// Store is a mutable key-value surface computed results are recorded in.
// Writes overwrite; entries never expire.
//
//go:generate mockgen -source=cache.go -destination=../mocks/cache_mock.go -package=mocks
type Store interface {
	Set(ctx context.Context, key string, value float64) error
	Get(ctx context.Context, key string) (value float64, found bool, err error)
	Contains(ctx context.Context, key string) (bool, error)
}

// Map is an in-process Store. It does no locking; wrap it in Synced when
// it is shared between goroutines. A nil Map panics on Set, use NewMap or Map{}.
type Map map[string]float64

var _ Store = Map(nil)

// NewMap returns an empty Map.
func NewMap() Map { return Map{} }

func (m Map) Set(_ context.Context, key string, value float64) error {
	m[key] = value
	return nil
}

func (m Map) Get(_ context.Context, key string) (float64, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m Map) Contains(_ context.Context, key string) (bool, error) {
	_, ok := m[key]
	return ok, nil
}

// Synced serializes access to an underlying Store.
type Synced struct {
	S Store

	mu sync.RWMutex
}

var _ Store = (*Synced)(nil)

// NewSynced wraps s.
func NewSynced(s Store) *Synced { return &Synced{S: s} }

func (c *Synced) Set(ctx context.Context, key string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.S.Set(ctx, key, value)
}

func (c *Synced) Get(ctx context.Context, key string) (float64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.S.Get(ctx, key)
}

func (c *Synced) Contains(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.S.Contains(ctx, key)
}
