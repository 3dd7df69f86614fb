package provider

import (
	"context"
	"sync"
)

// Synced serializes reads of S. Sources backed by a single file, such as the
// SQLite source, are not safe to read from several goroutines at once.
type Synced struct {
	S Source

	mu sync.Mutex
}

var _ Source = (*Synced)(nil)

// NewSynced wraps s.
func NewSynced(s Source) *Synced { return &Synced{S: s} }

func (s *Synced) Read(ctx context.Context) ([]Price, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.S.Read(ctx)
}
