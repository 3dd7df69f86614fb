// Package pricing computes average prices over pluggable sources.
//
// Service takes every collaborator through its constructor so each one can be
// replaced on its own in tests: the cache store, the local and remote price
// sources, and the averaging function itself.
package pricing

import (
	"context"
	"errors"

	"avgprice/internal/average"
	"avgprice/internal/cache"
	"avgprice/internal/provider"
)

// AvgPriceKey is the cache key the last computed average is written under.
const AvgPriceKey = "avg_price"

var (
	// ErrNoSource is returned when an operation needs a price source that was not supplied.
	ErrNoSource = errors.New("pricing: no price source configured")
	// ErrNoCache is returned when an operation needs a cache store that was not supplied.
	ErrNoCache = errors.New("pricing: no cache store configured")
)

// Service orchestrates source -> averager -> optional cache write.
// It does not own its collaborators; callers create and close them.
type Service struct {
	cache    cache.Store
	local    provider.Source
	remote   provider.Source
	averager average.Averager
}

// Option configures a Service.
type Option func(*Service)

// WithAverager replaces the averaging function.
func WithAverager(a average.Averager) Option {
	return func(s *Service) {
		s.averager = a
	}
}

// New returns a Service. Any collaborator may be nil when the operations
// that use it are never called.
func New(store cache.Store, local, remote provider.Source, opts ...Option) *Service {
	s := &Service{cache: store, local: local, remote: remote, averager: average.Mean}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Average reads the local source and returns the mean price.
func (s *Service) Average(ctx context.Context) (float64, error) {
	return s.averageOf(ctx, s.local)
}

// AverageAndCache is Average followed by writing the result under AvgPriceKey.
func (s *Service) AverageAndCache(ctx context.Context) (float64, error) {
	if s.cache == nil {
		return 0, ErrNoCache
	}
	avg, err := s.averageOf(ctx, s.local)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Set(ctx, AvgPriceKey, avg); err != nil {
		return 0, err
	}
	return avg, nil
}

// AverageFromRemote reads the remote source and returns the mean price.
func (s *Service) AverageFromRemote(ctx context.Context) (float64, error) {
	return s.averageOf(ctx, s.remote)
}

func (s *Service) averageOf(ctx context.Context, src provider.Source) (float64, error) {
	if src == nil {
		return 0, ErrNoSource
	}
	prices, err := src.Read(ctx)
	if err != nil {
		return 0, err
	}
	return s.averager.Average(prices)
}

// adjust doubles even values and increments odd ones.
func (s *Service) adjust(v int) int {
	if v%2 == 0 {
		return v * 2
	}
	return v + 1
}
