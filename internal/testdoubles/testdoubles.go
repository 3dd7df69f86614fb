// Package testdoubles provides hand-written dummies, stubs and spies for the
// pricing collaborators. Generated mocks live in package mocks; the in-process
// fake cache is cache.Map.
//
// See http://xunitpatterns.com/Test%20Double.html for the vocabulary.
package testdoubles

import (
	"context"
	"testing"

	"avgprice/internal/average"
	"avgprice/internal/cache"
	"avgprice/internal/provider"
)

// DummyCache satisfies cache.Store for code paths that must never touch the cache.
// Any call fails the test.
type DummyCache struct {
	T testing.TB
}

var _ cache.Store = DummyCache{}

func (d DummyCache) Set(context.Context, string, float64) error {
	d.T.Helper()
	d.T.Fatalf("dummy cache: Set called")
	return nil
}

func (d DummyCache) Get(context.Context, string) (float64, bool, error) {
	d.T.Helper()
	d.T.Fatalf("dummy cache: Get called")
	return 0, false, nil
}

func (d DummyCache) Contains(context.Context, string) (bool, error) {
	d.T.Helper()
	d.T.Fatalf("dummy cache: Contains called")
	return false, nil
}

// StubSource returns canned prices or a canned error.
type StubSource struct {
	Prices []provider.Price
	Err    error
}

var _ provider.Source = StubSource{}

func (s StubSource) Read(context.Context) ([]provider.Price, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]provider.Price(nil), s.Prices...), nil
}

// SpySource counts reads while delegating to the wrapped source.
type SpySource struct {
	Next  provider.Source
	reads int
}

var _ provider.Source = (*SpySource)(nil)

func (s *SpySource) Read(ctx context.Context) ([]provider.Price, error) {
	s.reads++
	return s.Next.Read(ctx)
}

// Reads returns how many times Read was called.
func (s *SpySource) Reads() int { return s.reads }

// SpyAverager records every call and delegates to Next.
type SpyAverager struct {
	Next  average.Averager
	calls [][]provider.Price
}

var _ average.Averager = (*SpyAverager)(nil)

// NewSpyAverager wraps next.
func NewSpyAverager(next average.Averager) *SpyAverager {
	return &SpyAverager{Next: next}
}

// NewStubbedSpyAverager records calls and always returns value.
func NewStubbedSpyAverager(value float64) *SpyAverager {
	return NewSpyAverager(average.Func(func([]provider.Price) (float64, error) { return value, nil }))
}

func (s *SpyAverager) Average(prices []provider.Price) (float64, error) {
	s.calls = append(s.calls, append([]provider.Price(nil), prices...))
	return s.Next.Average(prices)
}

// Calls returns the number of recorded calls.
func (s *SpyAverager) Calls() int { return len(s.calls) }

// Called reports whether Average was invoked at least once.
func (s *SpyAverager) Called() bool { return len(s.calls) > 0 }

// Args returns the prices passed to the i-th call.
func (s *SpyAverager) Args(i int) []provider.Price { return s.calls[i] }
