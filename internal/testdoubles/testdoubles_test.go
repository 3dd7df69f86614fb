package testdoubles_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"avgprice/internal/average"
	"avgprice/internal/provider"
	"avgprice/internal/testdoubles"
)

func TestStubSource(t *testing.T) {
	t.Parallel()

	canned := []provider.Price{{Value: 1}, {Value: 2}}
	stub := testdoubles.StubSource{Prices: canned}

	got, err := stub.Read(t.Context())
	require.NoError(t, err)
	require.Equal(t, canned, got)

	// Assert: callers cannot mutate the canned data
	got[0].Value = 99
	again, err := stub.Read(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1.0, again[0].Value)

	boom := errors.New("boom")
	_, err = testdoubles.StubSource{Err: boom}.Read(t.Context())
	require.ErrorIs(t, err, boom)
}

func TestSpySource_CountsReads(t *testing.T) {
	t.Parallel()

	spy := &testdoubles.SpySource{Next: testdoubles.StubSource{Prices: []provider.Price{{Value: 5}}}}
	require.Zero(t, spy.Reads())

	got, err := spy.Read(t.Context())
	require.NoError(t, err)
	require.Equal(t, []provider.Price{{Value: 5}}, got)
	require.Equal(t, 1, spy.Reads())
}

func TestSpyAverager_RecordsAndDelegates(t *testing.T) {
	t.Parallel()

	spy := testdoubles.NewSpyAverager(average.Mean)
	require.False(t, spy.Called())

	in := []provider.Price{{Value: 2}, {Value: 4}}
	got, err := spy.Average(in)
	require.NoError(t, err)
	require.Equal(t, 3.0, got)

	_, err = spy.Average(nil)
	require.ErrorIs(t, err, average.ErrEmptyInput)

	require.True(t, spy.Called())
	require.Equal(t, 2, spy.Calls())
	require.Equal(t, in, spy.Args(0))
	require.Empty(t, spy.Args(1))
}

func TestStubbedSpyAverager(t *testing.T) {
	t.Parallel()

	spy := testdoubles.NewStubbedSpyAverager(0)
	got, err := spy.Average([]provider.Price{{Value: 1000}})
	require.NoError(t, err)
	require.Zero(t, got)
	require.Equal(t, 1, spy.Calls())
}
