package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulsreq/internal/game"
	"soulsreq/internal/metrics"
)

type countingProvider struct {
	calls map[string]int
	data  map[string][]game.Raw
	err   error
}

func newCountingProvider() *countingProvider {
	return &countingProvider{
		calls: map[string]int{},
		data: map[string][]game.Raw{
			"dsr": game.ParseRaw(`[{"name":"Dagger"}]`).Array(),
			"ds3": game.ParseRaw(`[{"name":"Estoc"},{"name":"Rapier"}]`).Array(),
		},
	}
}

func (p *countingProvider) Fetch(_ context.Context, dataset string) ([]game.Raw, error) {
	p.calls[dataset]++
	if p.err != nil {
		return nil, p.err
	}
	return p.data[dataset], nil
}

func TestCachedProvider_HitsAfterFirstFetch(t *testing.T) {
	next := newCountingProvider()
	c := NewCachedProvider(next, 4, time.Minute)
	before := testutil.ToFloat64(metrics.DatasetCacheHits)

	for i := 0; i < 3; i++ {
		raws, err := c.Fetch(context.Background(), "ds3")
		require.NoError(t, err)
		assert.Len(t, raws, 2)
	}
	assert.Equal(t, 1, next.calls["ds3"])
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.DatasetCacheHits))
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	next := newCountingProvider()
	c := NewCachedProvider(next, 4, time.Minute)

	next.err = errors.New("offline")
	_, err := c.Fetch(context.Background(), "dsr")
	require.Error(t, err)

	next.err = nil
	raws, err := c.Fetch(context.Background(), "dsr")
	require.NoError(t, err)
	assert.Len(t, raws, 1)
	assert.Equal(t, 2, next.calls["dsr"])
}

func TestCachedProvider_EmptyIsNotCached(t *testing.T) {
	next := newCountingProvider()
	c := NewCachedProvider(next, 4, time.Minute)

	raws, err := c.Fetch(context.Background(), "er")
	require.NoError(t, err)
	assert.Empty(t, raws)

	next.data["er"] = game.ParseRaw(`[{"name":"Uchigatana"}]`).Array()
	raws, err = c.Fetch(context.Background(), "er")
	require.NoError(t, err)
	assert.Len(t, raws, 1)
}

func TestCachedProvider_InvalidateAndPurge(t *testing.T) {
	next := newCountingProvider()
	c := NewCachedProvider(next, 4, time.Minute)
	ctx := context.Background()

	_, _ = c.Fetch(ctx, "dsr")
	_, _ = c.Fetch(ctx, "ds3")
	c.Invalidate("dsr")
	_, _ = c.Fetch(ctx, "dsr")
	_, _ = c.Fetch(ctx, "ds3")
	assert.Equal(t, 2, next.calls["dsr"])
	assert.Equal(t, 1, next.calls["ds3"])

	c.Purge()
	_, _ = c.Fetch(ctx, "ds3")
	assert.Equal(t, 2, next.calls["ds3"])
}

func TestCachedProvider_EvictsBySize(t *testing.T) {
	next := newCountingProvider()
	c := NewCachedProvider(next, 1, 0)
	ctx := context.Background()

	_, _ = c.Fetch(ctx, "dsr")
	_, _ = c.Fetch(ctx, "ds3")
	_, _ = c.Fetch(ctx, "dsr")
	assert.Equal(t, 2, next.calls["dsr"])
}

func TestCachedProvider_WithRegistry(t *testing.T) {
	c := NewCachedProvider(&FSProvider{FS: testFS()}, 4, time.Minute)
	reg, err := game.NewRegistry(c, game.Builtin()...)
	require.NoError(t, err)

	weapons, err := reg.Load(context.Background(), "DSR")
	require.NoError(t, err)
	require.Len(t, weapons, 2)
	assert.Equal(t, 10, weapons[1].Requirements[game.Str])

	_, err = reg.Load(context.Background(), "DS2")
	assert.ErrorIs(t, err, game.ErrDataUnavailable)
}
