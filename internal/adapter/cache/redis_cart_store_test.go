package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/usecase"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCartStoreRoundTrip(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisCartStore(rdb, time.Hour)
	ctx := context.Background()

	cart := domain.NewCart("c1")
	cart.AddLine("pA", "Cafe", decimal.NewFromInt(1000))
	cart.AddLine("pA", "Cafe", decimal.NewFromInt(1000))
	require.NoError(t, store.Save(ctx, cart))

	got, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Lines[0].Quantity)
	assert.True(t, got.Lines[0].UnitPrice.Equal(decimal.NewFromInt(1000)))
}

func TestCartStoreMissingCart(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisCartStore(rdb, time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, usecase.ErrCartNotFound)
}

func TestCartStoreDelete(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewRedisCartStore(rdb, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewCart("c1")))
	require.NoError(t, store.Delete(ctx, "c1"))

	_, err := store.Get(ctx, "c1")
	assert.ErrorIs(t, err, usecase.ErrCartNotFound)
}

func TestCartStoreSessionExpiry(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewRedisCartStore(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewCart("c1")))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "c1")
	assert.ErrorIs(t, err, usecase.ErrCartNotFound)
}
