package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/usecase"
)

// RedisCartStore holds in-progress carts between requests of one POS
// session. Carts expire with the session TTL; checkout deletes them.
type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{rdb: rdb, ttl: ttl}
}

func cartKey(cartID string) string { return "cart:sess:" + cartID }

func (s *RedisCartStore) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	raw, err := s.rdb.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(cart.ID), raw, s.ttl).Err()
}

func (s *RedisCartStore) Delete(ctx context.Context, cartID string) error {
	return s.rdb.Del(ctx, cartKey(cartID)).Err()
}

var _ usecase.CartStore = (*RedisCartStore)(nil)
