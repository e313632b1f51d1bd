package sessioncart

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCartStore keeps one cart per buyer under cart:<user-id>. The TTL is
// refreshed on every save so active carts outlive idle ones.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) commands.CartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(userID uuid.UUID) string {
	return "cart:" + userID.String()
}

func (s *RedisCartStore) Snapshot(ctx context.Context, userID uuid.UUID) (cart.Snapshot, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.NewSnapshot(), nil
		}
		return cart.Snapshot{}, errs.Wrap(err, "failed to load cart")
	}
	return cart.Decode(data), nil
}

func (s *RedisCartStore) Save(ctx context.Context, userID uuid.UUID, snap cart.Snapshot) error {
	if snap.IsEmpty() {
		return s.Clear(ctx, userID)
	}

	data, err := snap.Encode()
	if err != nil {
		return errs.Wrap(err, "failed to encode cart")
	}
	if err := s.client.Set(ctx, cartKey(userID), data, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to save cart")
	}
	return nil
}

func (s *RedisCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return errs.Wrap(err, "failed to clear cart")
	}
	return nil
}
