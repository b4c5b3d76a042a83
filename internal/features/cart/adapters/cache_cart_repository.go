package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/features/cart/domain"
)

const cartKeyPrefix = "cart:"

// CacheCartRepository implements ports.CartRepository on the session store.
type CacheCartRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheCartRepository creates a repository whose carts expire after ttl of inactivity.
func NewCacheCartRepository(c cache.Cache, ttl time.Duration) *CacheCartRepository {
	return &CacheCartRepository{cache: c, ttl: ttl}
}

// Get loads the session's cart.
func (r *CacheCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.cache.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return domain.NewCart(), nil
		}
		return nil, fmt.Errorf("failed to get cart from cache: %w", err)
	}

	cart := domain.NewCart()
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = make(map[string]domain.Line)
	}
	return cart, nil
}

// Save stores the cart and refreshes its TTL.
func (r *CacheCartRepository) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.cache.Set(ctx, cartKeyPrefix+sessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save cart to cache: %w", err)
	}
	return nil
}

// Delete drops the session's cart.
func (r *CacheCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cartKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete cart from cache: %w", err)
	}
	return nil
}
