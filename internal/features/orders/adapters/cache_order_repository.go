package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/features/orders/domain"
)

const (
	orderKeyPrefix   = "order:id:"
	currentKeyPrefix = "order:current:"
	pendingKeyPrefix = "checkout:pending:"
)

type storedOrder struct {
	SessionID string        `json:"session_id"`
	Order     *domain.Order `json:"order"`
}

// CacheOrderRepository implements ports.OrderRepository on the session store.
type CacheOrderRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheOrderRepository creates a repository whose records expire after ttl.
func NewCacheOrderRepository(c cache.Cache, ttl time.Duration) *CacheOrderRepository {
	return &CacheOrderRepository{cache: c, ttl: ttl}
}

// Save stores the order together with its owning session.
func (r *CacheOrderRepository) Save(ctx context.Context, sessionID string, order *domain.Order) error {
	return r.put(ctx, orderKeyPrefix+order.ID, storedOrder{SessionID: sessionID, Order: order})
}

// Get loads an order by id.
func (r *CacheOrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, string, error) {
	var stored storedOrder
	found, err := r.get(ctx, orderKeyPrefix+orderID, &stored)
	if err != nil || !found {
		return nil, "", err
	}
	return stored.Order, stored.SessionID, nil
}

// SetCurrent records the session's tracked order.
func (r *CacheOrderRepository) SetCurrent(ctx context.Context, sessionID, orderID string) error {
	if err := r.cache.Set(ctx, currentKeyPrefix+sessionID, []byte(orderID), r.ttl); err != nil {
		return fmt.Errorf("failed to save current order: %w", err)
	}
	return nil
}

// Current returns the session's tracked order id.
func (r *CacheOrderRepository) Current(ctx context.Context, sessionID string) (string, error) {
	data, err := r.cache.Get(ctx, currentKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get current order: %w", err)
	}
	return string(data), nil
}

// SavePending stores the checkout awaiting payment.
func (r *CacheOrderRepository) SavePending(ctx context.Context, sessionID string, pending *domain.PendingCheckout) error {
	return r.put(ctx, pendingKeyPrefix+sessionID, pending)
}

// GetPending loads the checkout awaiting payment.
func (r *CacheOrderRepository) GetPending(ctx context.Context, sessionID string) (*domain.PendingCheckout, error) {
	var pending domain.PendingCheckout
	found, err := r.get(ctx, pendingKeyPrefix+sessionID, &pending)
	if err != nil || !found {
		return nil, err
	}
	return &pending, nil
}

// DeletePending drops the checkout awaiting payment.
func (r *CacheOrderRepository) DeletePending(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, pendingKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete pending checkout: %w", err)
	}
	return nil
}

func (r *CacheOrderRepository) put(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (r *CacheOrderRepository) get(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}
