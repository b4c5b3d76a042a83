package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nearzy/internal/core/cache"
	"nearzy/internal/features/promotions/domain"
)

const promotionCacheKey = "storefront_promotion"

// CachePromotionRepository implements ports.PromotionRepository on the session store.
type CachePromotionRepository struct {
	cache cache.Cache
}

// NewCachePromotionRepository creates a new CachePromotionRepository.
func NewCachePromotionRepository(c cache.Cache) *CachePromotionRepository {
	return &CachePromotionRepository{cache: c}
}

// Save stores the promotion, expiring it after its duration.
func (r *CachePromotionRepository) Save(ctx context.Context, p *domain.Promotion) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal promotion: %w", err)
	}

	if err := r.cache.Set(ctx, promotionCacheKey, data, p.TTL()); err != nil {
		return fmt.Errorf("failed to save promotion to cache: %w", err)
	}
	return nil
}

// Get retrieves the active promotion, or nil when there is none.
func (r *CachePromotionRepository) Get(ctx context.Context) (*domain.Promotion, error) {
	data, err := r.cache.Get(ctx, promotionCacheKey)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get promotion from cache: %w", err)
	}

	var p domain.Promotion
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal promotion: %w", err)
	}
	return &p, nil
}

// Delete removes the promotion.
func (r *CachePromotionRepository) Delete(ctx context.Context) error {
	if err := r.cache.Delete(ctx, promotionCacheKey); err != nil {
		return fmt.Errorf("failed to delete promotion from cache: %w", err)
	}
	return nil
}
