package ports

import (
	"context"

	"nearzy/internal/features/promotions/domain"
)

// PromotionService defines the primary port for promotion operations.
type PromotionService interface {
	SetPromotion(ctx context.Context, title, subtitle string, kind domain.Kind, coupon string, duration int) (*domain.Promotion, error)
	GetPromotion(ctx context.Context) (*domain.Promotion, error)
	RemovePromotion(ctx context.Context) error
}

// PromotionRepository defines the secondary port for promotion storage.
// Get returns nil, nil when no promotion is active.
type PromotionRepository interface {
	Save(ctx context.Context, p *domain.Promotion) error
	Get(ctx context.Context) (*domain.Promotion, error)
	Delete(ctx context.Context) error
}
