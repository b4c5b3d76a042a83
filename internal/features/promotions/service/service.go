package service

import (
	"context"
	"fmt"
	"time"

	"nearzy/internal/core/logger"
	"nearzy/internal/features/promotions/domain"
	"nearzy/internal/features/promotions/ports"

	"go.uber.org/zap"
)

// PromotionServiceImpl implements ports.PromotionService.
type PromotionServiceImpl struct {
	repo ports.PromotionRepository
	now  func() time.Time
}

// NewPromotionService creates a new PromotionServiceImpl.
func NewPromotionService(repo ports.PromotionRepository) *PromotionServiceImpl {
	return &PromotionServiceImpl{
		repo: repo,
		now:  time.Now,
	}
}

// SetPromotion validates and stores a promotion, replacing any active one.
func (s *PromotionServiceImpl) SetPromotion(ctx context.Context, title, subtitle string, kind domain.Kind, coupon string, duration int) (*domain.Promotion, error) {
	p, err := domain.NewPromotion(title, subtitle, kind, coupon, duration, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("service: failed to save promotion: %w", err)
	}

	logger.Named("promotions").Info("Promotion set",
		zap.String("kind", string(p.Kind)),
		zap.String("coupon", p.CouponCode),
		zap.Int("duration", p.Duration),
	)
	return p, nil
}

// GetPromotion returns the active promotion, or nil.
func (s *PromotionServiceImpl) GetPromotion(ctx context.Context) (*domain.Promotion, error) {
	p, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get promotion: %w", err)
	}
	return p, nil
}

// RemovePromotion deletes the active promotion.
func (s *PromotionServiceImpl) RemovePromotion(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("service: failed to remove promotion: %w", err)
	}
	return nil
}
