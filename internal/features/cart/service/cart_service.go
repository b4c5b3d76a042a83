package service

import (
	"context"
	"errors"
	"fmt"

	"nearzy/internal/core/keylock"
	"nearzy/internal/core/logger"
	"nearzy/internal/core/money"
	"nearzy/internal/features/cart/domain"
	"nearzy/internal/features/cart/ports"
	catalog "nearzy/internal/features/catalog/domain"

	"go.uber.org/zap"
)

var (
	// ErrProductNotFound is returned when a cart change names a product outside the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrOutOfStock is returned when a positive quantity is set for an unavailable product.
	ErrOutOfStock = domain.ErrOutOfStock
	// ErrEmptyCart is returned when checking out a cart with no lines.
	ErrEmptyCart = domain.ErrEmptyCart
)

// Summary is the cart as presented to the shopper.
type Summary struct {
	domain.Snapshot
	// FreeDeliveryHint tells the shopper how much more to add for free delivery.
	FreeDeliveryHint string `json:"free_delivery_hint,omitempty"`
	// TotalLabel is the locale formatted total.
	TotalLabel string `json:"total_label"`
}

// CouponResult reports whether a coupon code was recognised.
type CouponResult struct {
	Applied bool    `json:"applied"`
	Cart    Summary `json:"cart"`
}

// CartService owns the per-session cart. Mutations for one session are
// applied one at a time.
type CartService struct {
	repo     ports.CartRepository
	products ports.ProductLookup
	locks    *keylock.Locker
	money    *money.Formatter
}

// NewCartService creates a new CartService.
func NewCartService(repo ports.CartRepository, products ports.ProductLookup, formatter *money.Formatter) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		locks:    keylock.New(),
		money:    formatter,
	}
}

// Get returns the session's cart summary.
func (s *CartService) Get(ctx context.Context, sessionID string) (Summary, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return s.summarize(cart), nil
}

// SetQuantity sets the quantity of one product. Zero or less removes it.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (Summary, error) {
	var product *catalog.Product
	if quantity > 0 {
		p, err := s.products.Product(ctx, productID)
		if err != nil {
			return Summary{}, fmt.Errorf("service: failed to look up product: %w", err)
		}
		if p == nil {
			return Summary{}, ErrProductNotFound
		}
		product = p
	}

	var out Summary
	err := s.mutate(ctx, sessionID, func(cart *domain.Cart) (bool, error) {
		if product == nil {
			if cart.Quantity(productID) == 0 {
				return false, nil
			}
			_ = cart.SetQuantity(catalog.Product{ID: productID}, 0)
			return true, nil
		}
		if err := cart.SetQuantity(*product, quantity); err != nil {
			return false, err
		}
		return true, nil
	}, &out)
	if err != nil {
		return Summary{}, err
	}

	logger.Named("cart").Debug("Cart quantity set",
		zap.String("session_id", sessionID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return out, nil
}

// Remove drops a product from the cart.
func (s *CartService) Remove(ctx context.Context, sessionID, productID string) (Summary, error) {
	return s.SetQuantity(ctx, sessionID, productID, 0)
}

// ApplyCoupon applies code when it is recognised. An unknown code leaves the
// cart unchanged and reports Applied false.
func (s *CartService) ApplyCoupon(ctx context.Context, sessionID, code string) (CouponResult, error) {
	var (
		out     Summary
		applied bool
	)
	err := s.mutate(ctx, sessionID, func(cart *domain.Cart) (bool, error) {
		applied = cart.ApplyCoupon(code)
		return applied, nil
	}, &out)
	if err != nil {
		return CouponResult{}, err
	}
	return CouponResult{Applied: applied, Cart: out}, nil
}

// RemoveCoupon clears the active coupon.
func (s *CartService) RemoveCoupon(ctx context.Context, sessionID string) (Summary, error) {
	var out Summary
	err := s.mutate(ctx, sessionID, func(cart *domain.Cart) (bool, error) {
		if cart.CouponCode == "" {
			return false, nil
		}
		cart.RemoveCoupon()
		return true, nil
	}, &out)
	return out, err
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}

// Checkout freezes the cart and hands the snapshot to place. The cart is
// cleared only when place succeeds; no other change to the session's cart
// can interleave.
func (s *CartService) Checkout(ctx context.Context, sessionID string, place func(domain.Snapshot) error) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("service: failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return ErrEmptyCart
	}

	if err := place(cart.Snapshot()); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}

// Peek returns the cart snapshot without taking the session lock.
func (s *CartService) Peek(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return cart.Snapshot(), nil
}

// ItemCount returns the number of units in the session's cart.
func (s *CartService) ItemCount(ctx context.Context, sessionID string) (int, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return cart.ItemCount(), nil
}

// mutate runs change under the session lock and saves the cart when change
// reports a modification.
func (s *CartService) mutate(ctx context.Context, sessionID string, change func(*domain.Cart) (bool, error), out *Summary) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("service: failed to load cart: %w", err)
	}

	changed, err := change(cart)
	if err != nil {
		return err
	}
	if changed {
		if err := s.repo.Save(ctx, sessionID, cart); err != nil {
			return fmt.Errorf("service: failed to save cart: %w", err)
		}
	}

	*out = s.summarize(cart)
	return nil
}

func (s *CartService) summarize(cart *domain.Cart) Summary {
	summary := Summary{
		Snapshot:   cart.Snapshot(),
		TotalLabel: s.money.Format(cart.Total()),
	}
	if short := cart.FreeDeliveryShortfall(); short > 0 && !cart.IsEmpty() {
		summary.FreeDeliveryHint = s.money.Sprintf("Add %s more for free delivery", s.money.Format(short))
	}
	return summary
}
