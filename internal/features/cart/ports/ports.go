package ports

import (
	"context"

	"nearzy/internal/features/cart/domain"
	catalog "nearzy/internal/features/catalog/domain"
)

// CartRepository stores one cart per shopper session.
type CartRepository interface {
	// Get returns the session's cart, or an empty cart when none is stored.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// ProductLookup resolves catalog products for cart lines.
type ProductLookup interface {
	// Product returns nil, nil when id is not in the catalog.
	Product(ctx context.Context, id string) (*catalog.Product, error)
}
