package ports

import (
	"context"

	"nearzy/internal/features/catalog/domain"
)

// CatalogSource is the read-only reference data port. Implementations load
// their data once; callers must not mutate returned slices.
type CatalogSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Stores(ctx context.Context) ([]domain.Store, error)
}
