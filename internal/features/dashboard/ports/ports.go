package ports

import (
	"context"

	catalog "nearzy/internal/features/catalog/domain"
	"nearzy/internal/features/dashboard/domain"
)

// DashboardSource provides the dashboard reference data.
type DashboardSource interface {
	Admin(ctx context.Context) (*domain.AdminData, error)
	Shopkeeper(ctx context.Context) (*domain.ShopkeeperData, error)
}

// ProductLister lists the storefront catalog for the admin products tab.
type ProductLister interface {
	List(ctx context.Context, filter catalog.Filter) ([]catalog.Product, error)
}
