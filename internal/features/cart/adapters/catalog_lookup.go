package adapters

import (
	"context"
	"errors"

	catalog "nearzy/internal/features/catalog/domain"
	catalogservice "nearzy/internal/features/catalog/service"
)

// CatalogLookup adapts the catalog service to ports.ProductLookup.
type CatalogLookup struct {
	catalog *catalogservice.CatalogService
}

// NewCatalogLookup creates a new CatalogLookup.
func NewCatalogLookup(s *catalogservice.CatalogService) *CatalogLookup {
	return &CatalogLookup{catalog: s}
}

// Product returns the catalog product, or nil when the id is unknown.
func (l *CatalogLookup) Product(ctx context.Context, id string) (*catalog.Product, error) {
	p, err := l.catalog.Get(ctx, id)
	if errors.Is(err, catalogservice.ErrProductNotFound) {
		return nil, nil
	}
	return p, err
}
