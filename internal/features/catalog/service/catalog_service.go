package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"nearzy/internal/features/catalog/domain"
	"nearzy/internal/features/catalog/ports"
)

var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidSort is returned for an unknown sort order.
	ErrInvalidSort = errors.New("invalid sort order")
)

// CatalogService answers browse and lookup queries over the reference data.
type CatalogService struct {
	source ports.CatalogSource
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(source ports.CatalogSource) *CatalogService {
	return &CatalogService{source: source}
}

// List returns the products matching filter.
func (s *CatalogService) List(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	if !filter.Sort.Valid() {
		return nil, ErrInvalidSort
	}

	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load products: %w", err)
	}

	return filter.Apply(products), nil
}

// Get returns a single product by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load products: %w", err)
	}

	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Brands returns the sorted set of brands in the catalog.
func (s *CatalogService) Brands(ctx context.Context) ([]string, error) {
	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load products: %w", err)
	}

	set := make(map[string]struct{})
	for _, p := range products {
		set[p.Brand] = struct{}{}
	}

	brands := make([]string, 0, len(set))
	for b := range set {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands, nil
}

// Categories returns all categories.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load categories: %w", err)
	}
	return categories, nil
}

// Stores returns all partner stores.
func (s *CatalogService) Stores(ctx context.Context) ([]domain.Store, error) {
	stores, err := s.source.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load stores: %w", err)
	}
	return stores, nil
}

// CategoryName returns the heading for a listing of category id.
func (s *CatalogService) CategoryName(ctx context.Context, id string) (string, error) {
	if id == "" || id == domain.AllCategories {
		return "All Products", nil
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Name, nil
		}
	}
	return "Products", nil
}
