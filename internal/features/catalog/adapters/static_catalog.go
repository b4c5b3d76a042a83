package adapters

import (
	"context"
	_ "embed"
	"fmt"

	"nearzy/internal/features/catalog/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var seedCatalog []byte

type catalogDocument struct {
	Products   []domain.Product  `yaml:"products"`
	Categories []domain.Category `yaml:"categories"`
	Stores     []domain.Store    `yaml:"stores"`
}

// StaticCatalog implements ports.CatalogSource over data decoded once at start.
type StaticCatalog struct {
	doc catalogDocument
}

// NewStaticCatalog decodes the embedded sample catalog.
func NewStaticCatalog() (*StaticCatalog, error) {
	return ParseCatalog(seedCatalog)
}

// ParseCatalog decodes a catalog YAML document and checks product ids are unique.
func ParseCatalog(data []byte) (*StaticCatalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Products))
	for _, p := range doc.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog product %q has no id", p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog product id: %s", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog product %s has negative price", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return &StaticCatalog{doc: doc}, nil
}

// Products returns the product list.
func (s *StaticCatalog) Products(context.Context) ([]domain.Product, error) {
	return s.doc.Products, nil
}

// Categories returns the category list.
func (s *StaticCatalog) Categories(context.Context) ([]domain.Category, error) {
	return s.doc.Categories, nil
}

// Stores returns the partner store list.
func (s *StaticCatalog) Stores(context.Context) ([]domain.Store, error) {
	return s.doc.Stores, nil
}
