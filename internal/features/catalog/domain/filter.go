package domain

import (
	"sort"
	"strings"
)

// SortOrder is the ordering applied to a product listing.
type SortOrder string

const (
	// SortRelevance keeps catalog order.
	SortRelevance SortOrder = "relevance"
	// SortPriceLow orders by ascending price.
	SortPriceLow SortOrder = "price-low"
	// SortPriceHigh orders by descending price.
	SortPriceHigh SortOrder = "price-high"
	// SortName orders alphabetically by name.
	SortName SortOrder = "name"
)

// Default price bounds of the browse screen's range slider.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 500
)

// Valid reports whether s is a known sort order. Empty means relevance.
func (s SortOrder) Valid() bool {
	switch s {
	case "", SortRelevance, SortPriceLow, SortPriceHigh, SortName:
		return true
	}
	return false
}

// Filter narrows a product listing.
type Filter struct {
	// Category is a category id; empty or AllCategories matches everything.
	Category string
	// Search matches name or brand, case-insensitively.
	Search string
	// Brands restricts to the given brands when non-empty.
	Brands []string
	// MinPrice and MaxPrice bound the price inclusively. Nil uses the defaults.
	MinPrice *int
	MaxPrice *int
	// Sort orders the result.
	Sort SortOrder
}

// Apply returns the products matching f, in the requested order. The input
// slice is never reordered.
func (f Filter) Apply(products []Product) []Product {
	minPrice, maxPrice := DefaultMinPrice, DefaultMaxPrice
	if f.MinPrice != nil {
		minPrice = *f.MinPrice
	}
	if f.MaxPrice != nil {
		maxPrice = *f.MaxPrice
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	brands := make(map[string]struct{}, len(f.Brands))
	for _, b := range f.Brands {
		brands[b] = struct{}{}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) {
			continue
		}
		if len(brands) > 0 {
			if _, ok := brands[p.Brand]; !ok {
				continue
			}
		}
		if p.Price < minPrice || p.Price > maxPrice {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}

	return out
}
