package domain

// AllCategories selects every category in product listings.
const AllCategories = "all"

// Product is immutable reference data for one sellable item.
type Product struct {
	// ID is the catalog identity of the product.
	ID string `json:"id" yaml:"id"`
	// Name is the display name.
	Name string `json:"name" yaml:"name"`
	// Brand is the manufacturer's brand.
	Brand string `json:"brand" yaml:"brand"`
	// Price is the unit price in whole rupees.
	Price int `json:"price" yaml:"price"`
	// Image is a URL to the product picture.
	Image string `json:"image" yaml:"image"`
	// Category is the id of the category the product belongs to.
	Category string `json:"category" yaml:"category"`
	// ETA is the display estimate for fulfilling this product (e.g. "15 mins").
	ETA string `json:"eta" yaml:"eta"`
	// InStock reports whether the product can be added to a cart.
	InStock bool `json:"in_stock" yaml:"in_stock"`
}

// Category groups products on the browse screens.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

// Store is a partner shop shown on the home screen.
type Store struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	ETA    string  `json:"eta" yaml:"eta"`
	Image  string  `json:"image" yaml:"image"`
	Rating float64 `json:"rating" yaml:"rating"`
}
