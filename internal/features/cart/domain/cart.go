package domain

import (
	"errors"
	"sort"

	catalog "nearzy/internal/features/catalog/domain"
)

var (
	// ErrOutOfStock is returned when a positive quantity is set for a product that is not in stock.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrEmptyCart is returned when checking out a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// Line is one product and its requested quantity. Product attributes are
// copied at the time the quantity was last set.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Amount is price × quantity.
func (l Line) Amount() int {
	return l.Price * l.Quantity
}

// Cart maps product ids to lines and holds at most one coupon.
// Every stored line has Quantity > 0.
type Cart struct {
	Items      map[string]Line `json:"items"`
	CouponCode string          `json:"coupon_code,omitempty"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: make(map[string]Line)}
}

// SetQuantity upserts product with quantity, or removes it when quantity <= 0.
func (c *Cart) SetQuantity(product catalog.Product, quantity int) error {
	if c.Items == nil {
		c.Items = make(map[string]Line)
	}
	if quantity <= 0 {
		delete(c.Items, product.ID)
		return nil
	}
	if !product.InStock {
		return ErrOutOfStock
	}
	c.Items[product.ID] = Line{Product: product, Quantity: quantity}
	return nil
}

// Quantity returns the quantity for productID, 0 when absent.
func (c *Cart) Quantity(productID string) int {
	return c.Items[productID].Quantity
}

// ItemCount is the total number of units across lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Lines returns the lines ordered by product id.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.Items))
	for _, l := range c.Items {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}

// Subtotal is the sum of price × quantity over all lines.
func (c *Cart) Subtotal() int {
	total := 0
	for _, l := range c.Items {
		total += l.Amount()
	}
	return total
}

// ApplyCoupon activates a recognised coupon, replacing any active one.
// Unrecognised codes leave the cart unchanged and report false.
func (c *Cart) ApplyCoupon(code string) bool {
	coupon, ok := LookupCoupon(code)
	if !ok {
		return false
	}
	c.CouponCode = coupon.Code
	return true
}

// RemoveCoupon clears the active coupon.
func (c *Cart) RemoveCoupon() {
	c.CouponCode = ""
}

// Coupon returns the active coupon.
func (c *Cart) Coupon() (Coupon, bool) {
	if c.CouponCode == "" {
		return Coupon{}, false
	}
	return LookupCoupon(c.CouponCode)
}

// Discount is the active coupon's discount on the current subtotal.
func (c *Cart) Discount() int {
	coupon, ok := c.Coupon()
	if !ok {
		return 0
	}
	return coupon.DiscountOn(c.Subtotal())
}

// DeliveryFee is the fee for the current subtotal.
func (c *Cart) DeliveryFee() int {
	return DeliveryFee(c.Subtotal())
}

// Total is subtotal − discount + delivery fee. It is never below the delivery fee.
func (c *Cart) Total() int {
	subtotal := c.Subtotal()
	discount := c.Discount()
	if discount > subtotal {
		discount = subtotal
	}
	return subtotal - discount + DeliveryFee(subtotal)
}

// FreeDeliveryShortfall is how much more must be added to reach free
// delivery, or 0 when delivery is already free.
func (c *Cart) FreeDeliveryShortfall() int {
	subtotal := c.Subtotal()
	if subtotal > FreeDeliveryAbove {
		return 0
	}
	return FreeDeliveryAbove + 1 - subtotal
}

// Clear removes every line and the coupon.
func (c *Cart) Clear() {
	c.Items = make(map[string]Line)
	c.CouponCode = ""
}

// Snapshot is the frozen content and pricing of a cart at one moment.
type Snapshot struct {
	Lines       []Line `json:"lines"`
	ItemCount   int    `json:"item_count"`
	Subtotal    int    `json:"subtotal"`
	CouponCode  string `json:"coupon_code,omitempty"`
	Discount    int    `json:"discount"`
	DeliveryFee int    `json:"delivery_fee"`
	Total       int    `json:"total"`
}

// Snapshot freezes the cart's lines and computed figures.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Lines:       c.Lines(),
		ItemCount:   c.ItemCount(),
		Subtotal:    c.Subtotal(),
		CouponCode:  c.CouponCode,
		Discount:    c.Discount(),
		DeliveryFee: c.DeliveryFee(),
		Total:       c.Total(),
	}
}
