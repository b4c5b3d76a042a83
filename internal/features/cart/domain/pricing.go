package domain

import "strings"

// Delivery pricing, in whole rupees.
const (
	// FreeDeliveryAbove is the subtotal that must be exceeded for free delivery.
	FreeDeliveryAbove = 200
	// FlatDeliveryFee is charged when the subtotal does not exceed FreeDeliveryAbove.
	FlatDeliveryFee = 20
)

// DeliveryFee returns the fee for a subtotal: 0 above the threshold, flat otherwise.
func DeliveryFee(subtotal int) int {
	if subtotal > FreeDeliveryAbove {
		return 0
	}
	return FlatDeliveryFee
}

// Coupon is a percentage discount with an absolute cap.
type Coupon struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
	Cap     int    `json:"cap"`
}

var coupons = map[string]Coupon{
	"WELCOME10": {Code: "WELCOME10", Percent: 10, Cap: 50},
	"SAVE20":    {Code: "SAVE20", Percent: 20, Cap: 100},
}

// LookupCoupon finds a recognised coupon, ignoring case and surrounding space.
func LookupCoupon(code string) (Coupon, bool) {
	c, ok := coupons[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// DiscountOn returns the discount for subtotal, rounded down to whole rupees.
// The result is never above the cap nor above the subtotal.
func (c Coupon) DiscountOn(subtotal int) int {
	if subtotal <= 0 {
		return 0
	}
	d := subtotal * c.Percent / 100
	if d > c.Cap {
		d = c.Cap
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
