package domain

import (
	"errors"
	"strings"
	"time"

	cart "nearzy/internal/features/cart/domain"
)

// Kind is the presentation style of the promotion banner.
type Kind string

const (
	KindDeal  Kind = "DEAL"
	KindInfo  Kind = "INFO"
	KindAlert Kind = "ALERT"
)

var (
	ErrInvalidKind     = errors.New("invalid promotion kind")
	ErrTitleRequired   = errors.New("promotion title is required")
	ErrInvalidDuration = errors.New("promotion duration must not be negative")
	ErrUnknownCoupon   = errors.New("promotion coupon is not a recognised code")
)

// Promotion is the storefront-wide banner shown above the home screen.
type Promotion struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Kind     Kind   `json:"kind"`
	// CouponCode is a cart coupon the banner advertises, in canonical form.
	CouponCode string `json:"coupon_code,omitempty"`
	// Duration in seconds. 0 keeps the promotion until it is removed.
	Duration  int       `json:"duration,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPromotion validates the fields and builds a Promotion created at now.
func NewPromotion(title, subtitle string, kind Kind, coupon string, duration int, now time.Time) (*Promotion, error) {
	switch kind {
	case KindDeal, KindInfo, KindAlert:
	default:
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if duration < 0 {
		return nil, ErrInvalidDuration
	}

	var code string
	if strings.TrimSpace(coupon) != "" {
		c, ok := cart.LookupCoupon(coupon)
		if !ok {
			return nil, ErrUnknownCoupon
		}
		code = c.Code
	}

	return &Promotion{
		Title:      strings.TrimSpace(title),
		Subtitle:   subtitle,
		Kind:       kind,
		CouponCode: code,
		Duration:   duration,
		CreatedAt:  now,
	}, nil
}

// TTL is how long the promotion stays in the store. Zero means no expiry.
func (p *Promotion) TTL() time.Duration {
	return time.Duration(p.Duration) * time.Second
}
