package ports

import (
	"context"
	"time"

	cart "nearzy/internal/features/cart/domain"
	"nearzy/internal/features/orders/domain"
)

// OrderRepository stores placed orders and the per-session checkout state.
type OrderRepository interface {
	// Save stores order as owned by sessionID.
	Save(ctx context.Context, sessionID string, order *domain.Order) error
	// Get returns the order and its owning session, or a nil order when unknown.
	Get(ctx context.Context, orderID string) (*domain.Order, string, error)

	// SetCurrent marks orderID as the session's order being tracked.
	SetCurrent(ctx context.Context, sessionID, orderID string) error
	// Current returns the session's current order id, or "" when there is none.
	Current(ctx context.Context, sessionID string) (string, error)

	SavePending(ctx context.Context, sessionID string, pending *domain.PendingCheckout) error
	// GetPending returns nil when no online payment is awaited.
	GetPending(ctx context.Context, sessionID string) (*domain.PendingCheckout, error)
	DeletePending(ctx context.Context, sessionID string) error
}

// CartCheckout is the part of the cart the order lifecycle consumes.
type CartCheckout interface {
	// Peek returns the cart without changing it.
	Peek(ctx context.Context, sessionID string) (cart.Snapshot, error)
	// Checkout runs place with the frozen cart and clears the cart when place succeeds.
	Checkout(ctx context.Context, sessionID string, place func(cart.Snapshot) error) error
}

// PaymentGateway charges online payments.
type PaymentGateway interface {
	// Charge returns a payment reference.
	Charge(ctx context.Context, charge domain.Charge) (string, error)
}

// Scheduler runs recurring jobs.
type Scheduler interface {
	// Every calls fn each interval until cancel is called. Calls to fn never overlap.
	Every(interval time.Duration, fn func()) (cancel func())
}
