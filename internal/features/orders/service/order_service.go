package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nearzy/internal/core/keylock"
	"nearzy/internal/core/logger"
	"nearzy/internal/core/telemetry"
	cart "nearzy/internal/features/cart/domain"
	"nearzy/internal/features/orders/domain"
	"nearzy/internal/features/orders/ports"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	// ErrOrderNotFound is returned when the order does not exist for the session.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoCurrentOrder is returned when the session has not placed an order.
	ErrNoCurrentOrder = errors.New("no current order")
	// ErrNoPendingCheckout is returned when paying without an online checkout in progress.
	ErrNoPendingCheckout = errors.New("no checkout awaiting payment")
	// ErrPaymentFailed wraps gateway failures.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrCheckoutStale is returned when the cart total moved away from the pending checkout amount.
	ErrCheckoutStale = errors.New("cart changed since checkout")
	// ErrEmptyCart is returned when checking out an empty cart.
	ErrEmptyCart = cart.ErrEmptyCart
)

// CheckoutResult is either a placed order (cash on delivery) or a checkout
// waiting for payment.
type CheckoutResult struct {
	Order   *domain.Order           `json:"order,omitempty"`
	Pending *domain.PendingCheckout `json:"pending,omitempty"`
}

// OrderService runs checkout, payment and status advancement.
type OrderService struct {
	repo    ports.OrderRepository
	carts   ports.CartCheckout
	gateway ports.PaymentGateway
	locks   *keylock.Locker
	now     func() time.Time
	newID   func() string
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(repo ports.OrderRepository, carts ports.CartCheckout, gateway ports.PaymentGateway) *OrderService {
	return &OrderService{
		repo:    repo,
		carts:   carts,
		gateway: gateway,
		locks:   keylock.New(),
		now:     time.Now,
		newID:   func() string { return "order_" + uuid.NewString() },
	}
}

// Checkout validates the delivery details. Cash on delivery places the order
// right away; card and UPI store a pending checkout for Pay.
func (s *OrderService) Checkout(ctx context.Context, sessionID, address string, method domain.PaymentMethod) (res CheckoutResult, err error) {
	ctx, span := telemetry.Start(ctx, "orders", "checkout", attribute.String("payment_method", string(method)))
	defer func() { telemetry.End(span, err) }()

	address, err = domain.ValidateAddress(address)
	if err != nil {
		return CheckoutResult{}, err
	}
	if !method.Valid() {
		return CheckoutResult{}, domain.ErrInvalidPaymentMethod
	}

	if method.Online() {
		snapshot, err := s.carts.Peek(ctx, sessionID)
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("service: failed to read cart: %w", err)
		}
		if len(snapshot.Lines) == 0 {
			return CheckoutResult{}, ErrEmptyCart
		}

		pending := &domain.PendingCheckout{
			Address:   address,
			Method:    method,
			Amount:    snapshot.Total,
			CreatedAt: s.now(),
		}
		if err := s.repo.SavePending(ctx, sessionID, pending); err != nil {
			return CheckoutResult{}, fmt.Errorf("service: failed to save pending checkout: %w", err)
		}
		return CheckoutResult{Pending: pending}, nil
	}

	order, err := s.place(ctx, sessionID, address, method, domain.PaymentDetails{}, nil)
	if err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{Order: order}, nil
}

// Pay completes a pending card or UPI checkout and places the order.
func (s *OrderService) Pay(ctx context.Context, sessionID string, details domain.PaymentDetails) (order *domain.Order, err error) {
	ctx, span := telemetry.Start(ctx, "orders", "pay")
	defer func() { telemetry.End(span, err) }()

	pending, err := s.repo.GetPending(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load pending checkout: %w", err)
	}
	if pending == nil {
		return nil, ErrNoPendingCheckout
	}
	span.SetAttributes(attribute.String("payment_method", string(pending.Method)))

	if err := details.Validate(pending.Method); err != nil {
		return nil, err
	}

	order, err = s.place(ctx, sessionID, pending.Address, pending.Method, details, pending)
	if errors.Is(err, ErrCheckoutStale) {
		s.dropPending(ctx, sessionID)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.dropPending(ctx, sessionID)
	return order, nil
}

func (s *OrderService) dropPending(ctx context.Context, sessionID string) {
	if err := s.repo.DeletePending(ctx, sessionID); err != nil {
		logger.Named("orders").Warn("Failed to drop pending checkout",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

// place freezes the cart into a new accepted order, charging online methods first.
// When pending is set the cart total must still equal the amount shown at checkout.
func (s *OrderService) place(ctx context.Context, sessionID, address string, method domain.PaymentMethod, details domain.PaymentDetails, pending *domain.PendingCheckout) (*domain.Order, error) {
	var order *domain.Order
	err := s.carts.Checkout(ctx, sessionID, func(snapshot cart.Snapshot) error {
		if pending != nil && snapshot.Total != pending.Amount {
			logger.Named("orders").Info("Pending checkout is stale",
				zap.String("session_id", sessionID),
				zap.Int("amount", pending.Amount),
				zap.Int("total", snapshot.Total),
			)
			return ErrCheckoutStale
		}

		receipt := details.Receipt(method)
		var ref string
		if method.Online() {
			var err error
			ref, err = s.gateway.Charge(ctx, domain.Charge{Amount: snapshot.Total, Method: method, Receipt: receipt})
			if err != nil {
				return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
			}
		}

		order = domain.NewOrder(s.newID(), snapshot, address, method, receipt, s.now())
		order.PaymentRef = ref
		if err := s.repo.Save(ctx, sessionID, order); err != nil {
			return fmt.Errorf("service: failed to save order: %w", err)
		}
		if err := s.repo.SetCurrent(ctx, sessionID, order.ID); err != nil {
			return fmt.Errorf("service: failed to set current order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Named("orders").Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("payment_method", string(method)),
		zap.Int("total", order.Cart.Total),
	)
	return order, nil
}

// Get returns an order owned by sessionID.
func (s *OrderService) Get(ctx context.Context, sessionID, orderID string) (*domain.Order, error) {
	order, owner, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load order: %w", err)
	}
	if order == nil || owner != sessionID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Current returns the session's most recently placed order.
func (s *OrderService) Current(ctx context.Context, sessionID string) (*domain.Order, error) {
	id, err := s.repo.Current(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load current order: %w", err)
	}
	if id == "" {
		return nil, ErrNoCurrentOrder
	}

	order, err := s.Get(ctx, sessionID, id)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, ErrNoCurrentOrder
	}
	return order, err
}

// Advance moves an order owned by sessionID to its next status.
func (s *OrderService) Advance(ctx context.Context, sessionID, orderID string) (*domain.Order, error) {
	if _, err := s.Get(ctx, sessionID, orderID); err != nil {
		return nil, err
	}
	return s.Handle(ctx, domain.AdvanceStatus{OrderID: orderID})
}

// Handle applies an AdvanceStatus event. Events for one order are applied
// one at a time.
func (s *OrderService) Handle(ctx context.Context, event domain.AdvanceStatus) (*domain.Order, error) {
	unlock := s.locks.Lock(event.OrderID)
	defer unlock()

	order, owner, err := s.repo.Get(ctx, event.OrderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := order.Advance(s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, owner, order); err != nil {
		return nil, fmt.Errorf("service: failed to save order: %w", err)
	}

	logger.Named("orders").Info("Order advanced",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
	)
	return order, nil
}
