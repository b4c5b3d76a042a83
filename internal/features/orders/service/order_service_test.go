package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/core/money"
	cartadapters "nearzy/internal/features/cart/adapters"
	cartservice "nearzy/internal/features/cart/service"
	catalog "nearzy/internal/features/catalog/domain"
	"nearzy/internal/features/orders/adapters"
	"nearzy/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentGateway is a mock implementation of ports.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Charge(ctx context.Context, charge domain.Charge) (string, error) {
	args := m.Called(ctx, charge)
	return args.String(0), args.Error(1)
}

type stubLookup map[string]catalog.Product

func (s stubLookup) Product(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

const address = "12 Park Street, Kolkata"

type fixture struct {
	orders  *OrderService
	carts   *cartservice.CartService
	gateway *MockPaymentGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := cache.NewMemoryAdapter()
	lookup := stubLookup{
		"1": {ID: "1", Name: "Milk", Price: 50, InStock: true},
		"2": {ID: "2", Name: "Bread", Price: 20, InStock: true},
	}
	carts := cartservice.NewCartService(
		cartadapters.NewCacheCartRepository(store, time.Hour),
		lookup,
		money.NewFormatter("en-IN"),
	)
	gateway := new(MockPaymentGateway)
	orders := NewOrderService(adapters.NewCacheOrderRepository(store, time.Hour), carts, gateway)
	orders.now = func() time.Time { return time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC) }

	return &fixture{orders: orders, carts: carts, gateway: gateway}
}

func (f *fixture) fill(t *testing.T, sessionID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.SetQuantity(ctx, sessionID, "1", 1)
	require.NoError(t, err)
	_, err = f.carts.SetQuantity(ctx, sessionID, "2", 1)
	require.NoError(t, err)
	res, err := f.carts.ApplyCoupon(ctx, sessionID, "WELCOME10")
	require.NoError(t, err)
	require.True(t, res.Applied)
}

func TestOrderService_CheckoutCOD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fill(t, "s1")

	res, err := f.orders.Checkout(ctx, "s1", "  "+address+"  ", domain.PaymentCOD)
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	assert.Nil(t, res.Pending)

	o := res.Order
	assert.Contains(t, o.ID, "order_")
	assert.Equal(t, domain.StatusAccepted, o.Status)
	assert.Equal(t, address, o.Address)
	assert.Equal(t, 70, o.Cart.Subtotal)
	assert.Equal(t, 7, o.Cart.Discount)
	assert.Equal(t, 83, o.Cart.Total)
	assert.Equal(t, "WELCOME10", o.Cart.CouponCode)

	cart, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	current, err := f.orders.Current(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, o.ID, current.ID)

	// later cart changes do not touch the placed order
	_, err = f.carts.SetQuantity(ctx, "s1", "1", 5)
	require.NoError(t, err)
	again, err := f.orders.Get(ctx, "s1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, 83, again.Cart.Total)

	f.gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

func TestOrderService_CheckoutValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orders.Checkout(ctx, "s1", address, domain.PaymentCOD)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.orders.Checkout(ctx, "s1", address, domain.PaymentUPI)
	assert.ErrorIs(t, err, ErrEmptyCart)

	f.fill(t, "s1")

	_, err = f.orders.Checkout(ctx, "s1", "short", domain.PaymentCOD)
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	_, err = f.orders.Checkout(ctx, "s1", address, "wallet")
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)

	cart, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)
}

func TestOrderService_Pay(t *testing.T) {
	ctx := context.Background()
	card := domain.PaymentDetails{CardNumber: "1234 5678 9012 3456", Expiry: "12/27", CVV: "123", CardName: "Asha Rao"}

	t.Run("NoPending", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.orders.Pay(ctx, "s1", card)
		assert.ErrorIs(t, err, ErrNoPendingCheckout)
	})

	t.Run("Card", func(t *testing.T) {
		f := newFixture(t)
		f.fill(t, "s1")

		res, err := f.orders.Checkout(ctx, "s1", address, domain.PaymentCard)
		require.NoError(t, err)
		require.NotNil(t, res.Pending)
		assert.Nil(t, res.Order)
		assert.Equal(t, 83, res.Pending.Amount)

		// the cart stays until payment completes
		cart, err := f.carts.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, cart.Lines, 2)

		_, err = f.orders.Pay(ctx, "s1", domain.PaymentDetails{CardNumber: "1234"})
		assert.ErrorIs(t, err, domain.ErrInvalidCard)

		f.gateway.On("Charge", mock.Anything, domain.Charge{Amount: 83, Method: domain.PaymentCard, Receipt: "**** **** **** 3456"}).
			Return("pay_1", nil).Once()

		order, err := f.orders.Pay(ctx, "s1", card)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, order.Status)
		assert.Equal(t, "**** **** **** 3456", order.Receipt)
		assert.Equal(t, "pay_1", order.PaymentRef)
		f.gateway.AssertExpectations(t)

		cart, err = f.carts.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, cart.Lines)

		_, err = f.orders.Pay(ctx, "s1", card)
		assert.ErrorIs(t, err, ErrNoPendingCheckout)
	})

	t.Run("GatewayFailureKeepsCart", func(t *testing.T) {
		f := newFixture(t)
		f.fill(t, "s1")

		_, err := f.orders.Checkout(ctx, "s1", address, domain.PaymentUPI)
		require.NoError(t, err)

		f.gateway.On("Charge", mock.Anything, mock.AnythingOfType("domain.Charge")).
			Return("", errors.New("timeout")).Once()

		_, err = f.orders.Pay(ctx, "s1", domain.PaymentDetails{UPIID: "asha@okaxis"})
		assert.ErrorIs(t, err, ErrPaymentFailed)

		cart, err := f.carts.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, cart.Lines, 2)

		_, err = f.orders.Current(ctx, "s1")
		assert.ErrorIs(t, err, ErrNoCurrentOrder)
	})
}

func TestOrderService_PayAfterCartChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	upi := domain.PaymentDetails{UPIID: "asha@okaxis"}
	f.fill(t, "s1")

	res, err := f.orders.Checkout(ctx, "s1", address, domain.PaymentUPI)
	require.NoError(t, err)
	require.NotNil(t, res.Pending)
	assert.Equal(t, 83, res.Pending.Amount)

	_, err = f.carts.SetQuantity(ctx, "s1", "1", 10)
	require.NoError(t, err)

	_, err = f.orders.Pay(ctx, "s1", upi)
	assert.ErrorIs(t, err, ErrCheckoutStale)
	f.gateway.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)

	cart, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 2)

	_, err = f.orders.Current(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoCurrentOrder)

	_, err = f.orders.Pay(ctx, "s1", upi)
	assert.ErrorIs(t, err, ErrNoPendingCheckout)

	// a fresh checkout quotes and charges the new total
	res, err = f.orders.Checkout(ctx, "s1", address, domain.PaymentUPI)
	require.NoError(t, err)
	amount := res.Pending.Amount
	assert.NotEqual(t, 83, amount)

	f.gateway.On("Charge", mock.Anything, domain.Charge{Amount: amount, Method: domain.PaymentUPI, Receipt: upi.Receipt(domain.PaymentUPI)}).
		Return("pay_2", nil).Once()

	order, err := f.orders.Pay(ctx, "s1", upi)
	require.NoError(t, err)
	assert.Equal(t, amount, order.Cart.Total)
	assert.Equal(t, "pay_2", order.PaymentRef)
	f.gateway.AssertExpectations(t)
}

func TestOrderService_UniqueIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		sid := fmt.Sprintf("s%d", i)
		f.fill(t, sid)
		res, err := f.orders.Checkout(ctx, sid, address, domain.PaymentCOD)
		require.NoError(t, err)
		assert.False(t, seen[res.Order.ID])
		seen[res.Order.ID] = true
	}
}

func TestOrderService_Advance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fill(t, "s1")

	res, err := f.orders.Checkout(ctx, "s1", address, domain.PaymentCOD)
	require.NoError(t, err)
	id := res.Order.ID

	_, err = f.orders.Advance(ctx, "intruder", id)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	for _, want := range []domain.Status{domain.StatusPacked, domain.StatusPickedUp, domain.StatusDelivered} {
		o, err := f.orders.Advance(ctx, "s1", id)
		require.NoError(t, err)
		assert.Equal(t, want, o.Status)
	}

	_, err = f.orders.Advance(ctx, "s1", id)
	assert.ErrorIs(t, err, domain.ErrAlreadyDelivered)

	_, err = f.orders.Handle(ctx, domain.AdvanceStatus{OrderID: "order_missing"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// manualScheduler runs jobs only when the test calls Tick.
type manualScheduler struct {
	mu   sync.Mutex
	jobs map[int]func()
	next int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{jobs: make(map[int]func())}
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.jobs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.jobs, id)
		s.mu.Unlock()
	}
}

func (s *manualScheduler) Tick() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.jobs))
	for _, fn := range s.jobs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *manualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func TestProgressor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fill(t, "s1")

	res, err := f.orders.Checkout(ctx, "s1", address, domain.PaymentCOD)
	require.NoError(t, err)
	id := res.Order.ID

	sched := newManualScheduler()
	p := NewProgressor(f.orders, sched, 5*time.Second)

	assert.True(t, p.Start(id))
	assert.False(t, p.Start(id))
	assert.Equal(t, 1, sched.Len())

	statuses := []domain.Status{domain.StatusPacked, domain.StatusPickedUp, domain.StatusDelivered}
	for _, want := range statuses {
		sched.Tick()
		o, err := f.orders.Get(ctx, "s1", id)
		require.NoError(t, err)
		assert.Equal(t, want, o.Status)
	}

	assert.False(t, p.Running(id))
	assert.Equal(t, 0, sched.Len())

	// no further ticks reach the order
	sched.Tick()
	o, err := f.orders.Get(ctx, "s1", id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, o.Status)
	assert.Len(t, o.History, 4)
}

func TestProgressor_StopBeforeDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fill(t, "s1")

	res, err := f.orders.Checkout(ctx, "s1", address, domain.PaymentCOD)
	require.NoError(t, err)
	id := res.Order.ID

	sched := newManualScheduler()
	p := NewProgressor(f.orders, sched, 5*time.Second)
	p.Start(id)
	sched.Tick()

	assert.True(t, p.Stop(id))
	assert.False(t, p.Stop(id))
	sched.Tick()

	o, err := f.orders.Get(ctx, "s1", id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPacked, o.Status)

	p.Start(id)
	p.Start("order_missing")
	assert.Equal(t, 2, sched.Len())

	// unknown orders end their own job
	sched.Tick()
	assert.False(t, p.Running("order_missing"))

	p.StopAll()
	assert.Equal(t, 0, sched.Len())
	assert.False(t, p.Running(id))
}
