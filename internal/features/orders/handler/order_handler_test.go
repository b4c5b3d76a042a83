package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/core/money"
	"nearzy/internal/core/server"
	cartadapters "nearzy/internal/features/cart/adapters"
	cartservice "nearzy/internal/features/cart/service"
	catalogadapters "nearzy/internal/features/catalog/adapters"
	catalogservice "nearzy/internal/features/catalog/service"
	"nearzy/internal/features/orders/adapters"
	"nearzy/internal/features/orders/domain"
	"nearzy/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "8a1f9a6e-3a6c-4d0e-9a55-7f1f2b0c9d11"

type fakeTracker struct {
	mu      sync.Mutex
	started []string
	stopped []string
}

func (f *fakeTracker) Start(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, id)
	return true
}

func (f *fakeTracker) Stop(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = append(f.stopped, id)
	return true
}

type testEnv struct {
	app     *fiber.App
	carts   *cartservice.CartService
	tracker *fakeTracker
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	source, err := catalogadapters.NewStaticCatalog()
	require.NoError(t, err)

	store := cache.NewMemoryAdapter()
	carts := cartservice.NewCartService(
		cartadapters.NewCacheCartRepository(store, time.Hour),
		cartadapters.NewCatalogLookup(catalogservice.NewCatalogService(source)),
		money.NewFormatter("en-IN"),
	)
	orders := service.NewOrderService(adapters.NewCacheOrderRepository(store, time.Hour), carts, adapters.NewSimulatedGateway(0))
	tracker := &fakeTracker{}
	h := NewOrderHandler(orders, tracker)

	app := fiber.New()
	app.Use(server.Sessions())
	app.Post("/checkout", h.Checkout)
	app.Post("/payments", h.Pay)
	app.Get("/orders/current", h.GetCurrentOrder)
	app.Get("/orders/:id", h.GetOrder)
	app.Post("/orders/:id/advance", h.AdvanceOrder)
	app.Delete("/orders/:id/tracking", h.StopTracking)

	return &testEnv{app: app, carts: carts, tracker: tracker}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(server.SessionHeader, sessionID)
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) fill(t *testing.T) {
	t.Helper()
	_, err := e.carts.SetQuantity(context.Background(), sessionID, "1", 2)
	require.NoError(t, err)
}

func TestOrderHandler_CashOnDelivery(t *testing.T) {
	env := setup(t)

	resp := env.do(t, "POST", "/checkout", `{"address":"12 Park Street","payment_method":"cod"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	env.fill(t)

	resp = env.do(t, "POST", "/checkout", `{"address":"short","payment_method":"cod"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, "POST", "/checkout", `{"address":"12 Park Street, Kolkata","payment_method":"cod"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res service.CheckoutResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.NotNil(t, res.Order)
	id := res.Order.ID
	assert.Equal(t, []string{id}, env.tracker.started)

	resp = env.do(t, "GET", "/orders/current", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var current domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&current))
	assert.Equal(t, id, current.ID)
	assert.Equal(t, "15-20 mins", current.ETA)

	resp = env.do(t, "POST", "/orders/"+id+"/advance", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var advanced domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&advanced))
	assert.Equal(t, domain.StatusPacked, advanced.Status)

	resp = env.do(t, "DELETE", "/orders/"+id+"/tracking", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{id}, env.tracker.stopped)

	resp = env.do(t, "GET", "/orders/order_unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderHandler_OnlinePayment(t *testing.T) {
	env := setup(t)

	resp := env.do(t, "POST", "/payments", `{"upi_id":"asha@okaxis"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	env.fill(t)

	resp = env.do(t, "POST", "/checkout", `{"address":"12 Park Street, Kolkata","payment_method":"upi"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var res service.CheckoutResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.NotNil(t, res.Pending)
	assert.Empty(t, env.tracker.started)

	resp = env.do(t, "POST", "/payments", `{"upi_id":"nope"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var fail server.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fail))
	assert.Equal(t, "please enter a valid UPI ID", fail.Message)

	resp = env.do(t, "POST", "/payments", `{"upi_id":"asha@okaxis"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	assert.Equal(t, domain.PaymentUPI, order.Payment)
	assert.NotEmpty(t, order.PaymentRef)
	assert.Equal(t, []string{order.ID}, env.tracker.started)
}

func TestOrderHandler_PayAfterCartChange(t *testing.T) {
	env := setup(t)
	env.fill(t)

	resp := env.do(t, "POST", "/checkout", `{"address":"12 Park Street, Kolkata","payment_method":"upi"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	_, err := env.carts.SetQuantity(context.Background(), sessionID, "1", 5)
	require.NoError(t, err)

	resp = env.do(t, "POST", "/payments", `{"upi_id":"asha@okaxis"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var fail server.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fail))
	assert.Equal(t, "Your cart changed since checkout, please check out again", fail.Message)
	assert.Empty(t, env.tracker.started)

	// the stale checkout is gone
	resp = env.do(t, "POST", "/payments", `{"upi_id":"asha@okaxis"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fail))
	assert.Equal(t, "No checkout is awaiting payment", fail.Message)
}

func TestOrderHandler_NoCurrentOrder(t *testing.T) {
	env := setup(t)

	resp := env.do(t, "GET", "/orders/current", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
