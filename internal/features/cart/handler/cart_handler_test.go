package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/core/money"
	"nearzy/internal/core/server"
	"nearzy/internal/features/cart/adapters"
	"nearzy/internal/features/cart/service"
	catalogadapters "nearzy/internal/features/catalog/adapters"
	catalogservice "nearzy/internal/features/catalog/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionID = "8a1f9a6e-3a6c-4d0e-9a55-7f1f2b0c9d11"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	source, err := catalogadapters.NewStaticCatalog()
	require.NoError(t, err)

	lookup := adapters.NewCatalogLookup(catalogservice.NewCatalogService(source))
	repo := adapters.NewCacheCartRepository(cache.NewMemoryAdapter(), time.Hour)
	h := NewCartHandler(service.NewCartService(repo, lookup, money.NewFormatter("en-IN")))

	app := fiber.New()
	app.Use(server.Sessions())
	app.Get("/cart", h.GetCart)
	app.Put("/cart/items/:productId", h.SetQuantity)
	app.Delete("/cart/items/:productId", h.RemoveItem)
	app.Post("/cart/coupon", h.ApplyCoupon)
	app.Delete("/cart/coupon", h.RemoveCoupon)
	app.Delete("/cart", h.ClearCart)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(server.SessionHeader, sessionID)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCartHandler_Flow(t *testing.T) {
	app := setupApp(t)

	resp := do(t, app, "PUT", "/cart/items/1", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sessionID, resp.Header.Get(server.SessionHeader))

	var summary service.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, 3, summary.Lines[0].Quantity)
	assert.Equal(t, summary.Lines[0].Price*3, summary.Subtotal)

	resp = do(t, app, "POST", "/cart/coupon", `{"code":"save20"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var coupon service.CouponResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&coupon))
	assert.True(t, coupon.Applied)
	assert.Equal(t, "SAVE20", coupon.Cart.CouponCode)

	resp = do(t, app, "DELETE", "/cart/coupon", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, "DELETE", "/cart/items/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary = service.Summary{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Empty(t, summary.Lines)

	resp = do(t, app, "DELETE", "/cart", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCartHandler_Errors(t *testing.T) {
	app := setupApp(t)

	t.Run("UnknownProduct", func(t *testing.T) {
		resp := do(t, app, "PUT", "/cart/items/999", `{"quantity":1}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body server.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Product not found", body.Message)
	})

	t.Run("BadBody", func(t *testing.T) {
		resp := do(t, app, "PUT", "/cart/items/1", `{"quantity":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownCoupon", func(t *testing.T) {
		resp := do(t, app, "POST", "/cart/coupon", `{"code":"FREE"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var coupon service.CouponResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&coupon))
		assert.False(t, coupon.Applied)
	})
}
