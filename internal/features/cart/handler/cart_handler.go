package handler

import (
	"errors"
	"net/http"

	"nearzy/internal/core/logger"
	"nearzy/internal/core/server"
	"nearzy/internal/features/cart/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service *service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(s *service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

// SetQuantityRequest is the body of PUT /cart/items/:productId.
type SetQuantityRequest struct {
	// Quantity is the new quantity. Zero or less removes the line.
	Quantity int `json:"quantity"`
}

// CouponRequest is the body of POST /cart/coupon.
type CouponRequest struct {
	Code string `json:"code"`
}

// GetCart handles GET /cart.
// @Summary Get the cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} service.Summary
// @Router /cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	summary, err := h.service.Get(c.UserContext(), server.SessionID(c))
	if err != nil {
		return h.internal(c, "Failed to get cart", err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}

// SetQuantity handles PUT /cart/items/:productId.
// @Summary Set a product quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param productId path string true "Product ID"
// @Param request body SetQuantityRequest true "Quantity"
// @Success 200 {object} service.Summary
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	summary, err := h.service.SetQuantity(c.UserContext(), server.SessionID(c), c.Params("productId"), req.Quantity)
	if err != nil {
		return h.mutationError(c, err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}

// RemoveItem handles DELETE /cart/items/:productId.
// @Summary Remove a product from the cart
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param productId path string true "Product ID"
// @Success 200 {object} service.Summary
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	summary, err := h.service.Remove(c.UserContext(), server.SessionID(c), c.Params("productId"))
	if err != nil {
		return h.mutationError(c, err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}

// ApplyCoupon handles POST /cart/coupon.
// @Summary Apply a coupon
// @Description Unknown codes are ignored and reported with applied=false.
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param request body CouponRequest true "Coupon"
// @Success 200 {object} service.CouponResult
// @Failure 400 {object} server.ErrorResponse
// @Router /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req CouponRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.service.ApplyCoupon(c.UserContext(), server.SessionID(c), req.Code)
	if err != nil {
		return h.internal(c, "Failed to apply coupon", err)
	}
	return c.Status(http.StatusOK).JSON(res)
}

// RemoveCoupon handles DELETE /cart/coupon.
// @Summary Remove the coupon
// @Tags Cart
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} service.Summary
// @Router /cart/coupon [delete]
func (h *CartHandler) RemoveCoupon(c *fiber.Ctx) error {
	summary, err := h.service.RemoveCoupon(c.UserContext(), server.SessionID(c))
	if err != nil {
		return h.internal(c, "Failed to remove coupon", err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}

// ClearCart handles DELETE /cart.
// @Summary Empty the cart
// @Tags Cart
// @Param X-Session-ID header string false "Session ID"
// @Success 204
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), server.SessionID(c)); err != nil {
		return h.internal(c, "Failed to clear cart", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *CartHandler) mutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return server.Fail(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, service.ErrOutOfStock):
		return server.Fail(c, http.StatusConflict, "Product is out of stock")
	default:
		return h.internal(c, "Failed to update cart", err)
	}
}

func (h *CartHandler) internal(c *fiber.Ctx, msg string, err error) error {
	logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusInternalServerError, "Internal server error")
}
