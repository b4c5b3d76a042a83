package handler

import (
	"errors"
	"net/http"

	"nearzy/internal/core/logger"
	"nearzy/internal/core/server"
	"nearzy/internal/features/orders/domain"
	"nearzy/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Tracker starts and stops automatic status advancement.
type Tracker interface {
	Start(orderID string) bool
	Stop(orderID string) bool
}

// OrderHandler handles HTTP requests related to checkout and orders.
type OrderHandler struct {
	service *service.OrderService
	tracker Tracker
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService, tracker Tracker) *OrderHandler {
	return &OrderHandler{
		service: s,
		tracker: tracker,
	}
}

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	Address       string               `json:"address"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

// Checkout handles POST /checkout.
// @Summary Check out the cart
// @Description Cash on delivery places the order at once. Card and UPI return a pending checkout to complete with POST /payments.
// @Tags Orders
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param request body CheckoutRequest true "Delivery details"
// @Success 201 {object} service.CheckoutResult
// @Success 202 {object} service.CheckoutResult
// @Failure 400 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	res, err := h.service.Checkout(c.UserContext(), server.SessionID(c), req.Address, req.PaymentMethod)
	if err != nil {
		return h.fail(c, "Failed to check out", err)
	}

	if res.Order == nil {
		return c.Status(http.StatusAccepted).JSON(res)
	}
	h.tracker.Start(res.Order.ID)
	return c.Status(http.StatusCreated).JSON(res)
}

// Pay handles POST /payments.
// @Summary Pay for a pending checkout
// @Tags Orders
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param request body domain.PaymentDetails true "Card or UPI details"
// @Success 201 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 402 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /payments [post]
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	var req domain.PaymentDetails
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	order, err := h.service.Pay(c.UserContext(), server.SessionID(c), req)
	if err != nil {
		return h.fail(c, "Failed to process payment", err)
	}

	h.tracker.Start(order.ID)
	return c.Status(http.StatusCreated).JSON(order)
}

// GetCurrentOrder handles GET /orders/current.
// @Summary Track the current order
// @Description Returns the session's latest order and resumes automatic tracking until delivery.
// @Tags Orders
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/current [get]
func (h *OrderHandler) GetCurrentOrder(c *fiber.Ctx) error {
	order, err := h.service.Current(c.UserContext(), server.SessionID(c))
	if err != nil {
		return h.fail(c, "Failed to fetch current order", err)
	}

	if !order.Delivered() {
		h.tracker.Start(order.ID)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// GetOrder handles GET /orders/:id.
// @Summary Get Order by ID
// @Tags Orders
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.service.Get(c.UserContext(), server.SessionID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to fetch order", err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// AdvanceOrder handles POST /orders/:id/advance.
// @Summary Advance an order to its next status
// @Tags Orders
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /orders/{id}/advance [post]
func (h *OrderHandler) AdvanceOrder(c *fiber.Ctx) error {
	order, err := h.service.Advance(c.UserContext(), server.SessionID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to advance order", err)
	}
	if order.Delivered() {
		h.tracker.Stop(order.ID)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// StopTracking handles DELETE /orders/:id/tracking.
// @Summary Stop automatic tracking
// @Tags Orders
// @Param X-Session-ID header string false "Session ID"
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id}/tracking [delete]
func (h *OrderHandler) StopTracking(c *fiber.Ctx) error {
	order, err := h.service.Get(c.UserContext(), server.SessionID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to stop tracking", err)
	}
	h.tracker.Stop(order.ID)
	return c.SendStatus(http.StatusNoContent)
}

func (h *OrderHandler) fail(c *fiber.Ctx, msg string, err error) error {
	status := http.StatusInternalServerError
	text := "Internal server error"

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		status, text = http.StatusNotFound, "Order not found"
	case errors.Is(err, service.ErrNoCurrentOrder):
		status, text = http.StatusNotFound, "No order placed yet"
	case errors.Is(err, service.ErrEmptyCart):
		status, text = http.StatusConflict, "Your cart is empty"
	case errors.Is(err, service.ErrNoPendingCheckout):
		status, text = http.StatusConflict, "No checkout is awaiting payment"
	case errors.Is(err, service.ErrCheckoutStale):
		status, text = http.StatusConflict, "Your cart changed since checkout, please check out again"
	case errors.Is(err, domain.ErrAlreadyDelivered):
		status, text = http.StatusConflict, "Order already delivered"
	case errors.Is(err, service.ErrPaymentFailed):
		status, text = http.StatusPaymentRequired, "Payment failed, please try again"
	case errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidCard),
		errors.Is(err, domain.ErrInvalidUPI):
		status, text = http.StatusBadRequest, err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	} else {
		logger.Get().Debug(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	}
	return server.Fail(c, status, text)
}
