package handler

import (
	"errors"
	"net/http"

	"nearzy/internal/core/logger"
	"nearzy/internal/core/server"
	"nearzy/internal/features/promotions/domain"
	"nearzy/internal/features/promotions/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PromotionHandler handles HTTP requests for the storefront promotion.
type PromotionHandler struct {
	service ports.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(service ports.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// CreatePromotionRequest represents the request body for setting a promotion.
type CreatePromotionRequest struct {
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle"`
	Kind       domain.Kind `json:"kind"`
	CouponCode string      `json:"coupon_code"`
	Duration   int         `json:"duration"` // Seconds
}

// SetPromotion handles POST /promotion.
// @Summary Set the storefront promotion
// @Description Creates or replaces the promotion banner. Admins only.
// @Tags Promotion
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param promotion body CreatePromotionRequest true "Promotion details"
// @Success 201 {object} domain.Promotion
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 403 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /promotion [post]
func (h *PromotionHandler) SetPromotion(c *fiber.Ctx) error {
	var req CreatePromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}

	p, err := h.service.SetPromotion(c.UserContext(), req.Title, req.Subtitle, req.Kind, req.CouponCode, req.Duration)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidKind):
			return server.Fail(c, http.StatusBadRequest, "Invalid promotion kind. Must be DEAL, INFO, or ALERT")
		case errors.Is(err, domain.ErrTitleRequired):
			return server.Fail(c, http.StatusBadRequest, "Title is required")
		case errors.Is(err, domain.ErrInvalidDuration):
			return server.Fail(c, http.StatusBadRequest, "Duration must not be negative")
		case errors.Is(err, domain.ErrUnknownCoupon):
			return server.Fail(c, http.StatusBadRequest, "Unknown coupon code")
		}
		logger.Get().Error("Failed to set promotion",
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.Status(http.StatusCreated).JSON(p)
}

// GetPromotion handles GET /promotion.
// @Summary Get the storefront promotion
// @Description Retrieves the active promotion banner.
// @Tags Promotion
// @Produce json
// @Success 200 {object} domain.Promotion
// @Failure 404 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /promotion [get]
func (h *PromotionHandler) GetPromotion(c *fiber.Ctx) error {
	p, err := h.service.GetPromotion(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to get promotion",
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Fail(c, http.StatusInternalServerError, "Internal server error")
	}

	if p == nil {
		return server.Fail(c, http.StatusNotFound, "No active promotion")
	}

	return c.Status(http.StatusOK).JSON(p)
}

// RemovePromotion handles DELETE /promotion.
// @Summary Remove the storefront promotion
// @Description Removes the active promotion banner. Admins only.
// @Tags Promotion
// @Param Authorization header string true "Bearer token"
// @Success 204
// @Failure 401 {object} server.ErrorResponse
// @Failure 403 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /promotion [delete]
func (h *PromotionHandler) RemovePromotion(c *fiber.Ctx) error {
	if err := h.service.RemovePromotion(c.UserContext()); err != nil {
		logger.Get().Error("Failed to remove promotion",
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
		return server.Fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.SendStatus(http.StatusNoContent)
}
