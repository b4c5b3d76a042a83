package handler

import (
	"errors"
	"net/http"

	"nearzy/internal/core/logger"
	"nearzy/internal/core/server"
	"nearzy/internal/features/dashboard/domain"
	"nearzy/internal/features/dashboard/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler serves the role dashboards. Routes are expected behind a
// role gate.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(s *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetAdminDashboard handles GET /admin/dashboard.
// @Summary Admin dashboard
// @Description Returns one tab of the admin dashboard. Admins only.
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param tab query string false "overview, orders, products, riders or analytics"
// @Success 200 {object} service.AdminView
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 403 {object} server.ErrorResponse
// @Router /admin/dashboard [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	view, err := h.service.Admin(c.UserContext(), c.Query("tab"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(view)
}

// GetShopkeeperDashboard handles GET /shopkeeper/dashboard.
// @Summary Shopkeeper dashboard
// @Description Returns one tab of the shopkeeper dashboard. The orders tab can be filtered by status.
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param tab query string false "overview, orders, products or analytics"
// @Param status query string false "all, pending, packed, picked-up or delivered"
// @Success 200 {object} service.ShopkeeperView
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 403 {object} server.ErrorResponse
// @Router /shopkeeper/dashboard [get]
func (h *DashboardHandler) GetShopkeeperDashboard(c *fiber.Ctx) error {
	view, err := h.service.Shopkeeper(c.UserContext(), c.Query("tab"), c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusOK).JSON(view)
}

func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownTab):
		return server.Fail(c, http.StatusBadRequest, "Unknown dashboard tab")
	case errors.Is(err, domain.ErrUnknownFilter):
		return server.Fail(c, http.StatusBadRequest, "Unknown order status filter")
	}

	logger.Get().Error("Failed to load dashboard",
		zap.String("ray_id", server.RayID(c)),
		zap.Error(err),
	)
	return server.Fail(c, http.StatusInternalServerError, "Internal server error")
}
