package handler

import (
	"context"
	"net/http"

	"nearzy/internal/core/logger"
	"nearzy/internal/core/server"
	authhandler "nearzy/internal/features/auth/handler"
	"nearzy/internal/features/navigation/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartCounter reports the number of units in a session's cart.
type CartCounter interface {
	ItemCount(ctx context.Context, sessionID string) (int, error)
}

// ScreenResponse is the resolved screen plus the navigation bar.
type ScreenResponse struct {
	domain.Screen
	NavBar []domain.NavItem `json:"nav_bar"`
}

// NavigationHandler resolves navigation requests.
type NavigationHandler struct {
	carts CartCounter
}

// NewNavigationHandler creates a new NavigationHandler.
func NewNavigationHandler(carts CartCounter) *NavigationHandler {
	return &NavigationHandler{carts: carts}
}

// GetScreen handles GET /screens/:target.
// @Summary Resolve a screen
// @Description Resolves a navigation target for the caller's role. Dashboards redirect visitors to login and other roles to home; unknown targets land on home.
// @Tags Navigation
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param Authorization header string false "Bearer token"
// @Param target path string true "home, categories, products, cart, checkout, payment, track-order, login, admin or shopkeeper"
// @Success 200 {object} ScreenResponse
// @Router /screens/{target} [get]
func (h *NavigationHandler) GetScreen(c *fiber.Ctx) error {
	role := domain.Anonymous
	if user := authhandler.CurrentUser(c); user != nil {
		role = user.Role
	}

	screen := domain.Resolve(c.Params("target"), role)

	count, err := h.carts.ItemCount(c.UserContext(), server.SessionID(c))
	if err != nil {
		logger.Get().Warn("Failed to count cart items",
			zap.String("ray_id", server.RayID(c)),
			zap.Error(err),
		)
	}

	return c.Status(http.StatusOK).JSON(ScreenResponse{
		Screen: screen,
		NavBar: domain.NavBar(screen.Target, role, count),
	})
}
