package handler

import (
	"errors"
	"net/http"
	"strings"

	"nearzy/internal/core/server"
	"nearzy/internal/features/auth/domain"
	"nearzy/internal/features/auth/service"

	"github.com/gofiber/fiber/v2"
)

const (
	userLocal    = "user"
	sessionLocal = "auth_session"
)

// Authenticate resolves an optional bearer token into the signed-in user.
// Requests without a token continue anonymously; a bad token is rejected.
func Authenticate(s *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return server.Fail(c, http.StatusUnauthorized, "Invalid authorization header")
		}

		session, err := s.Verify(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrSessionEnded) {
				return server.Fail(c, http.StatusUnauthorized, err.Error())
			}
			return err
		}

		c.Locals(sessionLocal, session)
		return c.Next()
	}
}

// RequireRole admits only signed-in users holding one of roles.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return server.Fail(c, http.StatusUnauthorized, "Sign in required")
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		return server.Fail(c, http.StatusForbidden, "Access denied")
	}
}

// CurrentUser returns the signed-in user of the request's session, or nil
// when anonymous.
func CurrentUser(c *fiber.Ctx) *domain.User {
	if session, ok := c.Locals(sessionLocal).(*service.Session); ok {
		return session.User()
	}
	user, _ := c.Locals(userLocal).(*domain.User)
	return user
}

// SetUser attaches user to a request that carries no session.
func SetUser(c *fiber.Ctx, user *domain.User) {
	c.Locals(userLocal, user)
}
