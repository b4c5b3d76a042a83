package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHeader identifies the shopper session that owns a cart and orders.
const SessionHeader = "X-Session-ID"

const sessionLocal = "session_id"

// Sessions assigns a session id to every request. Clients echo the id back
// on later calls; a missing or malformed id starts a new session.
func Sessions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(SessionHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(sessionLocal, id)
		c.Set(SessionHeader, id)
		return c.Next()
	}
}

// SessionID returns the session id assigned by Sessions, or "" when the
// middleware did not run.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}
