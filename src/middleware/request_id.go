package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID tags each request with an id, echoed in the response header and
// available to handlers for log correlation.
func RequestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}

	c.Locals("requestID", id)
	c.Set("X-Request-ID", id)

	return c.Next()
}
