package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDKey is the fiber locals key holding the request id.
const RequestIDKey = "request_id"

// RequestID assigns every request an id, honoring one supplied by an
// upstream proxy, and echoes it back in the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(RequestIDKey, requestID)
		c.Set("X-Request-ID", requestID)
		return c.Next()
	}
}
