package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/models"
)

// ErrorHandler maps the application error taxonomy to HTTP statuses:
// validation errors are the client's fault, provider failures surface as
// bad gateway with the upstream status attached, a missing or unreachable
// store is service unavailable, everything else is a plain 500. Nothing is
// retried here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		validationErr *apperrors.ValidationError
		gatewayErr    *apperrors.GatewayError
		authErr       *apperrors.AuthenticationError
		storageErr    *apperrors.StorageUnavailable
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		details := map[string]string{}
		if validationErr.Field != "" {
			details[validationErr.Field] = validationErr.Message
		}
		return sendError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error(), details)

	case errors.As(err, &gatewayErr):
		details := map[string]string{"provider": gatewayErr.Provider}
		if gatewayErr.Status > 0 {
			details["upstream_status"] = strconv.Itoa(gatewayErr.Status)
		}
		return sendError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", gatewayErr.Error(), details)

	case errors.As(err, &authErr):
		return sendError(c, fiber.StatusBadGateway, "UPSTREAM_AUTH_ERROR", authErr.Error(),
			map[string]string{"provider": authErr.Provider})

	case errors.As(err, &storageErr):
		return sendError(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", storageErr.Error(), nil)

	case errors.As(err, &fiberErr):
		return sendError(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message, nil)
	}

	return sendError(c, fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
}

func sendError(c *fiber.Ctx, status int, code, message string, details map[string]string) error {
	return c.Status(status).JSON(models.NewErrorResponse(code, message, details))
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
