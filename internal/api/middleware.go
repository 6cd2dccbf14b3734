package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/logging"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

const contextUserIDKey = "current_user_id"

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals(contextUserIDKey).(uint)
	return userID
}

// requestLogger tags entries with the request id set by the requestid middleware.
func (handler *Handler) requestLogger(c *fiber.Ctx) *logging.Logger {
	requestID, _ := c.Locals("requestid").(string)
	if requestID == "" {
		return handler.logger
	}
	return handler.logger.With("request_id", requestID)
}

// ResolveUser picks the acting user. A bearer token selects its uid; without one the
// default user acts unless authentication is required.
func (handler *Handler) ResolveUser(c *fiber.Ctx) error {
	rawToken := bearerToken(c)
	if rawToken == "" {
		if handler.authRequired {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		c.Locals(contextUserIDKey, handler.defaultUserID)
		return c.Next()
	}

	userID, err := handler.tokens.Parse(rawToken)
	if err != nil {
		handler.requestLogger(c).Debug("bearer token rejected", "error", err)
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if _, err := handler.users.FindByID(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			handler.requestLogger(c).Debug("token user not found", "user_id", userID)
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		handler.requestLogger(c).Error("resolve token user failed", "user_id", userID, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to resolve user")
	}

	c.Locals(contextUserIDKey, userID)
	return c.Next()
}
