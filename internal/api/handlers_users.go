package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

type userPayload struct {
	Name string `json:"name"`
}

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.users.ListUsers()
	if err != nil {
		handler.requestLogger(c).Error("list users failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}
	return c.JSON(users)
}

func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	payload := userPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.users.CreateUser(payload.Name)
	switch {
	case errors.Is(err, services.ErrInvalidUserName):
		return apiError(c, fiber.StatusBadRequest, "invalid user name")
	case errors.Is(err, services.ErrUserExists):
		return apiError(c, fiber.StatusConflict, "user already exists")
	case err != nil:
		handler.requestLogger(c).Error("create user failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
