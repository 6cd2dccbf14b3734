package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/models"
)

func (handler *Handler) ListTags(c *fiber.Ctx) error {
	kind, ok := models.ParseTagKind(c.Params("kind"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "unknown tag kind")
	}
	tags, err := handler.tags.ListByKind(kind)
	if err != nil {
		handler.requestLogger(c).Error("list tags failed", "kind", kind, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch tags")
	}
	return c.JSON(tags)
}
