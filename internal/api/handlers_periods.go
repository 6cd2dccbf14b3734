package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

type periodPayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	periods, err := handler.periods.ListPeriods(currentUserID(c))
	if err != nil {
		handler.requestLogger(c).Error("list periods failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch periods")
	}
	return c.JSON(periods)
}

func (handler *Handler) CreatePeriod(c *fiber.Ctx) error {
	payload := periodPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	period, err := handler.periods.RecordPeriod(currentUserID(c), services.PeriodInput{
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
	})
	switch {
	case errors.Is(err, services.ErrInvalidPeriodDate):
		return apiError(c, fiber.StatusBadRequest, "invalid period date")
	case errors.Is(err, services.ErrPeriodEndBeforeStart):
		return apiError(c, fiber.StatusBadRequest, "end date before start date")
	case err != nil:
		handler.requestLogger(c).Error("save period failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save period")
	}
	return c.Status(fiber.StatusCreated).JSON(period)
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}

	err = handler.periods.DeletePeriod(currentUserID(c), uint(id))
	switch {
	case errors.Is(err, services.ErrPeriodNotFound):
		return apiError(c, fiber.StatusNotFound, "period not found")
	case err != nil:
		handler.requestLogger(c).Error("delete period failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to delete period")
	}
	return sendNoContent(c)
}
