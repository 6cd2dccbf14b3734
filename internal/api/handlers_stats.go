package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

func (handler *Handler) statsError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownMetric):
		return apiError(c, fiber.StatusBadRequest, "unknown metric")
	case errors.Is(err, services.ErrUnknownTagKind):
		return apiError(c, fiber.StatusNotFound, "unknown tag kind")
	default:
		handler.requestLogger(c).Error("build stats failed", "path", c.Path(), "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to build stats")
	}
}

func (handler *Handler) WeeklyStats(c *fiber.Ctx) error {
	trend, err := handler.stats.WeeklyTrend(currentUserID(c), c.Query("metric"))
	if err != nil {
		return handler.statsError(c, err)
	}
	return c.JSON(trend)
}

func (handler *Handler) PhaseStats(c *fiber.Ctx) error {
	summary, err := handler.stats.MoodByPhase(currentUserID(c), c.Query("metric"))
	if err != nil {
		return handler.statsError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) FactorStats(c *fiber.Ctx) error {
	summary, err := handler.stats.FactorAverages(currentUserID(c))
	if err != nil {
		return handler.statsError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) PeriodStats(c *fiber.Ctx) error {
	metrics, err := handler.stats.PeriodMetrics(currentUserID(c))
	if err != nil {
		return handler.statsError(c, err)
	}
	return c.JSON(metrics)
}

func (handler *Handler) TagStats(c *fiber.Ctx) error {
	summary, err := handler.stats.TagFrequencies(currentUserID(c), c.Params("kind"))
	if err != nil {
		return handler.statsError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) PatternStats(c *fiber.Ctx) error {
	summary, err := handler.stats.MoodPatterns(currentUserID(c))
	if err != nil {
		return handler.statsError(c, err)
	}
	return c.JSON(summary)
}
