package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/charts"
)

func (handler *Handler) sendChart(c *fiber.Ctx, image []byte, err error) error {
	if errors.Is(err, charts.ErrNoData) {
		return apiError(c, fiber.StatusNotFound, "no data")
	}
	if err != nil {
		handler.requestLogger(c).Error("render chart failed", "path", c.Path(), "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to render chart")
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(image)
}

func (handler *Handler) WeeklyChart(c *fiber.Ctx) error {
	trend, err := handler.stats.WeeklyTrend(currentUserID(c), c.Query("metric"))
	if err != nil {
		return handler.statsError(c, err)
	}
	image, err := handler.charts.WeeklyTrend(trend)
	return handler.sendChart(c, image, err)
}

func (handler *Handler) PhaseChart(c *fiber.Ctx) error {
	summary, err := handler.stats.MoodByPhase(currentUserID(c), c.Query("metric"))
	if err != nil {
		return handler.statsError(c, err)
	}
	image, err := handler.charts.MoodByPhase(summary)
	return handler.sendChart(c, image, err)
}

func (handler *Handler) FactorChart(c *fiber.Ctx) error {
	summary, err := handler.stats.FactorAverages(currentUserID(c))
	if err != nil {
		return handler.statsError(c, err)
	}
	image, err := handler.charts.FactorAverages(summary)
	return handler.sendChart(c, image, err)
}

func (handler *Handler) PeriodChart(c *fiber.Ctx) error {
	metrics, err := handler.stats.PeriodMetrics(currentUserID(c))
	if err != nil {
		return handler.statsError(c, err)
	}
	image, err := handler.charts.PeriodLengths(metrics)
	return handler.sendChart(c, image, err)
}

func (handler *Handler) PeriodGapChart(c *fiber.Ctx) error {
	metrics, err := handler.stats.PeriodMetrics(currentUserID(c))
	if err != nil {
		return handler.statsError(c, err)
	}
	image, err := handler.charts.PeriodGaps(metrics)
	return handler.sendChart(c, image, err)
}
