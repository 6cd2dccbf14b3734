package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

type logPayload struct {
	LogDate          string   `json:"log_date"`
	DayRating        *int     `json:"day_rating"`
	Energy           *int     `json:"energy"`
	Sleep            *int     `json:"sleep"`
	Stress           *int     `json:"stress"`
	Exercise         *int     `json:"exercise"`
	Nutrition        *int     `json:"nutrition"`
	SocialConnection *int     `json:"social_connection"`
	JournalEntry     string   `json:"journal_entry"`
	Emotions         []string `json:"emotions"`
	Moods            []string `json:"moods"`
	Symptoms         []string `json:"symptoms"`
	AutoTagMoods     bool     `json:"auto_tag_moods"`
}

func (payload logPayload) toInput() services.DayEntryInput {
	return services.DayEntryInput{
		LogDate:          payload.LogDate,
		DayRating:        payload.DayRating,
		Energy:           payload.Energy,
		Sleep:            payload.Sleep,
		Stress:           payload.Stress,
		Exercise:         payload.Exercise,
		Nutrition:        payload.Nutrition,
		SocialConnection: payload.SocialConnection,
		JournalEntry:     payload.JournalEntry,
		Emotions:         payload.Emotions,
		Moods:            payload.Moods,
		Symptoms:         payload.Symptoms,
		AutoTagMoods:     payload.AutoTagMoods,
	}
}

func (handler *Handler) SubmitLog(c *fiber.Ctx) error {
	payload := logPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	userID := currentUserID(c)
	entry, err := handler.days.SaveDayEntry(userID, payload.toInput())
	if err != nil {
		var ratingErr *services.RatingError
		var tagLimitErr *services.TagLimitError
		switch {
		case errors.As(err, &ratingErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "rating out of range",
				"field": ratingErr.Field,
			})
		case errors.As(err, &tagLimitErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "too many tags",
				"field": tagLimitErr.Field,
			})
		case errors.Is(err, services.ErrInvalidLogDate):
			return apiError(c, fiber.StatusBadRequest, "invalid log date")
		default:
			handler.requestLogger(c).Error("save log failed", "user_id", userID, "log_date", payload.LogDate, "error", err)
			return apiError(c, fiber.StatusInternalServerError, "failed to save log")
		}
	}

	return c.JSON(fiber.Map{"status": "success", "log": entry})
}

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	logs, err := handler.days.FetchAllLogsForUser(currentUserID(c))
	if err != nil {
		handler.requestLogger(c).Error("list logs failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) GetLog(c *fiber.Ctx) error {
	entry, err := handler.days.FetchLogByDate(currentUserID(c), c.Params("date"))
	switch {
	case errors.Is(err, services.ErrInvalidLogDate):
		return apiError(c, fiber.StatusBadRequest, "invalid log date")
	case errors.Is(err, services.ErrLogNotFound):
		return apiError(c, fiber.StatusNotFound, "log not found")
	case err != nil:
		handler.requestLogger(c).Error("fetch log failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch log")
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	err := handler.days.DeleteLogByDate(currentUserID(c), c.Params("date"))
	switch {
	case errors.Is(err, services.ErrInvalidLogDate):
		return apiError(c, fiber.StatusBadRequest, "invalid log date")
	case errors.Is(err, services.ErrLogNotFound):
		return apiError(c, fiber.StatusNotFound, "log not found")
	case err != nil:
		handler.requestLogger(c).Error("delete log failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to delete log")
	}
	return sendNoContent(c)
}
