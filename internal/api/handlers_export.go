package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	exportRange, err := handler.parseExportRange(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, exportRangeErrorMessage(err))
	}

	summary, err := handler.export.BuildSummary(currentUserID(c), exportRange)
	if err != nil {
		handler.requestLogger(c).Error("build export summary failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	exportRange, err := handler.parseExportRange(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, exportRangeErrorMessage(err))
	}

	records, err := handler.export.BuildCSVRecords(currentUserID(c), exportRange)
	if err != nil {
		handler.requestLogger(c).Error("build csv export failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	if err := writer.WriteAll(records); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	now := time.Now().In(handler.location)
	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(now, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	exportRange, err := handler.parseExportRange(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, exportRangeErrorMessage(err))
	}

	entries, err := handler.export.BuildJSONEntries(currentUserID(c), exportRange)
	if err != nil {
		handler.requestLogger(c).Error("build json export failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}

	now := time.Now().In(handler.location)
	payload, err := json.MarshalIndent(fiber.Map{
		"exported_at": now.Format(time.RFC3339),
		"entries":     entries,
	}, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.Send(payload)
}

func (handler *Handler) parseExportRange(c *fiber.Ctx) (services.ExportRange, error) {
	return services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
}

func exportRangeErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrExportFromDateInvalid):
		return "invalid from date"
	case errors.Is(err, services.ErrExportToDateInvalid):
		return "invalid to date"
	default:
		return "invalid range"
	}
}
