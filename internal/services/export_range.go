package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ExportRange bounds an export by inclusive calendar dates. Empty bounds are open.
type ExportRange struct {
	From string
	To   string
}

// ParseExportRange reads optional YYYY-MM-DD bounds as calendar days in location.
func ParseExportRange(rawFrom string, rawTo string, location *time.Location) (ExportRange, error) {
	if location == nil {
		location = time.UTC
	}

	var exportRange ExportRange
	var from, to time.Time
	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, fromRaw, location)
		if err != nil {
			return ExportRange{}, ErrExportFromDateInvalid
		}
		from = parsed
		exportRange.From = parsed.Format(models.DateLayout)
	}
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, toRaw, location)
		if err != nil {
			return ExportRange{}, ErrExportToDateInvalid
		}
		to = parsed
		exportRange.To = parsed.Format(models.DateLayout)
	}

	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return ExportRange{}, ErrExportRangeInvalid
	}
	return exportRange, nil
}
