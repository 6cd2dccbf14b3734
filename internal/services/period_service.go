package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

var (
	ErrInvalidPeriodDate    = errors.New("invalid period date")
	ErrPeriodEndBeforeStart = errors.New("period end before start")
	ErrPeriodNotFound       = errors.New("period not found")
	ErrPeriodSaveFailed     = errors.New("save period failed")
)

type PeriodInput struct {
	StartDate string
	EndDate   string
}

type PeriodRepository interface {
	ListByUser(userID uint) ([]models.Period, error)
	Create(period *models.Period) error
	DeleteByIDForUser(periodID uint, userID uint) (bool, error)
}

type PeriodService struct {
	periods PeriodRepository
}

func NewPeriodService(periods PeriodRepository) *PeriodService {
	return &PeriodService{periods: periods}
}

// RecordPeriod stores a period; an empty end date leaves the period open.
func (service *PeriodService) RecordPeriod(userID uint, input PeriodInput) (models.Period, error) {
	start, err := ParseLogDate(input.StartDate)
	if err != nil {
		return models.Period{}, ErrInvalidPeriodDate
	}

	period := models.Period{UserID: userID, StartDate: start.Format(models.DateLayout)}
	if rawEnd := strings.TrimSpace(input.EndDate); rawEnd != "" {
		end, err := ParseLogDate(rawEnd)
		if err != nil {
			return models.Period{}, ErrInvalidPeriodDate
		}
		if end.Before(start) {
			return models.Period{}, ErrPeriodEndBeforeStart
		}
		endValue := end.Format(models.DateLayout)
		period.EndDate = &endValue
	}

	if err := service.periods.Create(&period); err != nil {
		return models.Period{}, fmt.Errorf("%w: %v", ErrPeriodSaveFailed, err)
	}
	return period, nil
}

func (service *PeriodService) ListPeriods(userID uint) ([]models.Period, error) {
	return service.periods.ListByUser(userID)
}

func (service *PeriodService) DeletePeriod(userID uint, periodID uint) error {
	deleted, err := service.periods.DeleteByIDForUser(periodID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPeriodNotFound
	}
	return nil
}
