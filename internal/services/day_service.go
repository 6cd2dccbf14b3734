package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

var (
	ErrLogNotFound        = errors.New("log not found")
	ErrDayEntrySaveFailed = errors.New("save day entry failed")
	ErrDayEntryLoadFailed = errors.New("load day entry failed")
	ErrDeleteDayFailed    = errors.New("delete day failed")
)

type DayLogRepository interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
	FindByUserAndDate(userID uint, logDate string) (models.DailyLog, bool, error)
	Upsert(entry *models.DailyLog) error
	DeleteByUserAndDate(userID uint, logDate string) (bool, error)
}

type DayService struct {
	logs DayLogRepository
}

func NewDayService(logs DayLogRepository) *DayService {
	return &DayService{logs: logs}
}

// SaveDayEntry validates the input and writes it as the single log of its date,
// replacing whatever was recorded for that date before.
func (service *DayService) SaveDayEntry(userID uint, input DayEntryInput) (models.DailyLog, error) {
	normalized, err := NormalizeDayEntryInput(input)
	if err != nil {
		return models.DailyLog{}, err
	}

	entry := models.DailyLog{
		UserID:           userID,
		LogDate:          normalized.LogDate,
		DayRating:        normalized.DayRating,
		Energy:           normalized.Energy,
		Sleep:            normalized.Sleep,
		Stress:           normalized.Stress,
		Exercise:         normalized.Exercise,
		Nutrition:        normalized.Nutrition,
		SocialConnection: normalized.SocialConnection,
		JournalEntry:     normalized.JournalEntry,
		Emotions:         normalized.Emotions,
		Moods:            normalized.Moods,
		Symptoms:         normalized.Symptoms,
	}
	if err := service.logs.Upsert(&entry); err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDayEntrySaveFailed, err)
	}
	return entry, nil
}

func (service *DayService) FetchAllLogsForUser(userID uint) ([]models.DailyLog, error) {
	return service.logs.ListByUser(userID)
}

func (service *DayService) FetchLogByDate(userID uint, rawDate string) (models.DailyLog, error) {
	logDate, err := ParseLogDate(rawDate)
	if err != nil {
		return models.DailyLog{}, err
	}
	entry, found, err := service.logs.FindByUserAndDate(userID, logDate.Format(models.DateLayout))
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDayEntryLoadFailed, err)
	}
	if !found {
		return models.DailyLog{}, ErrLogNotFound
	}
	return entry, nil
}

func (service *DayService) DeleteLogByDate(userID uint, rawDate string) error {
	logDate, err := ParseLogDate(rawDate)
	if err != nil {
		return err
	}
	deleted, err := service.logs.DeleteByUserAndDate(userID, logDate.Format(models.DateLayout))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteDayFailed, err)
	}
	if !deleted {
		return ErrLogNotFound
	}
	return nil
}
