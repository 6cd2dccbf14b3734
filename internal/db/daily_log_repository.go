package db

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/cyclejournal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var upsertColumns = []string{
	"day_rating",
	"energy",
	"sleep",
	"stress",
	"exercise",
	"nutrition",
	"social_connection",
	"journal_entry",
	"updated_at",
}

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

// ListByUser returns every log of the user ordered by date, tags attached.
func (repo *DailyLogRepository) ListByUser(userID uint) ([]models.DailyLog, error) {
	return repo.ListByUserInRange(userID, "", "")
}

// ListByUserInRange is ListByUser limited to from..to inclusive. An empty bound is
// open.
func (repo *DailyLogRepository) ListByUserInRange(userID uint, from string, to string) ([]models.DailyLog, error) {
	query := repo.database.Where("user_id = ?", userID)
	if from != "" {
		query = query.Where("log_date >= ?", from)
	}
	if to != "" {
		query = query.Where("log_date <= ?", to)
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Order("log_date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	if err := attachTags(repo.database, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByUserAndDate(userID uint, logDate string) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	err := repo.database.Where("user_id = ? AND log_date = ?", userID, logDate).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DailyLog{}, false, nil
	}
	if err != nil {
		return models.DailyLog{}, false, err
	}

	logs := []models.DailyLog{entry}
	if err := attachTags(repo.database, logs); err != nil {
		return models.DailyLog{}, false, err
	}
	return logs[0], true, nil
}

// Upsert writes the log keyed by (user, date) and replaces each of its tag sets in one
// transaction. entry.ID and timestamps are refreshed from the stored row.
func (repo *DailyLogRepository) Upsert(entry *models.DailyLog) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(entry).Error; err != nil {
			return fmt.Errorf("upsert daily log: %w", err)
		}

		stored := models.DailyLog{}
		if err := tx.Where("user_id = ? AND log_date = ?", entry.UserID, entry.LogDate).Take(&stored).Error; err != nil {
			return fmt.Errorf("reload daily log: %w", err)
		}
		entry.ID = stored.ID
		entry.CreatedAt = stored.CreatedAt
		entry.UpdatedAt = stored.UpdatedAt

		for _, kind := range models.TagKinds {
			names := entry.Tags(kind)
			if names == nil {
				names = []string{}
			}
			tags, err := ensureTags(tx, kind, names)
			if err != nil {
				return err
			}
			if err := replaceLogTags(tx, kind, entry.ID, tags); err != nil {
				return err
			}
			entry.SetTags(kind, tagNames(tags))
		}
		return nil
	})
}

// DeleteByUserAndDate removes the log; join rows go with it through ON DELETE CASCADE.
func (repo *DailyLogRepository) DeleteByUserAndDate(userID uint, logDate string) (bool, error) {
	result := repo.database.Where("user_id = ? AND log_date = ?", userID, logDate).Delete(&models.DailyLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}
