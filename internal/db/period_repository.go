package db

import (
	"github.com/terraincognita07/cyclejournal/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

func (repo *PeriodRepository) ListByUser(userID uint) ([]models.Period, error) {
	periods := make([]models.Period, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (repo *PeriodRepository) Create(period *models.Period) error {
	return repo.database.Create(period).Error
}

// DeleteByIDForUser reports whether a row owned by the user was removed.
func (repo *PeriodRepository) DeleteByIDForUser(periodID uint, userID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", periodID, userID).Delete(&models.Period{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
