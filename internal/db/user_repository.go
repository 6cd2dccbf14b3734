package db

import (
	"errors"

	"github.com/terraincognita07/cyclejournal/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

// FindByID reports found=false instead of an error when the id is unknown.
func (repo *UserRepository) FindByID(userID uint) (models.User, bool, error) {
	var user models.User
	err := repo.database.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}

// FindByName reports found=false instead of an error when no user has the name.
func (repo *UserRepository) FindByName(name string) (models.User, bool, error) {
	var user models.User
	err := repo.database.Where("name = ?", name).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}

func (repo *UserRepository) List() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// EnsureByName returns the user with the given name, creating it when absent.
func (repo *UserRepository) EnsureByName(name string) (models.User, error) {
	user := models.User{}
	if err := repo.database.Where(models.User{Name: name}).FirstOrCreate(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
