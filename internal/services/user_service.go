package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

const maxUserNameLength = 64

var (
	ErrInvalidUserName = errors.New("invalid user name")
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type UserRepository interface {
	FindByID(userID uint) (models.User, bool, error)
	FindByName(name string) (models.User, bool, error)
	List() ([]models.User, error)
	Create(user *models.User) error
	EnsureByName(name string) (models.User, error)
}

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func NormalizeUserName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > maxUserNameLength {
		return "", ErrInvalidUserName
	}
	return name, nil
}

func (service *UserService) CreateUser(rawName string) (models.User, error) {
	name, err := NormalizeUserName(rawName)
	if err != nil {
		return models.User{}, err
	}

	_, found, err := service.users.FindByName(name)
	if err != nil {
		return models.User{}, err
	}
	if found {
		return models.User{}, ErrUserExists
	}

	user := models.User{Name: name}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *UserService) ListUsers() ([]models.User, error) {
	return service.users.List()
}

func (service *UserService) FindByID(userID uint) (models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (service *UserService) FindByName(rawName string) (models.User, error) {
	name, err := NormalizeUserName(rawName)
	if err != nil {
		return models.User{}, err
	}
	user, found, err := service.users.FindByName(name)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// EnsureUser returns the named user, creating it on first use.
func (service *UserService) EnsureUser(rawName string) (models.User, error) {
	name, err := NormalizeUserName(rawName)
	if err != nil {
		return models.User{}, err
	}
	return service.users.EnsureByName(name)
}
