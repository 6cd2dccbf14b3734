package services

import (
	"fmt"
	"sort"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

type dayLogRepositoryStub struct {
	entries   map[string]models.DailyLog
	nextID    uint
	upsertErr error
	listErr   error
}

func newDayLogRepositoryStub() *dayLogRepositoryStub {
	return &dayLogRepositoryStub{
		entries: make(map[string]models.DailyLog),
		nextID:  1,
	}
}

func dayLogKey(userID uint, logDate string) string {
	return fmt.Sprintf("%d|%s", userID, logDate)
}

func (stub *dayLogRepositoryStub) ListByUser(userID uint) ([]models.DailyLog, error) {
	return stub.ListByUserInRange(userID, "", "")
}

func (stub *dayLogRepositoryStub) ListByUserInRange(userID uint, from string, to string) ([]models.DailyLog, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	logs := make([]models.DailyLog, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if (from != "" && entry.LogDate < from) || (to != "" && entry.LogDate > to) {
			continue
		}
		logs = append(logs, entry)
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].LogDate < logs[j].LogDate
	})
	return logs, nil
}

func (stub *dayLogRepositoryStub) FindByUserAndDate(userID uint, logDate string) (models.DailyLog, bool, error) {
	entry, ok := stub.entries[dayLogKey(userID, logDate)]
	return entry, ok, nil
}

func (stub *dayLogRepositoryStub) Upsert(entry *models.DailyLog) error {
	if stub.upsertErr != nil {
		return stub.upsertErr
	}
	key := dayLogKey(entry.UserID, entry.LogDate)
	if existing, ok := stub.entries[key]; ok {
		entry.ID = existing.ID
	} else {
		entry.ID = stub.nextID
		stub.nextID++
	}
	for _, kind := range models.TagKinds {
		names := append([]string{}, entry.Tags(kind)...)
		sort.Strings(names)
		entry.SetTags(kind, names)
	}
	stub.entries[key] = *entry
	return nil
}

func (stub *dayLogRepositoryStub) DeleteByUserAndDate(userID uint, logDate string) (bool, error) {
	key := dayLogKey(userID, logDate)
	if _, ok := stub.entries[key]; !ok {
		return false, nil
	}
	delete(stub.entries, key)
	return true, nil
}

type periodRepositoryStub struct {
	periods   []models.Period
	nextID    uint
	createErr error
}

func newPeriodRepositoryStub(periods ...models.Period) *periodRepositoryStub {
	stub := &periodRepositoryStub{nextID: 1}
	for _, period := range periods {
		_ = stub.Create(&period)
	}
	return stub
}

func (stub *periodRepositoryStub) ListByUser(userID uint) ([]models.Period, error) {
	periods := make([]models.Period, 0)
	for _, period := range stub.periods {
		if period.UserID == userID {
			periods = append(periods, period)
		}
	}
	return periods, nil
}

func (stub *periodRepositoryStub) Create(period *models.Period) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	period.ID = stub.nextID
	stub.nextID++
	stub.periods = append(stub.periods, *period)
	return nil
}

func (stub *periodRepositoryStub) DeleteByIDForUser(periodID uint, userID uint) (bool, error) {
	for index, period := range stub.periods {
		if period.ID == periodID && period.UserID == userID {
			stub.periods = append(stub.periods[:index], stub.periods[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type userRepositoryStub struct {
	users   []models.User
	nextID  uint
	findErr error
}

func newUserRepositoryStub() *userRepositoryStub {
	return &userRepositoryStub{nextID: 1}
}

func (stub *userRepositoryStub) FindByID(userID uint) (models.User, bool, error) {
	if stub.findErr != nil {
		return models.User{}, false, stub.findErr
	}
	for _, user := range stub.users {
		if user.ID == userID {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *userRepositoryStub) FindByName(name string) (models.User, bool, error) {
	for _, user := range stub.users {
		if user.Name == name {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *userRepositoryStub) List() ([]models.User, error) {
	return append([]models.User{}, stub.users...), nil
}

func (stub *userRepositoryStub) Create(user *models.User) error {
	user.ID = stub.nextID
	stub.nextID++
	stub.users = append(stub.users, *user)
	return nil
}

func (stub *userRepositoryStub) EnsureByName(name string) (models.User, error) {
	if user, found, _ := stub.FindByName(name); found {
		return user, nil
	}
	user := models.User{Name: name}
	err := stub.Create(&user)
	return user, err
}

func intPointer(value int) *int {
	return &value
}

func stringPointer(value string) *string {
	return &value
}
