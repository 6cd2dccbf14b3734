package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	DailyLogs *DailyLogRepository
	Periods   *PeriodRepository
	Tags      *TagRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		DailyLogs: NewDailyLogRepository(database),
		Periods:   NewPeriodRepository(database),
		Tags:      NewTagRepository(database),
	}
}
