package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/cyclejournal/internal/db"
	"github.com/terraincognita07/cyclejournal/internal/logging"
	"github.com/terraincognita07/cyclejournal/internal/models"
	"github.com/terraincognita07/cyclejournal/internal/services"
	"gorm.io/gorm"
)

// journal bundles the services a one-shot command works with.
type journal struct {
	database *gorm.DB
	users    *services.UserService
	days     *services.DayService
	periods  *services.PeriodService
	stats    *services.StatsService
	export   *services.ExportService
	seeder   *services.SeedService
}

func openJournal(dbPath string, cycleLength int, logger *logging.Logger) (*journal, error) {
	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	repos := db.NewRepositories(database)
	days := services.NewDayService(repos.DailyLogs)
	periods := services.NewPeriodService(repos.Periods)
	return &journal{
		database: database,
		users:    services.NewUserService(repos.Users),
		days:     days,
		periods:  periods,
		stats:    services.NewStatsService(repos.DailyLogs, repos.Periods, cycleLength),
		export:   services.NewExportService(repos.DailyLogs),
		seeder:   services.NewSeedService(days, periods, cycleLength),
	}, nil
}

func (j *journal) close() error {
	return db.Close(j.database)
}

// findUser looks a user up by name; an empty name selects fallback, which is created
// when missing.
func (j *journal) findUser(name string, fallback string) (models.User, error) {
	if strings.TrimSpace(name) == "" {
		return j.users.EnsureUser(fallback)
	}
	user, err := j.users.FindByName(name)
	if errors.Is(err, services.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("user %s not found", strings.TrimSpace(name))
	}
	return user, err
}
