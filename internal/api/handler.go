package api

import (
	"fmt"
	"time"

	"github.com/terraincognita07/cyclejournal/internal/charts"
	"github.com/terraincognita07/cyclejournal/internal/db"
	"github.com/terraincognita07/cyclejournal/internal/logging"
	"github.com/terraincognita07/cyclejournal/internal/models"
	"github.com/terraincognita07/cyclejournal/internal/services"
	"gorm.io/gorm"
)

type Settings struct {
	SecretKey    string
	AuthRequired bool
	DefaultUser  string
	CycleLength  int
	Location     *time.Location
}

type TagLister interface {
	ListByKind(kind models.TagKind) ([]models.Tag, error)
}

type Handler struct {
	logger        *logging.Logger
	location      *time.Location
	authRequired  bool
	defaultUserID uint

	users   *services.UserService
	days    *services.DayService
	periods *services.PeriodService
	stats   *services.StatsService
	export  *services.ExportService
	tokens  *services.TokenService
	tags    TagLister
	charts  *charts.Renderer
}

// NewHandler wires repositories and services around database and makes sure the
// default user exists.
func NewHandler(database *gorm.DB, settings Settings, logger *logging.Logger) (*Handler, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	location := settings.Location
	if location == nil {
		location = time.UTC
	}

	repos := db.NewRepositories(database)
	users := services.NewUserService(repos.Users)
	defaultUser, err := users.EnsureUser(settings.DefaultUser)
	if err != nil {
		return nil, fmt.Errorf("ensure default user: %w", err)
	}

	renderer, err := charts.NewRenderer(charts.Options{})
	if err != nil {
		return nil, err
	}

	return &Handler{
		logger:        logger,
		location:      location,
		authRequired:  settings.AuthRequired,
		defaultUserID: defaultUser.ID,
		users:         users,
		days:          services.NewDayService(repos.DailyLogs),
		periods:       services.NewPeriodService(repos.Periods),
		stats:         services.NewStatsService(repos.DailyLogs, repos.Periods, settings.CycleLength),
		export:        services.NewExportService(repos.DailyLogs),
		tokens:        services.NewTokenService(settings.SecretKey, services.DefaultTokenTTL),
		tags:          repos.Tags,
		charts:        renderer,
	}, nil
}
