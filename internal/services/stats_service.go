package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

var (
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrUnknownTagKind = errors.New("unknown tag kind")
)

type StatsLogReader interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
}

type StatsPeriodReader interface {
	ListByUser(userID uint) ([]models.Period, error)
}

// StatsService loads one user's rows and hands them to the analytics functions.
type StatsService struct {
	logs        StatsLogReader
	periods     StatsPeriodReader
	cycleLength int
}

func NewStatsService(logs StatsLogReader, periods StatsPeriodReader, cycleLength int) *StatsService {
	if cycleLength <= 0 {
		cycleLength = DefaultCycleLength
	}
	return &StatsService{
		logs:        logs,
		periods:     periods,
		cycleLength: cycleLength,
	}
}

func (service *StatsService) CycleLength() int {
	return service.cycleLength
}

// ResolveMetric maps an optional query value onto a rating column, defaulting to
// day_rating.
func ResolveMetric(raw string) (string, error) {
	metric := strings.ToLower(strings.TrimSpace(raw))
	if metric == "" {
		return models.RatingDay, nil
	}
	if metric == "mood" {
		return models.RatingDay, nil
	}
	if !models.IsRatingColumn(metric) {
		return "", ErrUnknownMetric
	}
	return metric, nil
}

func (service *StatsService) WeeklyTrend(userID uint, rawMetric string) (WeeklyTrend, error) {
	metric, err := ResolveMetric(rawMetric)
	if err != nil {
		return WeeklyTrend{}, err
	}
	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return WeeklyTrend{}, err
	}
	return WeeklyTrendFor(logs, metric), nil
}

func (service *StatsService) MoodByPhase(userID uint, rawMetric string) (PhaseSummary, error) {
	metric, err := ResolveMetric(rawMetric)
	if err != nil {
		return PhaseSummary{}, err
	}
	logs, periods, err := service.load(userID)
	if err != nil {
		return PhaseSummary{}, err
	}
	return MoodByPhaseFor(logs, periods, metric, service.cycleLength), nil
}

func (service *StatsService) FactorAverages(userID uint) (FactorSummary, error) {
	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return FactorSummary{}, err
	}
	return FactorAveragesFor(logs), nil
}

func (service *StatsService) PeriodMetrics(userID uint) (PeriodMetrics, error) {
	periods, err := service.periods.ListByUser(userID)
	if err != nil {
		return PeriodMetrics{}, err
	}
	return PeriodMetricsFor(periods), nil
}

func (service *StatsService) TagFrequencies(userID uint, rawKind string) (TagSummary, error) {
	kind, ok := models.ParseTagKind(strings.ToLower(strings.TrimSpace(rawKind)))
	if !ok {
		return TagSummary{}, ErrUnknownTagKind
	}
	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return TagSummary{}, err
	}
	return TagFrequenciesFor(logs, kind), nil
}

func (service *StatsService) MoodPatterns(userID uint) (PatternSummary, error) {
	logs, periods, err := service.load(userID)
	if err != nil {
		return PatternSummary{}, err
	}
	return MoodPatternsFor(logs, periods, service.cycleLength), nil
}

func (service *StatsService) load(userID uint) ([]models.DailyLog, []models.Period, error) {
	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	periods, err := service.periods.ListByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	return logs, periods, nil
}
