package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

const (
	DefaultSeedDays  = 90
	seedPeriodLength = 5
	maxSeedDays      = 730
	seedRandomSource = 20240101
)

var ErrInvalidSeedDays = errors.New("invalid seed days")

var seedMoodsByPhase = map[Phase][]string{
	PhaseMenstrual:  {"tired", "sad", "calm"},
	PhaseFollicular: {"happy", "calm", "energetic"},
	PhaseOvulatory:  {"happy", "energetic", "social"},
	PhaseLuteal:     {"anxious", "irritable", "tired"},
}

var seedSymptomsByPhase = map[Phase][]string{
	PhaseMenstrual:  {"cramps", "back pain"},
	PhaseFollicular: {},
	PhaseOvulatory:  {"bloating"},
	PhaseLuteal:     {"headache", "bloating", "food cravings"},
}

type SeedResult struct {
	Logs    int `json:"logs"`
	Periods int `json:"periods"`
}

// SeedService fills a user's journal with deterministic sample data.
type SeedService struct {
	days        *DayService
	periods     *PeriodService
	cycleLength int
}

func NewSeedService(days *DayService, periods *PeriodService, cycleLength int) *SeedService {
	if cycleLength <= 0 {
		cycleLength = DefaultCycleLength
	}
	return &SeedService{days: days, periods: periods, cycleLength: cycleLength}
}

// Seed writes one log per day for the dayCount days ending at end, plus a period at
// the start of every cycle. Re-running it overwrites the same dates and skips periods
// that already start on a seeded date.
func (service *SeedService) Seed(userID uint, end time.Time, dayCount int) (SeedResult, error) {
	if dayCount <= 0 || dayCount > maxSeedDays {
		return SeedResult{}, ErrInvalidSeedDays
	}
	random := rand.New(rand.NewSource(seedRandomSource))
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(dayCount - 1))

	periods, err := service.periods.ListPeriods(userID)
	if err != nil {
		return SeedResult{}, fmt.Errorf("load periods: %w", err)
	}
	existingStarts := make(map[string]struct{}, len(periods))
	for _, period := range periods {
		existingStarts[period.StartDate] = struct{}{}
	}

	result := SeedResult{}
	for cycleStart := start; !cycleStart.After(end); cycleStart = cycleStart.AddDate(0, 0, service.cycleLength) {
		if _, exists := existingStarts[cycleStart.Format(models.DateLayout)]; exists {
			continue
		}
		period, err := service.periods.RecordPeriod(userID, PeriodInput{
			StartDate: cycleStart.Format(models.DateLayout),
			EndDate:   cycleStart.AddDate(0, 0, seedPeriodLength-1).Format(models.DateLayout),
		})
		if err != nil {
			return result, fmt.Errorf("seed period: %w", err)
		}
		periods = append(periods, period)
		result.Periods++
	}

	calendar := newCycleCalendar(periods, service.cycleLength)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		phase := calendar.phase(day)
		moods := seedMoodsByPhase[phase]
		symptoms := seedSymptomsByPhase[phase]

		input := DayEntryInput{
			LogDate:          day.Format(models.DateLayout),
			DayRating:        seedRating(random, phaseBaseline(phase)),
			Energy:           seedRating(random, phaseBaseline(phase)),
			Stress:           seedRating(random, 11-phaseBaseline(phase)),
			Exercise:         seedRating(random, 5),
			Nutrition:        seedRating(random, 6),
			SocialConnection: seedRating(random, 6),
			JournalEntry:     fmt.Sprintf("Seeded entry for a %s day. sleep:%d", phase, 5+random.Intn(4)),
			Moods:            []string{moods[random.Intn(len(moods))]},
		}
		if len(symptoms) > 0 && random.Intn(2) == 0 {
			input.Symptoms = []string{symptoms[random.Intn(len(symptoms))]}
		}
		if _, err := service.days.SaveDayEntry(userID, input); err != nil {
			return result, fmt.Errorf("seed log %s: %w", input.LogDate, err)
		}
		result.Logs++
	}
	return result, nil
}

func phaseBaseline(phase Phase) int {
	switch phase {
	case PhaseMenstrual:
		return 4
	case PhaseFollicular:
		return 7
	case PhaseOvulatory:
		return 8
	default:
		return 5
	}
}

func seedRating(random *rand.Rand, baseline int) *int {
	value := baseline + random.Intn(3) - 1
	if value < models.MinRating {
		value = models.MinRating
	}
	if value > models.MaxRating {
		value = models.MaxRating
	}
	return &value
}
