package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/terraincognita07/cyclejournal/internal/models"
)

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return day
}

func TestPhaseForDateBoundaries(t *testing.T) {
	periods := []models.Period{
		{StartDate: "2024-03-01", EndDate: stringPointer("2024-03-05")},
	}

	tests := []struct {
		day  string
		want Phase
	}{
		{day: "2024-02-28", want: PhaseUnknown},
		{day: "2024-03-01", want: PhaseMenstrual},
		{day: "2024-03-05", want: PhaseMenstrual},
		{day: "2024-03-06", want: PhaseFollicular},
		{day: "2024-03-07", want: PhaseFollicular},
		{day: "2024-03-08", want: PhaseOvulatory},
		{day: "2024-03-14", want: PhaseOvulatory},
		{day: "2024-03-15", want: PhaseLuteal},
		{day: "2024-03-28", want: PhaseLuteal},
		{day: "2024-03-29", want: PhaseFollicular},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, PhaseForDate(mustDay(t, tc.day), periods, 28), tc.day)
	}
}

func TestPhaseForDateOpenPeriodCoversStartOnly(t *testing.T) {
	periods := []models.Period{{StartDate: "2024-03-01"}}

	assert.Equal(t, PhaseMenstrual, PhaseForDate(mustDay(t, "2024-03-01"), periods, 28))
	assert.Equal(t, PhaseFollicular, PhaseForDate(mustDay(t, "2024-03-02"), periods, 28))
}

func TestPhaseForDateUsesLatestStartAndCycleLength(t *testing.T) {
	periods := []models.Period{
		{StartDate: "2024-04-01"},
		{StartDate: "2024-03-01"},
	}

	assert.Equal(t, PhaseOvulatory, PhaseForDate(mustDay(t, "2024-04-10"), periods, 28))
	assert.Equal(t, PhaseFollicular, PhaseForDate(mustDay(t, "2024-04-22"), periods, 21))
	assert.Equal(t, PhaseFollicular, PhaseForDate(mustDay(t, "2024-03-30"), periods, 0))
}

func TestCycleDayIsOneBased(t *testing.T) {
	calendar := newCycleCalendar([]models.Period{{StartDate: "2024-03-01"}}, 28)

	assert.Equal(t, 0, calendar.cycleDay(mustDay(t, "2024-02-29")))
	assert.Equal(t, 1, calendar.cycleDay(mustDay(t, "2024-03-01")))
	assert.Equal(t, 40, calendar.cycleDay(mustDay(t, "2024-04-09")))
}
