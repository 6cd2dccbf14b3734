package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/cyclejournal/internal/models"
)

func TestResolveMetric(t *testing.T) {
	metric, err := ResolveMetric("")
	require.NoError(t, err)
	assert.Equal(t, models.RatingDay, metric)

	metric, err = ResolveMetric(" Sleep ")
	require.NoError(t, err)
	assert.Equal(t, models.RatingSleep, metric)

	metric, err = ResolveMetric("mood")
	require.NoError(t, err)
	assert.Equal(t, models.RatingDay, metric)

	_, err = ResolveMetric("journal_entry")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestStatsServiceLoadsOnlyTheUsersRows(t *testing.T) {
	logs := newDayLogRepositoryStub()
	days := NewDayService(logs)
	_, err := days.SaveDayEntry(1, DayEntryInput{LogDate: "2024-03-02", DayRating: intPointer(3), Moods: []string{"sad"}})
	require.NoError(t, err)
	_, err = days.SaveDayEntry(2, DayEntryInput{LogDate: "2024-03-02", DayRating: intPointer(9), Moods: []string{"happy"}})
	require.NoError(t, err)

	periods := newPeriodRepositoryStub(models.Period{UserID: 1, StartDate: "2024-03-01"})
	service := NewStatsService(logs, periods, 0)
	assert.Equal(t, DefaultCycleLength, service.CycleLength())

	weekly, err := service.WeeklyTrend(1, "")
	require.NoError(t, err)
	require.True(t, weekly.HasData)
	assert.InDelta(t, 3.0, *weekly.Points[0].Mean, 1e-9)

	phases, err := service.MoodByPhase(2, "")
	require.NoError(t, err)
	assert.False(t, phases.HasData, "user 2 has no periods")

	tags, err := service.TagFrequencies(1, "MOODS")
	require.NoError(t, err)
	assert.Equal(t, []TagCount{{Name: "sad", Count: 1}}, tags.Tags)

	_, err = service.TagFrequencies(1, "colors")
	assert.ErrorIs(t, err, ErrUnknownTagKind)

	_, err = service.WeeklyTrend(1, "bogus")
	assert.ErrorIs(t, err, ErrUnknownMetric)

	patterns, err := service.MoodPatterns(1)
	require.NoError(t, err)
	assert.Equal(t, []MoodPattern{{CycleDay: 2, Mood: "sad", Count: 1}}, patterns.Patterns)
}

func TestStatsServicePropagatesStorageErrors(t *testing.T) {
	logs := newDayLogRepositoryStub()
	logs.listErr = errors.New("locked")
	service := NewStatsService(logs, newPeriodRepositoryStub(), 28)

	_, err := service.FactorAverages(1)
	assert.Error(t, err)
	_, err = service.MoodPatterns(1)
	assert.Error(t, err)
}
