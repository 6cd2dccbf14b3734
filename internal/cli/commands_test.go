package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/cyclejournal/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func openTestJournal(t *testing.T) (*journal, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "cyclejournal-cli-test.db")
	j, err := openJournal(dbPath, services.DefaultCycleLength, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = j.close()
	})
	return j, dbPath
}

func TestResetRequiresConfirmation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reset.db")
	var out bytes.Buffer

	err := RunResetCommand(dbPath, false, &out)
	require.ErrorIs(t, err, errResetNotConfirmed)
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "unconfirmed reset must not touch the database")
}

func TestResetDropsJournalData(t *testing.T) {
	j, dbPath := openTestJournal(t)
	user, err := j.users.CreateUser("alex")
	require.NoError(t, err)
	_, err = j.days.SaveDayEntry(user.ID, services.DayEntryInput{LogDate: "2024-05-01", Moods: []string{"calm"}})
	require.NoError(t, err)
	require.NoError(t, j.close())

	var out bytes.Buffer
	require.NoError(t, RunResetCommand(dbPath, true, &out))
	assert.Contains(t, out.String(), "Database reset successful")

	reopened, err := openJournal(dbPath, services.DefaultCycleLength, nil)
	require.NoError(t, err)
	defer reopened.close()

	users, err := reopened.users.ListUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
	var moods int64
	require.NoError(t, reopened.database.Table("moods").Count(&moods).Error)
	assert.Zero(t, moods)
}

func TestMigrateListsAppliedMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	var out bytes.Buffer

	require.NoError(t, RunMigrateCommand(dbPath, &out))
	assert.Contains(t, out.String(), "0001")
	assert.Contains(t, out.String(), "migrations applied")
}

func TestUserCommands(t *testing.T) {
	j, _ := openTestJournal(t)
	var out bytes.Buffer

	require.NoError(t, runUserAdd(j, "alex", &out))
	assert.Contains(t, out.String(), "Created user alex")

	err := runUserAdd(j, "alex", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out.Reset()
	require.NoError(t, runUserList(j, &out))
	assert.Contains(t, out.String(), "alex")

	_, err = j.findUser("nobody", "default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user nobody not found")

	fallback, err := j.findUser("", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", fallback.Name)
}

func TestPeriodCommands(t *testing.T) {
	j, _ := openTestJournal(t)
	user, err := j.users.EnsureUser("default")
	require.NoError(t, err)
	var out bytes.Buffer

	require.NoError(t, runPeriodList(j, user.ID, &out))
	assert.Contains(t, out.String(), services.MessageNoPeriods)

	err = runPeriodAdd(j, user.ID, services.PeriodInput{StartDate: "2024-05-05", EndDate: "2024-05-01"}, &out)
	require.EqualError(t, err, "end date is before start date")
	err = runPeriodAdd(j, user.ID, services.PeriodInput{StartDate: "May 1"}, &out)
	require.EqualError(t, err, "dates must use YYYY-MM-DD")

	out.Reset()
	require.NoError(t, runPeriodAdd(j, user.ID, services.PeriodInput{StartDate: "2024-05-01"}, &out))
	assert.Contains(t, out.String(), "starting 2024-05-01")

	out.Reset()
	require.NoError(t, runPeriodList(j, user.ID, &out))
	assert.Contains(t, out.String(), "2024-05-01")
	assert.Contains(t, out.String(), "ongoing")
}

func TestTokenCommand(t *testing.T) {
	var out bytes.Buffer

	err := runToken(services.NewTokenService("", 0), 1, &out)
	require.EqualError(t, err, "SECRET_KEY must be set to issue tokens")

	tokens := services.NewTokenService(testSecretKey, time.Hour)
	require.NoError(t, runToken(tokens, 7, &out))

	userID, err := tokens.Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestSeedAndReportWriteCharts(t *testing.T) {
	j, _ := openTestJournal(t)
	user, err := j.users.EnsureUser("default")
	require.NoError(t, err)
	var out bytes.Buffer

	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, runSeed(j, user.ID, user.Name, end, 60, &out))
	assert.Contains(t, out.String(), "Seeded 60 logs and 3 periods for default")

	outDir := filepath.Join(t.TempDir(), "report")
	out.Reset()
	require.NoError(t, runReport(j, user, "", outDir, &out))

	report := out.String()
	assert.Contains(t, report, "Journal report for default")
	assert.Contains(t, report, "60")
	assert.Contains(t, report, "menstrual")
	for _, name := range []string{"weekly_trend.png", "phase_mood.png", "factors.png", "period_lengths.png", "period_gaps.png"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestReportWithoutDataSkipsCharts(t *testing.T) {
	j, _ := openTestJournal(t)
	user, err := j.users.EnsureUser("empty")
	require.NoError(t, err)
	var out bytes.Buffer

	outDir := filepath.Join(t.TempDir(), "report")
	require.NoError(t, runReport(j, user, "", outDir, &out))
	assert.Contains(t, out.String(), services.MessageNoLogs)
	assert.Contains(t, out.String(), services.MessageNoPeriods)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = runReport(j, user, "height", outDir, &out)
	require.Error(t, err)
}

func TestReportOnlyLogsStillWritesTrend(t *testing.T) {
	j, _ := openTestJournal(t)
	user, err := j.users.EnsureUser("default")
	require.NoError(t, err)
	_, err = j.days.SaveDayEntry(user.ID, services.DayEntryInput{LogDate: "2024-05-01", DayRating: intPointer(6), Moods: []string{"calm"}})
	require.NoError(t, err)
	var out bytes.Buffer

	outDir := t.TempDir()
	require.NoError(t, runReport(j, user, "", outDir, &out))
	assert.FileExists(t, filepath.Join(outDir, "weekly_trend.png"))
	assert.NoFileExists(t, filepath.Join(outDir, "phase_mood.png"))
	assert.Contains(t, out.String(), services.MessageInsufficientData)
	assert.Contains(t, out.String(), "calm (1)")
}

func intPointer(value int) *int {
	return &value
}
