package services

import (
	"strconv"
	"strings"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

const exportTagSeparator = "; "

var ExportCSVHeaders = []string{
	"Date",
	"Day rating",
	"Energy",
	"Sleep",
	"Stress",
	"Exercise",
	"Nutrition",
	"Social connection",
	"Moods",
	"Emotions",
	"Symptoms",
	"Journal",
}

type ExportLogReader interface {
	ListByUserInRange(userID uint, from string, to string) ([]models.DailyLog, error)
}

type ExportService struct {
	logs ExportLogReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

type ExportJSONEntry struct {
	Date             string   `json:"date"`
	DayRating        *int     `json:"day_rating"`
	Energy           *int     `json:"energy"`
	Sleep            *int     `json:"sleep"`
	Stress           *int     `json:"stress"`
	Exercise         *int     `json:"exercise"`
	Nutrition        *int     `json:"nutrition"`
	SocialConnection *int     `json:"social_connection"`
	Moods            []string `json:"moods"`
	Emotions         []string `json:"emotions"`
	Symptoms         []string `json:"symptoms"`
	JournalEntry     string   `json:"journal_entry"`
}

func NewExportService(logs ExportLogReader) *ExportService {
	return &ExportService{logs: logs}
}

func (service *ExportService) BuildSummary(userID uint, exportRange ExportRange) (ExportSummary, error) {
	logs, err := service.logs.ListByUserInRange(userID, exportRange.From, exportRange.To)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(logs) == 0 {
		return ExportSummary{}, nil
	}

	first := logs[0].LogDate
	last := logs[0].LogDate
	for _, entry := range logs[1:] {
		if entry.LogDate < first {
			first = entry.LogDate
		}
		if entry.LogDate > last {
			last = entry.LogDate
		}
	}
	return ExportSummary{
		TotalEntries: len(logs),
		HasData:      true,
		DateFrom:     first,
		DateTo:       last,
	}, nil
}

func (service *ExportService) BuildJSONEntries(userID uint, exportRange ExportRange) ([]ExportJSONEntry, error) {
	logs, err := service.logs.ListByUserInRange(userID, exportRange.From, exportRange.To)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportJSONEntry, 0, len(logs))
	for _, entry := range logs {
		entries = append(entries, ExportJSONEntry{
			Date:             entry.LogDate,
			DayRating:        entry.DayRating,
			Energy:           entry.Energy,
			Sleep:            entry.Sleep,
			Stress:           entry.Stress,
			Exercise:         entry.Exercise,
			Nutrition:        entry.Nutrition,
			SocialConnection: entry.SocialConnection,
			Moods:            nonNilTags(entry.Moods),
			Emotions:         nonNilTags(entry.Emotions),
			Symptoms:         nonNilTags(entry.Symptoms),
			JournalEntry:     entry.JournalEntry,
		})
	}
	return entries, nil
}

// BuildCSVRecords returns one record per log in ExportCSVHeaders order; unset
// ratings are empty cells.
func (service *ExportService) BuildCSVRecords(userID uint, exportRange ExportRange) ([][]string, error) {
	logs, err := service.logs.ListByUserInRange(userID, exportRange.From, exportRange.To)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(logs))
	for _, entry := range logs {
		record := make([]string, 0, len(ExportCSVHeaders))
		record = append(record, entry.LogDate)
		for _, column := range models.RatingColumns {
			record = append(record, csvRating(entry.Rating(column)))
		}
		record = append(record,
			strings.Join(entry.Moods, exportTagSeparator),
			strings.Join(entry.Emotions, exportTagSeparator),
			strings.Join(entry.Symptoms, exportTagSeparator),
			entry.JournalEntry,
		)
		records = append(records, record)
	}
	return records, nil
}

func csvRating(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func nonNilTags(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
