package services

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestExportServiceBuildCSVRecords(t *testing.T) {
	logs := newDayLogRepositoryStub()
	days := NewDayService(logs)
	if _, err := days.SaveDayEntry(1, DayEntryInput{
		LogDate:      "2024-03-02",
		DayRating:    intPointer(7),
		Sleep:        intPointer(5),
		JournalEntry: "quiet day",
		Moods:        []string{"calm", "content"},
		Symptoms:     []string{"cramps"},
	}); err != nil {
		t.Fatalf("save log: %v", err)
	}

	records, err := NewExportService(logs).BuildCSVRecords(1, ExportRange{})
	if err != nil {
		t.Fatalf("build records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	want := []string{"2024-03-02", "7", "", "5", "", "", "", "", "calm; content", "", "cramps", "quiet day"}
	if !reflect.DeepEqual(records[0], want) {
		t.Fatalf("unexpected record\n got: %#v\nwant: %#v", records[0], want)
	}
	if len(records[0]) != len(ExportCSVHeaders) {
		t.Fatalf("expected %d columns, got %d", len(ExportCSVHeaders), len(records[0]))
	}
}

func TestExportServiceBuildSummary(t *testing.T) {
	logs := newDayLogRepositoryStub()
	service := NewExportService(logs)

	empty, err := service.BuildSummary(1, ExportRange{})
	if err != nil {
		t.Fatalf("empty summary: %v", err)
	}
	if empty.HasData || empty.TotalEntries != 0 {
		t.Fatalf("expected empty summary, got %#v", empty)
	}

	days := NewDayService(logs)
	for _, day := range []string{"2024-03-05", "2024-02-01", "2024-03-01"} {
		if _, err := days.SaveDayEntry(1, DayEntryInput{LogDate: day}); err != nil {
			t.Fatalf("save %s: %v", day, err)
		}
	}
	summary, err := service.BuildSummary(1, ExportRange{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalEntries != 3 || summary.DateFrom != "2024-02-01" || summary.DateTo != "2024-03-05" {
		t.Fatalf("unexpected summary %#v", summary)
	}
}

func TestExportServiceRespectsRange(t *testing.T) {
	logs := newDayLogRepositoryStub()
	days := NewDayService(logs)
	for _, day := range []string{"2024-02-27", "2024-03-01", "2024-03-04", "2024-03-09"} {
		if _, err := days.SaveDayEntry(1, DayEntryInput{LogDate: day, Energy: intPointer(4)}); err != nil {
			t.Fatalf("save %s: %v", day, err)
		}
	}
	service := NewExportService(logs)
	exportRange := ExportRange{From: "2024-03-01", To: "2024-03-04"}

	summary, err := service.BuildSummary(1, exportRange)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalEntries != 2 || summary.DateFrom != "2024-03-01" || summary.DateTo != "2024-03-04" {
		t.Fatalf("unexpected ranged summary %#v", summary)
	}

	records, err := service.BuildCSVRecords(1, exportRange)
	if err != nil {
		t.Fatalf("csv records: %v", err)
	}
	if len(records) != 2 || records[0][0] != "2024-03-01" {
		t.Fatalf("unexpected ranged records %#v", records)
	}

	entries, err := service.BuildJSONEntries(1, ExportRange{From: "2024-03-05"})
	if err != nil {
		t.Fatalf("json entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Date != "2024-03-09" {
		t.Fatalf("unexpected json entries %#v", entries)
	}
}

func TestExportServiceBuildJSONEntries(t *testing.T) {
	logs := newDayLogRepositoryStub()
	if _, err := NewDayService(logs).SaveDayEntry(1, DayEntryInput{
		LogDate:      "2024-03-02",
		Stress:       intPointer(8),
		JournalEntry: "deadline",
		Emotions:     []string{"anxious"},
	}); err != nil {
		t.Fatalf("save log: %v", err)
	}

	entries, err := NewExportService(logs).BuildJSONEntries(1, ExportRange{})
	if err != nil {
		t.Fatalf("json entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Stress == nil || *entry.Stress != 8 || entry.DayRating != nil {
		t.Fatalf("unexpected ratings %#v", entry)
	}
	if !reflect.DeepEqual(entry.Emotions, []string{"anxious"}) || entry.Moods == nil || len(entry.Moods) != 0 {
		t.Fatalf("unexpected tags %#v", entry)
	}
	if entry.JournalEntry != "deadline" {
		t.Fatalf("unexpected journal %q", entry.JournalEntry)
	}
}

func TestParseExportRange(t *testing.T) {
	exportRange, err := ParseExportRange(" 2024-03-01 ", "2024-03-31", nil)
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}
	if exportRange.From != "2024-03-01" || exportRange.To != "2024-03-31" {
		t.Fatalf("unexpected range %#v", exportRange)
	}

	open, err := ParseExportRange("", "", time.UTC)
	if err != nil || open != (ExportRange{}) {
		t.Fatalf("expected open range, got %#v err=%v", open, err)
	}

	cases := []struct {
		from string
		to   string
		want error
	}{
		{from: "2024-13-01", want: ErrExportFromDateInvalid},
		{to: "yesterday", want: ErrExportToDateInvalid},
		{from: "2024-03-02", to: "2024-03-01", want: ErrExportRangeInvalid},
	}
	for _, tc := range cases {
		if _, err := ParseExportRange(tc.from, tc.to, time.UTC); !errors.Is(err, tc.want) {
			t.Fatalf("ParseExportRange(%q, %q) error = %v, want %v", tc.from, tc.to, err, tc.want)
		}
	}
}
