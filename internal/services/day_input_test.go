package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

func TestNormalizeDayEntryInputRejectsInvalidDate(t *testing.T) {
	for _, raw := range []string{"", "2024-13-01", "2024-1-5", "05/01/2024", "2024-02-30"} {
		_, err := NormalizeDayEntryInput(DayEntryInput{LogDate: raw})
		if !errors.Is(err, ErrInvalidLogDate) {
			t.Fatalf("expected ErrInvalidLogDate for %q, got %v", raw, err)
		}
	}
}

func TestNormalizeDayEntryInputRejectsOutOfRangeRating(t *testing.T) {
	_, err := NormalizeDayEntryInput(DayEntryInput{LogDate: "2024-05-01", Sleep: intPointer(11)})
	if !errors.Is(err, ErrRatingOutOfRange) {
		t.Fatalf("expected ErrRatingOutOfRange, got %v", err)
	}
	var ratingErr *RatingError
	if !errors.As(err, &ratingErr) {
		t.Fatalf("expected *RatingError, got %T", err)
	}
	if ratingErr.Field != models.RatingSleep || ratingErr.Value != 11 {
		t.Fatalf("unexpected rating error %#v", ratingErr)
	}

	_, err = NormalizeDayEntryInput(DayEntryInput{LogDate: "2024-05-01", DayRating: intPointer(0)})
	if !errors.Is(err, ErrRatingOutOfRange) {
		t.Fatalf("expected ErrRatingOutOfRange for 0, got %v", err)
	}
}

func TestNormalizeDayEntryInputAcceptsBoundaryRatings(t *testing.T) {
	normalized, err := NormalizeDayEntryInput(DayEntryInput{
		LogDate:   " 2024-05-01 ",
		DayRating: intPointer(models.MinRating),
		Energy:    intPointer(models.MaxRating),
	})
	if err != nil {
		t.Fatalf("NormalizeDayEntryInput() unexpected error: %v", err)
	}
	if normalized.LogDate != "2024-05-01" {
		t.Fatalf("expected trimmed date, got %q", normalized.LogDate)
	}
}

func TestNormalizeDayEntryInputTrimsJournal(t *testing.T) {
	normalized, err := NormalizeDayEntryInput(DayEntryInput{
		LogDate:      "2024-05-01",
		JournalEntry: strings.Repeat("é", MaxJournalEntryLength+20),
	})
	if err != nil {
		t.Fatalf("NormalizeDayEntryInput() unexpected error: %v", err)
	}
	if got := utf8.RuneCountInString(normalized.JournalEntry); got != MaxJournalEntryLength {
		t.Fatalf("expected journal length %d, got %d", MaxJournalEntryLength, got)
	}
}

func TestNormalizeDayEntryInputDetectsMoodsOnlyWhenRequested(t *testing.T) {
	normalized, err := NormalizeDayEntryInput(DayEntryInput{
		LogDate:      "2024-05-01",
		JournalEntry: "Felt exhausted and a bit worried.",
		AutoTagMoods: true,
	})
	if err != nil {
		t.Fatalf("NormalizeDayEntryInput() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(normalized.Moods, []string{"anxious", "tired"}) {
		t.Fatalf("expected detected moods, got %#v", normalized.Moods)
	}

	normalized, err = NormalizeDayEntryInput(DayEntryInput{
		LogDate:      "2024-05-01",
		JournalEntry: "Felt exhausted and a bit worried.",
	})
	if err != nil {
		t.Fatalf("NormalizeDayEntryInput() unexpected error: %v", err)
	}
	if len(normalized.Moods) != 0 {
		t.Fatalf("expected no moods without auto tagging, got %#v", normalized.Moods)
	}

	normalized, err = NormalizeDayEntryInput(DayEntryInput{
		LogDate:      "2024-05-01",
		JournalEntry: "Felt exhausted.",
		Moods:        []string{"Calm"},
		AutoTagMoods: true,
	})
	if err != nil {
		t.Fatalf("NormalizeDayEntryInput() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(normalized.Moods, []string{"calm"}) {
		t.Fatalf("expected explicit moods to win, got %#v", normalized.Moods)
	}
}

func TestNormalizeTagNames(t *testing.T) {
	got := NormalizeTagNames([]string{"  Back   Pain ", "back pain", "", "   ", "Cramps", strings.Repeat("a", MaxTagNameLength+5)})
	want := []string{"back pain", "cramps", strings.Repeat("a", MaxTagNameLength)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeTagNames() = %#v, want %#v", got, want)
	}

	if empty := NormalizeTagNames(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestNormalizeDayEntryInputRejectsTooManyTags(t *testing.T) {
	emotions := make([]string, 0, MaxTagsPerKind+1)
	for index := 0; index <= MaxTagsPerKind; index++ {
		emotions = append(emotions, fmt.Sprintf("emotion %d", index))
	}

	_, err := NormalizeDayEntryInput(DayEntryInput{LogDate: "2024-05-01", Emotions: emotions})
	if !errors.Is(err, ErrTooManyTags) {
		t.Fatalf("expected ErrTooManyTags, got %v", err)
	}
	var limitErr *TagLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected *TagLimitError, got %T", err)
	}
	if limitErr.Field != string(models.TagKindEmotions) || limitErr.Count != MaxTagsPerKind+1 {
		t.Fatalf("unexpected tag limit error %#v", limitErr)
	}
}

func TestNormalizeDayEntryInputCountsTagsAfterDedup(t *testing.T) {
	moods := make([]string, 0, MaxTagsPerKind*2)
	for index := 0; index < MaxTagsPerKind; index++ {
		name := fmt.Sprintf("mood %d", index)
		moods = append(moods, name, strings.ToUpper(name))
	}

	normalized, err := NormalizeDayEntryInput(DayEntryInput{LogDate: "2024-05-01", Moods: moods})
	if err != nil {
		t.Fatalf("expected duplicates to collapse under the limit, got %v", err)
	}
	if len(normalized.Moods) != MaxTagsPerKind {
		t.Fatalf("expected %d moods, got %d", MaxTagsPerKind, len(normalized.Moods))
	}
}
