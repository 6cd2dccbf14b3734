package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/cyclejournal/internal/models"
)

const (
	MaxJournalEntryLength = 5000
	MaxTagNameLength      = 64
	MaxTagsPerKind        = 64
)

var (
	ErrInvalidLogDate   = errors.New("invalid log date")
	ErrRatingOutOfRange = errors.New("rating out of range")
	ErrTooManyTags      = errors.New("too many tags")
)

// RatingError names the rating that failed validation.
type RatingError struct {
	Field string
	Value int
}

func (err *RatingError) Error() string {
	return fmt.Sprintf("%s: %s must be between %d and %d, got %d", ErrRatingOutOfRange, err.Field, models.MinRating, models.MaxRating, err.Value)
}

func (err *RatingError) Unwrap() error {
	return ErrRatingOutOfRange
}

// TagLimitError names the tag list holding more than MaxTagsPerKind distinct names.
type TagLimitError struct {
	Field string
	Count int
}

func (err *TagLimitError) Error() string {
	return fmt.Sprintf("%s: %s has %d distinct names, at most %d allowed", ErrTooManyTags, err.Field, err.Count, MaxTagsPerKind)
}

func (err *TagLimitError) Unwrap() error {
	return ErrTooManyTags
}

type DayEntryInput struct {
	LogDate          string
	DayRating        *int
	Energy           *int
	Sleep            *int
	Stress           *int
	Exercise         *int
	Nutrition        *int
	SocialConnection *int
	JournalEntry     string
	Emotions         []string
	Moods            []string
	Symptoms         []string
	AutoTagMoods     bool
}

func (input DayEntryInput) ratings() map[string]*int {
	return map[string]*int{
		models.RatingDay:              input.DayRating,
		models.RatingEnergy:           input.Energy,
		models.RatingSleep:            input.Sleep,
		models.RatingStress:           input.Stress,
		models.RatingExercise:         input.Exercise,
		models.RatingNutrition:        input.Nutrition,
		models.RatingSocialConnection: input.SocialConnection,
	}
}

// NormalizeDayEntryInput validates the date and ratings, trims the journal and
// canonicalizes every tag list. Moods are detected from the journal when requested
// and none were supplied.
func NormalizeDayEntryInput(input DayEntryInput) (DayEntryInput, error) {
	logDate, err := ParseLogDate(input.LogDate)
	if err != nil {
		return input, err
	}
	input.LogDate = logDate.Format(models.DateLayout)

	for _, column := range models.RatingColumns {
		value := input.ratings()[column]
		if value != nil && (*value < models.MinRating || *value > models.MaxRating) {
			return input, &RatingError{Field: column, Value: *value}
		}
	}

	input.JournalEntry = TrimJournalEntry(input.JournalEntry)
	input.Emotions = NormalizeTagNames(input.Emotions)
	input.Moods = NormalizeTagNames(input.Moods)
	input.Symptoms = NormalizeTagNames(input.Symptoms)
	for _, list := range []struct {
		kind  models.TagKind
		names []string
	}{
		{kind: models.TagKindEmotions, names: input.Emotions},
		{kind: models.TagKindMoods, names: input.Moods},
		{kind: models.TagKindSymptoms, names: input.Symptoms},
	} {
		if len(list.names) > MaxTagsPerKind {
			return input, &TagLimitError{Field: string(list.kind), Count: len(list.names)}
		}
	}

	if input.AutoTagMoods && len(input.Moods) == 0 {
		input.Moods = DetectMoods(input.JournalEntry)
	}
	return input, nil
}

func ParseLogDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(models.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidLogDate
	}
	return parsed, nil
}

func TrimJournalEntry(value string) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) <= MaxJournalEntryLength {
		return value
	}
	runes := []rune(value)
	return string(runes[:MaxJournalEntryLength])
}

// NormalizeTagNames trims, collapses inner whitespace, lower-cases and dedupes
// names, keeping first-seen order. Empty names are dropped and long ones cut.
func NormalizeTagNames(names []string) []string {
	normalized := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.Join(strings.Fields(name), " "))
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > MaxTagNameLength {
			name = strings.TrimSpace(string([]rune(name)[:MaxTagNameLength]))
		}
		if _, duplicate := seen[name]; duplicate {
			continue
		}
		seen[name] = struct{}{}
		normalized = append(normalized, name)
	}
	return normalized
}
