package models

import "time"

const (
	MinRating = 1
	MaxRating = 10
)

const DateLayout = "2006-01-02"

type DailyLog struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	UserID           uint   `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date" json:"user_id"`
	LogDate          string `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date" json:"log_date"`
	DayRating        *int   `json:"day_rating"`
	Energy           *int   `json:"energy"`
	Sleep            *int   `json:"sleep"`
	Stress           *int   `json:"stress"`
	Exercise         *int   `json:"exercise"`
	Nutrition        *int   `json:"nutrition"`
	SocialConnection *int   `json:"social_connection"`
	JournalEntry     string `json:"journal_entry"`

	Emotions []string `gorm:"-" json:"emotions"`
	Moods    []string `gorm:"-" json:"moods"`
	Symptoms []string `gorm:"-" json:"symptoms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ratings returns the rating columns keyed by their storage name.
func (entry *DailyLog) Ratings() map[string]*int {
	return map[string]*int{
		RatingDay:              entry.DayRating,
		RatingEnergy:           entry.Energy,
		RatingSleep:            entry.Sleep,
		RatingStress:           entry.Stress,
		RatingExercise:         entry.Exercise,
		RatingNutrition:        entry.Nutrition,
		RatingSocialConnection: entry.SocialConnection,
	}
}

// Rating returns the named rating column, or nil when unset or unknown.
func (entry *DailyLog) Rating(name string) *int {
	return entry.Ratings()[name]
}

func (entry *DailyLog) Tags(kind TagKind) []string {
	switch kind {
	case TagKindEmotions:
		return entry.Emotions
	case TagKindMoods:
		return entry.Moods
	case TagKindSymptoms:
		return entry.Symptoms
	default:
		return nil
	}
}

func (entry *DailyLog) SetTags(kind TagKind, names []string) {
	switch kind {
	case TagKindEmotions:
		entry.Emotions = names
	case TagKindMoods:
		entry.Moods = names
	case TagKindSymptoms:
		entry.Symptoms = names
	}
}

const (
	RatingDay              = "day_rating"
	RatingEnergy           = "energy"
	RatingSleep            = "sleep"
	RatingStress           = "stress"
	RatingExercise         = "exercise"
	RatingNutrition        = "nutrition"
	RatingSocialConnection = "social_connection"
)

// RatingColumns lists every bounded rating column in display order.
var RatingColumns = []string{
	RatingDay,
	RatingEnergy,
	RatingSleep,
	RatingStress,
	RatingExercise,
	RatingNutrition,
	RatingSocialConnection,
}

func IsRatingColumn(name string) bool {
	for _, column := range RatingColumns {
		if column == name {
			return true
		}
	}
	return false
}
