package models

type TagKind string

const (
	TagKindEmotions TagKind = "emotions"
	TagKindMoods    TagKind = "moods"
	TagKindSymptoms TagKind = "symptoms"
)

// TagKinds lists the vocabularies in the order they are persisted.
var TagKinds = []TagKind{TagKindEmotions, TagKindMoods, TagKindSymptoms}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

func ParseTagKind(raw string) (TagKind, bool) {
	for _, kind := range TagKinds {
		if string(kind) == raw {
			return kind, true
		}
	}
	return "", false
}

// Table is the vocabulary table for the kind.
func (kind TagKind) Table() string {
	return string(kind)
}

// JoinTable is the association table between daily_logs and the vocabulary.
func (kind TagKind) JoinTable() string {
	return "daily_log_" + string(kind)
}

// JoinColumn is the vocabulary foreign key column inside JoinTable.
func (kind TagKind) JoinColumn() string {
	switch kind {
	case TagKindEmotions:
		return "emotion_id"
	case TagKindMoods:
		return "mood_id"
	case TagKindSymptoms:
		return "symptom_id"
	default:
		return ""
	}
}
