package services

import (
	"strings"
	"unicode"
)

const NeutralMood = "neutral"

var moodKeywordFamilies = []struct {
	mood     string
	keywords []string
}{
	{mood: "anxious", keywords: []string{"anxious", "worried", "stressed", "nervous", "panic"}},
	{mood: "happy", keywords: []string{"happy", "joyful", "excited", "great", "amazing"}},
	{mood: "sad", keywords: []string{"sad", "down", "depressed", "low", "blue"}},
	{mood: "angry", keywords: []string{"angry", "frustrated", "annoyed", "mad", "irritated"}},
	{mood: "tired", keywords: []string{"tired", "exhausted", "drained", "sleepy", "fatigued"}},
}

// DetectMoods tags free text with every mood family that has a keyword among its
// words. Text matching no family yields NeutralMood.
func DetectMoods(text string) []string {
	words := make(map[string]struct{})
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		words[word] = struct{}{}
	}

	moods := make([]string, 0, len(moodKeywordFamilies))
	for _, family := range moodKeywordFamilies {
		for _, keyword := range family.keywords {
			if _, ok := words[keyword]; ok {
				moods = append(moods, family.mood)
				break
			}
		}
	}
	if len(moods) == 0 {
		return []string{NeutralMood}
	}
	return moods
}
