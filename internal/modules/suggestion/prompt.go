package suggestion

import (
	"strconv"
	"strings"

	types "github.com/yungbote/moodlog-backend/internal/domain"
)

const (
	notSpecified = "Not specified"
	notProvided  = "Not provided"
	noneRecorded = "None recorded"
)

// BuildPrompt renders the instruction sent upstream for one mood entry.
// Emotion labels are read from entry.Emotions in order.
func BuildPrompt(entry *types.MoodEntry) string {
	var b strings.Builder
	b.WriteString("As a mental health assistant, analyze the following mood entry and suggest 3 personalized activities ")
	b.WriteString("that would be beneficial for the person's mental health and well-being. ")
	b.WriteString("Consider their emotions, energy level, environment, and interests. ")
	b.WriteString("Each activity should be specific, actionable, and appropriate for their current state.\n\n")

	b.WriteString("Mood Entry Details:\n")
	line(&b, "Location", strOr(entry.Location, notSpecified))
	line(&b, "Comfort Environment", strOr(entry.ComfortEnvironment, notSpecified))
	line(&b, "Description", strOr(entry.Description, notProvided))
	energy := notSpecified
	if entry.EnergyLevel != nil {
		energy = strconv.Itoa(*entry.EnergyLevel)
	}
	line(&b, "Energy Level (1-5)", energy)
	line(&b, "Passion/Interest", strOr(entry.Passion, notSpecified))
	emotions := noneRecorded
	if labels := entry.EmotionLabels(); len(labels) > 0 {
		emotions = strings.Join(labels, ", ")
	}
	line(&b, "Current Emotions", emotions)

	b.WriteString("\nPlease respond with ONLY a JSON array containing exactly 3 activity objects. ")
	b.WriteString("Each object must have these exact fields:\n")
	b.WriteString("{\n")
	b.WriteString("  \"description\": \"string (detailed description of the activity, 50-150 characters)\",\n")
	b.WriteString("  \"type\": \"string (one of: mindfulness, physical, creative, social, self_care, breathing, gratitude)\",\n")
	b.WriteString("  \"duration\": number (estimated duration in minutes, between 5-60),\n")
	b.WriteString("  \"difficulty\": number (1-5, where 1 is very easy and 5 is very challenging),\n")
	b.WriteString("  \"priority\": number (1-5, where 1 is highest priority and 5 is lowest priority)\n")
	b.WriteString("}\n\n")
	b.WriteString("Respond with ONLY the JSON array, no additional text before or after.")
	return b.String()
}

func line(b *strings.Builder, name, value string) {
	b.WriteString("- ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func strOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
