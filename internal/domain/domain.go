package domain

import (
	"github.com/yungbote/moodlog-backend/internal/domain/auth"
	"github.com/yungbote/moodlog-backend/internal/domain/mood"
	"github.com/yungbote/moodlog-backend/internal/domain/user"
)

const (
	ComfortAlone   = mood.ComfortAlone
	ComfortInGroup = mood.ComfortInGroup

	ActivitySourceAI       = mood.SourceAI
	ActivitySourceFallback = mood.SourceFallback

	ActivityStatusPending   = mood.StatusPending
	ActivityStatusCompleted = mood.StatusCompleted

	SuggestionOutcomeAI       = mood.OutcomeAI
	SuggestionOutcomeMixed    = mood.OutcomeMixed
	SuggestionOutcomeFallback = mood.OutcomeFallback
)

type (
	User      = user.User
	UserToken = auth.UserToken

	Emotion           = mood.Emotion
	MoodEntry         = mood.MoodEntry
	SuggestedActivity = mood.SuggestedActivity
	SuggestionCallLog = mood.SuggestionCallLog
)
