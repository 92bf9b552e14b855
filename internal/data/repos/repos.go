package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/moodlog-backend/internal/data/repos/auth"
	"github.com/yungbote/moodlog-backend/internal/data/repos/mood"
	"github.com/yungbote/moodlog-backend/internal/data/repos/user"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type EmotionRepo = mood.EmotionRepo
type MoodEntryRepo = mood.MoodEntryRepo
type SuggestedActivityRepo = mood.SuggestedActivityRepo
type SuggestionCallLogRepo = mood.SuggestionCallLogRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewEmotionRepo(db *gorm.DB, baseLog *logger.Logger) EmotionRepo {
	return mood.NewEmotionRepo(db, baseLog)
}
func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	return mood.NewMoodEntryRepo(db, baseLog)
}
func NewSuggestedActivityRepo(db *gorm.DB, baseLog *logger.Logger) SuggestedActivityRepo {
	return mood.NewSuggestedActivityRepo(db, baseLog)
}
func NewSuggestionCallLogRepo(db *gorm.DB, baseLog *logger.Logger) SuggestionCallLogRepo {
	return mood.NewSuggestionCallLogRepo(db, baseLog)
}
