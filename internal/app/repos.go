package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/moodlog-backend/internal/data/repos"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type Repos struct {
	User              repos.UserRepo
	UserToken         repos.UserTokenRepo
	Emotion           repos.EmotionRepo
	MoodEntry         repos.MoodEntryRepo
	SuggestedActivity repos.SuggestedActivityRepo
	SuggestionCallLog repos.SuggestionCallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		UserToken:         repos.NewUserTokenRepo(db, log),
		Emotion:           repos.NewEmotionRepo(db, log),
		MoodEntry:         repos.NewMoodEntryRepo(db, log),
		SuggestedActivity: repos.NewSuggestedActivityRepo(db, log),
		SuggestionCallLog: repos.NewSuggestionCallLogRepo(db, log),
	}
}
