package db

import (
	types "github.com/yungbote/moodlog-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// identity + auth
		&types.User{},
		&types.UserToken{},

		// mood journal
		&types.Emotion{},
		&types.MoodEntry{},
		&types.SuggestedActivity{},
		&types.SuggestionCallLog{},
	)
}
