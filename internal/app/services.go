package app

import (
	"gorm.io/gorm"

	dataagg "github.com/yungbote/moodlog-backend/internal/data/aggregates"
	"github.com/yungbote/moodlog-backend/internal/modules/suggestion"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
	"github.com/yungbote/moodlog-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Emotion   services.EmotionService
	MoodEntry services.MoodEntryService
	Activity  services.ActivityService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	tx := dataagg.NewGormTxRunner(db)
	loc := cfg.Location()
	generator := suggestion.NewGenerator(log, clients.Gemini)

	return Services{
		Auth: services.NewAuthService(
			log,
			tx,
			reposet.User,
			reposet.UserToken,
			clients.Avatars,
			cfg.JWTSecretKey,
			cfg.AccessTokenTTL,
			cfg.RefreshTokenTTL,
		),
		User:    services.NewUserService(log, tx, reposet.User, clients.Avatars),
		Emotion: services.NewEmotionService(log, tx, reposet.Emotion, clients.Cache, cfg.EmotionCacheTTL),
		MoodEntry: services.NewMoodEntryService(
			log,
			tx,
			reposet.MoodEntry,
			reposet.Emotion,
			reposet.SuggestedActivity,
			reposet.SuggestionCallLog,
			generator,
			loc,
			nil,
		),
		Activity: services.NewActivityService(log, tx, reposet.SuggestedActivity, reposet.MoodEntry, loc, nil),
	}
}
