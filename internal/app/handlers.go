package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/moodlog-backend/internal/http/handlers"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type Handlers struct {
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	Emotion   *httpH.EmotionHandler
	MoodEntry *httpH.MoodEntryHandler
	Activity  *httpH.ActivityHandler
	Health    *httpH.HealthHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, serviceset Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:      httpH.NewAuthHandler(serviceset.Auth),
		User:      httpH.NewUserHandler(serviceset.User),
		Emotion:   httpH.NewEmotionHandler(serviceset.Emotion),
		MoodEntry: httpH.NewMoodEntryHandler(serviceset.MoodEntry),
		Activity:  httpH.NewActivityHandler(serviceset.Activity),
		Health:    httpH.NewHealthHandler(log, db, clients.Gemini),
	}
}
