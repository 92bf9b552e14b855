package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/moodlog-backend/internal/http"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:              log,
		ServiceName:      serviceName,
		AllowedOrigins:   cfg.AllowedOrigins,
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		UserHandler:      handlers.User,
		EmotionHandler:   handlers.Emotion,
		MoodEntryHandler: handlers.MoodEntry,
		ActivityHandler:  handlers.Activity,
		HealthHandler:    handlers.Health,
	})
}
