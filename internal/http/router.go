package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/moodlog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/moodlog-backend/internal/http/middleware"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	AuthHandler      *httpH.AuthHandler
	AuthMiddleware   *httpMW.AuthMiddleware
	UserHandler      *httpH.UserHandler
	EmotionHandler   *httpH.EmotionHandler
	MoodEntryHandler *httpH.MoodEntryHandler
	ActivityHandler  *httpH.ActivityHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestIDs())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/healthcheck/suggestions", cfg.HealthHandler.Suggestions)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateMe)
			protected.GET("/me/avatar", cfg.UserHandler.GetAvatar)
		}

		// Emotion taxonomy
		if h := cfg.EmotionHandler; h != nil {
			protected.GET("/emotions", h.List)
			protected.GET("/emotions/root", h.Roots)
			protected.GET("/emotions/taxonomy", h.Taxonomy)
			protected.GET("/emotions/dropdown", h.Dropdown)
			protected.GET("/emotions/key/:key", h.GetByKey)
			protected.GET("/emotions/parent/:parentKey", h.Children)
			protected.GET("/emotions/:id", h.Get)
			protected.POST("/emotions", h.Create)
			protected.PATCH("/emotions/:id", h.Update)
			protected.DELETE("/emotions/:id", h.Delete)
		}

		// Mood entries
		if h := cfg.MoodEntryHandler; h != nil {
			protected.POST("/mood-entries", h.Create)
			protected.GET("/mood-entries", h.ListByDate)
			protected.GET("/mood-entries/today", h.Today)
			protected.GET("/mood-entries/history", h.History)
			protected.GET("/mood-entries/summary", h.Summary)
			protected.GET("/mood-entries/:id", h.Get)
			protected.PUT("/mood-entries/:id", h.Update)
			protected.DELETE("/mood-entries/:id", h.Delete)
		}

		// Suggested activities
		if h := cfg.ActivityHandler; h != nil {
			protected.GET("/activities", h.List)
			protected.GET("/activities/today", h.Today)
			protected.GET("/activities/:id", h.Get)
			protected.POST("/activities/:id/complete", h.Complete)
			protected.POST("/activities/:id/incomplete", h.Incomplete)
			protected.PATCH("/activities/:id", h.Update)
			protected.DELETE("/activities/:id", h.Delete)
		}
	}

	return r
}
