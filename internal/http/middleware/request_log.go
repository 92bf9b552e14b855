package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/moodlog-backend/internal/platform/ctxutil"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

// RequestLogger writes one access line per request. Health probes log at debug.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		ctx := c.Request.Context()
		meta := ctxutil.GetRequestMeta(ctx)

		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"request_id", meta.RequestID,
		}
		if meta.TraceID != "" {
			fields = append(fields, "trace_id", meta.TraceID)
		}
		if uid := ctxutil.UserID(ctx); uid != uuid.Nil {
			fields = append(fields, "user_id", uid.String())
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		case route == "/healthcheck" || route == "/healthcheck/suggestions":
			log.Debug("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
