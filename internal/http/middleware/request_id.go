package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/moodlog-backend/internal/platform/ctxutil"
)

const (
	headerRequestID = "X-Request-Id"
	headerTraceID   = "X-Trace-Id"

	maxRequestIDLen = 128
)

// RequestIDs tags each request with a request id (the client's, when usable)
// and the active trace id, and echoes both in the response headers.
func RequestIDs() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		meta := ctxutil.RequestMeta{
			RequestID: clientRequestID(c),
			TraceID:   traceIDFrom(ctx),
		}
		if meta.RequestID == "" {
			meta.RequestID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestMeta(ctx, meta))

		h := c.Writer.Header()
		h.Set(headerRequestID, meta.RequestID)
		if meta.TraceID != "" {
			h.Set(headerTraceID, meta.TraceID)
		}
		c.Next()
	}
}

func clientRequestID(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader(headerRequestID))
	if len(id) > maxRequestIDLen || strings.ContainsAny(id, "\r\n") {
		return ""
	}
	return id
}

func traceIDFrom(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
