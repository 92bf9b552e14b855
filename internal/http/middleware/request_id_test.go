package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodlog-backend/internal/platform/ctxutil"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

func newRequestIDRouter(seen *ctxutil.RequestMeta) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDs(), RequestLogger(logger.Nop()))
	r.GET("/ping", func(c *gin.Context) {
		*seen = ctxutil.GetRequestMeta(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestIDsKeepsClientID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen ctxutil.RequestMeta
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "client-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen.RequestID != "client-123" {
		t.Fatalf("RequestIDs: context id = %q", seen.RequestID)
	}
	if got := w.Header().Get("X-Request-Id"); got != "client-123" {
		t.Fatalf("RequestIDs: header = %q", got)
	}
}

func TestRequestIDsReplacesUnusableID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen ctxutil.RequestMeta
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("x", maxRequestIDLen+1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen.RequestID == "" || len(seen.RequestID) > maxRequestIDLen {
		t.Fatalf("RequestIDs: expected generated id, got %q", seen.RequestID)
	}
	if got := w.Header().Get("X-Request-Id"); got != seen.RequestID {
		t.Fatalf("RequestIDs: header %q != context %q", got, seen.RequestID)
	}
	if seen.TraceID != "" {
		t.Fatalf("RequestIDs: no span active, got trace id %q", seen.TraceID)
	}
}
