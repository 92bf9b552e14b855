package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewServesHealthcheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LOG_MODE", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "app.db"))
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("GEMINI_API_KEY", "")

	a, err := New(context.Background())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthcheck: status %d body %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("GET /api/me: status %d", w.Code)
	}
}
