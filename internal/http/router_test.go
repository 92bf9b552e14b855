package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	dataagg "github.com/yungbote/moodlog-backend/internal/data/aggregates"
	"github.com/yungbote/moodlog-backend/internal/data/repos"
	"github.com/yungbote/moodlog-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/moodlog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/moodlog-backend/internal/http/middleware"
	"github.com/yungbote/moodlog-backend/internal/modules/suggestion"
	"github.com/yungbote/moodlog-backend/internal/platform/avatar"
	"github.com/yungbote/moodlog-backend/internal/platform/cache"
	"github.com/yungbote/moodlog-backend/internal/platform/gemini"
	"github.com/yungbote/moodlog-backend/internal/services"
)

type downClient struct{}

func (downClient) GenerateContent(context.Context, string) (string, error) {
	return "", &gemini.UpstreamError{StatusCode: 503, Body: "unavailable"}
}
func (downClient) Ping(context.Context) (bool, error) {
	return false, &gemini.UpstreamError{StatusCode: 503}
}
func (downClient) Model() string { return "down" }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	tx := dataagg.NewGormTxRunner(db)

	users := repos.NewUserRepo(db, log)
	tokens := repos.NewUserTokenRepo(db, log)
	emotions := repos.NewEmotionRepo(db, log)
	entries := repos.NewMoodEntryRepo(db, log)
	acts := repos.NewSuggestedActivityRepo(db, log)
	callLogs := repos.NewSuggestionCallLogRepo(db, log)

	renderer, err := avatar.NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	client := downClient{}
	authSvc := services.NewAuthService(log, tx, users, tokens, renderer, "router-secret", time.Hour, 24*time.Hour)
	gen := suggestion.NewGenerator(log, client)

	return NewRouter(RouterConfig{
		Log:              log,
		AuthHandler:      httpH.NewAuthHandler(authSvc),
		AuthMiddleware:   httpMW.NewAuthMiddleware(log, authSvc),
		UserHandler:      httpH.NewUserHandler(services.NewUserService(log, tx, users, renderer)),
		EmotionHandler:   httpH.NewEmotionHandler(services.NewEmotionService(log, tx, emotions, cache.NewMemory(), time.Minute)),
		MoodEntryHandler: httpH.NewMoodEntryHandler(services.NewMoodEntryService(log, tx, entries, emotions, acts, callLogs, gen, time.UTC, nil)),
		ActivityHandler:  httpH.NewActivityHandler(services.NewActivityService(log, tx, acts, entries, time.UTC, nil)),
		HealthHandler:    httpH.NewHealthHandler(log, db, client),
	})
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestRouter_MoodEntryFlow(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "flow@example.com", "password": "long-enough", "first_name": "Flo",
	})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, nethttp.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "flow@example.com", "password": "long-enough",
	})
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &tokens)
	if rec.Code != nethttp.StatusOK || tokens.AccessToken == "" {
		t.Fatalf("login: status %d body %s", rec.Code, rec.Body.String())
	}
	tok := tokens.AccessToken

	rec = do(t, r, nethttp.MethodPost, "/api/emotions", tok, map[string]string{"key": "happy", "label": "Happy"})
	var created struct {
		Emotion struct {
			ID string `json:"id"`
		} `json:"emotion"`
	}
	decode(t, rec, &created)
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create emotion: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, nethttp.MethodPost, "/api/mood-entries", tok, map[string]any{
		"energy_level": 3,
		"emotion_ids":  []string{created.Emotion.ID},
	})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create mood entry: status %d body %s", rec.Code, rec.Body.String())
	}
	var entry struct {
		MoodEntry struct {
			ID         string `json:"id"`
			Activities []struct {
				ID     string `json:"id"`
				Source string `json:"source"`
				Status string `json:"status"`
			} `json:"suggested_activities"`
		} `json:"mood_entry"`
	}
	decode(t, rec, &entry)
	if len(entry.MoodEntry.Activities) != 3 {
		t.Fatalf("create mood entry: expected 3 activities, got %s", rec.Body.String())
	}
	for _, a := range entry.MoodEntry.Activities {
		if a.Source != "fallback" || a.Status != "pending" {
			t.Fatalf("create mood entry: unexpected activity %+v", a)
		}
	}

	actID := entry.MoodEntry.Activities[0].ID
	rec = do(t, r, nethttp.MethodPost, "/api/activities/"+actID+"/complete", tok, nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("complete: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, nethttp.MethodDelete, "/api/activities/"+actID, tok, nil)
	if rec.Code != nethttp.StatusConflict {
		t.Fatalf("delete completed: status %d body %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &env)
	if env.Error.Code != "conflict" || env.Error.Message == "" {
		t.Fatalf("delete completed: unexpected envelope %s", rec.Body.String())
	}

	rec = do(t, r, nethttp.MethodGet, "/api/mood-entries/summary", tok, nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("summary: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, nethttp.MethodGet, "/api/me/avatar", tok, nil)
	if rec.Code != nethttp.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("avatar: status %d type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestRouter_ErrorEnvelopes(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, nethttp.MethodGet, "/api/mood-entries/today", "", nil)
	if rec.Code != nethttp.StatusUnauthorized {
		t.Fatalf("no token: status %d", rec.Code)
	}

	do(t, r, nethttp.MethodPost, "/api/auth/register", "", map[string]string{"email": "e@example.com", "password": "long-enough"})
	rec = do(t, r, nethttp.MethodPost, "/api/auth/login", "", map[string]string{"email": "e@example.com", "password": "long-enough"})
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &tokens)

	rec = do(t, r, nethttp.MethodGet, "/api/mood-entries/not-a-uuid", tokens.AccessToken, nil)
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("bad id: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, nethttp.MethodGet, "/api/mood-entries?date=03/10/2026", tokens.AccessToken, nil)
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("bad date: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, nethttp.MethodGet, "/api/mood-entries/today", tokens.AccessToken, nil)
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("today (empty): status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, r, nethttp.MethodPost, "/api/mood-entries", tokens.AccessToken, map[string]any{"energy_level": 9, "emotion_ids": []string{"00000000-0000-0000-0000-000000000001"}})
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("energy out of range: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, nethttp.MethodGet, "/healthcheck/suggestions", "", nil)
	if rec.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("suggestions health: status %d", rec.Code)
	}
	rec = do(t, r, nethttp.MethodGet, "/healthcheck", "", nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("health: status %d", rec.Code)
	}
}
