package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dataagg "github.com/yungbote/moodlog-backend/internal/data/aggregates"
	"github.com/yungbote/moodlog-backend/internal/data/repos"
	"github.com/yungbote/moodlog-backend/internal/data/repos/testutil"
	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/platform/ctxutil"
)

var fixedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func clockAt(t time.Time) Clock { return func() time.Time { return t } }

type fakeClient struct {
	body  string
	err   error
	calls int
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.body, f.err
}

func (f *fakeClient) Ping(ctx context.Context) (bool, error) { return f.err == nil, f.err }
func (f *fakeClient) Model() string                          { return "fake-model" }

type testEnv struct {
	db       *gorm.DB
	tx       dataagg.TxRunner
	entries  repos.MoodEntryRepo
	emotions repos.EmotionRepo
	acts     repos.SuggestedActivityRepo
	callLogs repos.SuggestionCallLogRepo
	users    repos.UserRepo
	tokens   repos.UserTokenRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &testEnv{
		db:       db,
		tx:       dataagg.NewGormTxRunner(db),
		entries:  repos.NewMoodEntryRepo(db, log),
		emotions: repos.NewEmotionRepo(db, log),
		acts:     repos.NewSuggestedActivityRepo(db, log),
		callLogs: repos.NewSuggestionCallLogRepo(db, log),
		users:    repos.NewUserRepo(db, log),
		tokens:   repos.NewUserTokenRepo(db, log),
	}
}

func asUser(userID uuid.UUID) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})
}

func wantCode(t *testing.T, op string, err error, code aggregates.ErrorCode) {
	t.Helper()
	if !aggregates.IsCode(err, code) {
		t.Fatalf("%s: expected %s error, got %v", op, code, err)
	}
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
